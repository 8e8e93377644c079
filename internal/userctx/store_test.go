package userctx

import (
	"context"
	"testing"
)

func TestDefault(t *testing.T) {
	uc := Default()
	if uc.PersonalDetails != "" || uc.Priorities != "" || uc.Notes != "" {
		t.Errorf("expected empty free-text fields, got %+v", uc)
	}
	if uc.ReminderTiming != "15" {
		t.Errorf("expected reminder timing 15, got %q", uc.ReminderTiming)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	want := UserContext{
		PersonalDetails: "works from home",
		Priorities:      "urgent stuff first",
		Notes:           "tree-cutting business",
		ReminderTiming:  "30",
	}
	if err := store.Save(ctx, "user-1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("load of missing user must not fail: %v", err)
	}
	if got != Default() {
		t.Errorf("expected default context, got %+v", got)
	}
}

func TestMemoryStoreLoadCorrupt(t *testing.T) {
	store := NewMemoryStore()
	store.Put("user-1", []byte("{not json"))

	got, err := store.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("load of corrupt document must not fail: %v", err)
	}
	if got != Default() {
		t.Errorf("expected default context for corrupt document, got %+v", got)
	}
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := UserContext{PersonalDetails: "old", Priorities: "old", Notes: "old", ReminderTiming: "10"}
	if err := store.Save(ctx, "user-1", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Whole-document replacement: fields absent in the new document do not
	// survive from the old one.
	second := UserContext{ReminderTiming: "45"}
	if err := store.Save(ctx, "user-1", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != second {
		t.Errorf("expected wholesale overwrite, got %+v", got)
	}
}
