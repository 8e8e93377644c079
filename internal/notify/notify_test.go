package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type recordingNotifier struct {
	name  string
	calls int
	err   error
}

func (r *recordingNotifier) Name() string { return r.name }

func (r *recordingNotifier) Notify(context.Context, string, string) error {
	r.calls++
	return r.err
}

func TestFanoutContinuesPastFailures(t *testing.T) {
	bad := &recordingNotifier{name: "bad", err: errors.New("down")}
	good := &recordingNotifier{name: "good"}

	f := NewFanout(zap.NewNop(), bad, good)
	f.Notify(context.Background(), "Digest", "body")

	if bad.calls != 1 {
		t.Errorf("bad adapter: got %d calls", bad.calls)
	}
	if good.calls != 1 {
		t.Errorf("failure must not block later adapters: got %d calls", good.calls)
	}
}

func TestFanoutRegister(t *testing.T) {
	f := NewFanout(zap.NewNop())
	n := &recordingNotifier{name: "late"}
	f.Register(n)
	f.Notify(context.Background(), "Digest", "body")
	if n.calls != 1 {
		t.Errorf("registered adapter not invoked")
	}
}
