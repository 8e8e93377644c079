package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/voxay/daybrief/internal/graph"
)

// Kind distinguishes the source of an agenda item.
type Kind string

const (
	KindEvent Kind = "event"
	KindEmail Kind = "email"
)

// Priority levels. Lower sorts first.
const (
	PriorityHigh   = 1
	PriorityNormal = 2
)

// Item is a normalized, ranked representation of one event or message. Items
// are built per run and discarded; nothing here is persisted.
type Item struct {
	Kind        Kind
	Priority    int
	DisplayText string
}

// Ranker merges calendar events and mailbox messages into one ordered agenda.
type Ranker struct {
	now func() time.Time
}

// NewRanker creates a Ranker. Pass nil to use the wall clock; tests inject a
// fixed now for deterministic priorities.
func NewRanker(now func() time.Time) *Ranker {
	if now == nil {
		now = time.Now
	}
	return &Ranker{now: now}
}

// Build maps both inputs to items, concatenates events before messages, and
// sorts by priority. Events starting within 24 hours rank high, as do
// high-importance messages; everything else is normal priority. A bad record
// degrades to normal priority rather than failing the run.
func (r *Ranker) Build(events []graph.Event, messages []graph.Message) []Item {
	cutoff := r.now().Add(24 * time.Hour)

	items := make([]Item, 0, len(events)+len(messages))
	for _, ev := range events {
		items = append(items, eventItem(ev, cutoff))
	}
	for _, msg := range messages {
		items = append(items, messageItem(msg))
	}

	sortItems(items)
	return items
}

func eventItem(ev graph.Event, cutoff time.Time) Item {
	priority := PriorityNormal
	start, ok := parseProviderTime(ev.Start.DateTime)
	if ok && start.Before(cutoff) {
		priority = PriorityHigh
	}

	return Item{
		Kind:     KindEvent,
		Priority: priority,
		DisplayText: fmt.Sprintf(`%s (<a href="outlook://calendar/%s">Add to Calendar</a>, %s)`,
			ev.Subject, ev.ID, FormatStartTime(ev.Start.DateTime)),
	}
}

func messageItem(msg graph.Message) Item {
	priority := PriorityNormal
	if msg.Importance == graph.ImportanceHigh {
		priority = PriorityHigh
	}
	return Item{
		Kind:        KindEmail,
		Priority:    priority,
		DisplayText: fmt.Sprintf("Email from %s: %s", msg.From.EmailAddress.Name, msg.Subject),
	}
}

// sortItems orders ascending by priority. Equal priorities tie-break by
// parsing the display text as a date; text that does not parse compares
// equal, and the stable sort keeps insertion order (events first, then
// messages, each in input order) for those pairs. The display text is almost
// never a valid date, so in practice insertion order carries the tie — this
// reproduces the behavior of the digest this service replaces.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		ti, iok := parseProviderTime(items[i].DisplayText)
		tj, jok := parseProviderTime(items[j].DisplayText)
		if !iok || !jok {
			return false
		}
		return ti.Before(tj)
	})
}

// providerTimeLayouts covers the timestamp shapes the provider emits: RFC3339
// and the zone-less variants used by calendar payloads.
var providerTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	"1/2/2006, 3:04:05 PM",
}

func parseProviderTime(s string) (time.Time, bool) {
	for _, layout := range providerTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatStartTime renders a provider timestamp for display. Unparseable input
// is passed through untouched.
func FormatStartTime(s string) string {
	t, ok := parseProviderTime(s)
	if !ok {
		return s
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
