package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxay/daybrief/internal/agenda"
	"github.com/voxay/daybrief/internal/graph"
)

const (
	// TODO: resolve the target message from the prompt once message
	// selection exists; until then replies go to a fixed placeholder id.
	replyMessageID = "your_email_id"

	treeCuttingReply = "Hi, thanks for reaching out about our tree-cutting services! " +
		"We offer tree removal, pruning, and stump grinding. Please let me know your needs."
	genericReply = "Thanks for your email!"
)

// listMessages returns the top 5 mailbox items. The sort key comes from the
// context first ("urgent" priorities force importance), then the prompt
// ("sender"), then recency.
func (r *Router) listMessages(ctx context.Context, req *Request, lower string) (string, error) {
	sortKey := "receivedDateTime"
	switch {
	case strings.Contains(req.Context.Priorities, "urgent"):
		sortKey = "importance"
	case strings.Contains(lower, "sender"):
		sortKey = "from"
	}

	msgs, err := r.graph.ListMessages(ctx, req.Token, graph.ListMessagesOptions{
		OrderBy: sortKey,
		Top:     5,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = fmt.Sprintf("From: %s, Subject: %s", m.From.EmailAddress.Name, m.Subject)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Router) replyToMessage(ctx context.Context, req *Request, _ string) (string, error) {
	reply := genericReply
	if strings.Contains(req.Context.Notes, "tree-cutting") {
		reply = treeCuttingReply
	}
	if err := r.graph.ReplyToMessage(ctx, req.Token, replyMessageID, reply); err != nil {
		return "", err
	}
	return "Email response sent.", nil
}

// createEvent adds a 1-hour placeholder event starting 24 hours out.
func (r *Router) createEvent(ctx context.Context, req *Request, _ string) (string, error) {
	start := r.now().Add(24 * time.Hour).UTC()
	ev := graph.Event{
		Subject: "New Event",
		Start:   graph.DateTimeTimeZone{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:     graph.DateTimeTimeZone{DateTime: start.Add(time.Hour).Format(time.RFC3339), TimeZone: "UTC"},
	}
	if err := r.graph.CreateEvent(ctx, req.Token, ev); err != nil {
		return "", err
	}
	return "Event added to calendar.", nil
}

// describeReminder echoes the configured lead time. No provider call.
func (r *Router) describeReminder(_ context.Context, req *Request, _ string) (string, error) {
	timing := req.Context.ReminderTiming
	if timing == "" {
		timing = "15"
	}
	return fmt.Sprintf("Reminder set for %s minutes before event.", timing), nil
}

func (r *Router) listEvents(ctx context.Context, req *Request, _ string) (string, error) {
	filter := fmt.Sprintf("start/dateTime ge '%s'", r.now().UTC().Format(time.RFC3339))
	events, err := r.graph.ListEvents(ctx, req.Token, graph.ListEventsOptions{
		Filter: filter,
		Top:    5,
	})
	if err != nil {
		return "", err
	}

	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = fmt.Sprintf("%s (%s)", ev.Subject, agenda.FormatStartTime(ev.Start.DateTime))
	}
	return strings.Join(lines, "\n"), nil
}
