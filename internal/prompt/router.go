package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voxay/daybrief/internal/graph"
	"github.com/voxay/daybrief/internal/userctx"
	"go.uber.org/zap"
)

// ErrProcessing marks a provider failure while executing a routed intent.
var ErrProcessing = errors.New("failed to process prompt")

const helpText = `Sorry, I didn’t understand. Try "read emails," "respond to email," "add event," or "show reminders."`

// Request carries one instruction plus the caller's credential and context
// document.
type Request struct {
	Prompt  string
	Token   string
	Context userctx.UserContext
}

// route pairs an intent predicate with its handler. Routes are evaluated in
// slice order and the first match wins, so the order is the priority order.
type route struct {
	name   string
	match  func(lower string) bool
	handle func(ctx context.Context, req *Request, lower string) (string, error)
}

// Router classifies free-text prompts into a fixed set of intents and runs
// exactly one provider operation per call.
type Router struct {
	graph  graph.Client
	now    func() time.Time
	logger *zap.Logger
	routes []route
}

// NewRouter creates a Router over the given provider client. Pass nil for now
// to use the wall clock.
func NewRouter(client graph.Client, now func() time.Time, logger *zap.Logger) *Router {
	if now == nil {
		now = time.Now
	}
	r := &Router{graph: client, now: now, logger: logger}
	r.routes = []route{
		{
			name: "list-messages",
			match: func(lower string) bool {
				return strings.Contains(lower, "read") ||
					(strings.Contains(lower, "show") && strings.Contains(lower, "email"))
			},
			handle: r.listMessages,
		},
		{
			name:   "reply-message",
			match:  containsAll("respond", "email"),
			handle: r.replyToMessage,
		},
		{
			name:   "create-event",
			match:  containsAll("add", "event"),
			handle: r.createEvent,
		},
		{
			name:   "describe-reminder",
			match:  containsAll("reminder"),
			handle: r.describeReminder,
		},
		{
			name:   "list-events",
			match:  containsAll("show", "event"),
			handle: r.listEvents,
		},
	}
	return r
}

func containsAll(words ...string) func(string) bool {
	return func(lower string) bool {
		for _, w := range words {
			if !strings.Contains(lower, w) {
				return false
			}
		}
		return true
	}
}

// Handle runs the route table against the lowercased prompt. Exactly one
// branch executes; no match returns the help text without touching the
// provider.
func (r *Router) Handle(ctx context.Context, req *Request) (string, error) {
	lower := strings.ToLower(req.Prompt)
	for _, rt := range r.routes {
		if !rt.match(lower) {
			continue
		}
		result, err := rt.handle(ctx, req, lower)
		if err != nil {
			r.logger.Warn("intent failed",
				zap.String("intent", rt.name), zap.Error(err))
			return "", fmt.Errorf("%w: %s: %v", ErrProcessing, rt.name, err)
		}
		r.logger.Debug("intent handled", zap.String("intent", rt.name))
		return result, nil
	}
	return helpText, nil
}
