package digest

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voxay/daybrief/internal/agenda"
	"github.com/voxay/daybrief/internal/graph"
	"github.com/voxay/daybrief/internal/mailer"
	"github.com/voxay/daybrief/internal/notify"
	"github.com/voxay/daybrief/internal/userctx"
	"go.uber.org/zap"
)

const digestSubject = "Your Weekly Agenda"

// Subscription describes one digest recipient: whose context to load, where
// to deliver, and the provider credential to fetch with.
type Subscription struct {
	UserID string `json:"user_id"`
	To     string `json:"to"`
	From   string `json:"from"`
	Token  string `json:"token"`
}

// Job assembles and delivers one agenda digest per run. A run is strictly
// best-effort: after the context load, any failing step is logged and the run
// ends without retry.
type Job struct {
	store  userctx.Store
	graph  graph.Client
	ranker *agenda.Ranker
	mailer mailer.Mailer
	fanout *notify.Fanout
	now    func() time.Time
	logger *zap.Logger
}

// NewJob wires a digest job. fanout may be nil; now defaults to the wall
// clock when nil.
func NewJob(
	store userctx.Store,
	client graph.Client,
	ranker *agenda.Ranker,
	m mailer.Mailer,
	fanout *notify.Fanout,
	now func() time.Time,
	logger *zap.Logger,
) *Job {
	if now == nil {
		now = time.Now
	}
	return &Job{
		store:  store,
		graph:  client,
		ranker: ranker,
		mailer: m,
		fanout: fanout,
		now:    now,
		logger: logger,
	}
}

// Run builds and sends the digest for one subscriber.
func (j *Job) Run(ctx context.Context, sub Subscription) {
	log := j.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("user", sub.UserID),
	)

	uc, err := j.store.Load(ctx, sub.UserID)
	if err != nil {
		// Load already fell back to the default document; the run continues.
		log.Warn("context unavailable, using defaults", zap.Error(err))
	}

	now := j.now()
	events, err := j.graph.CalendarView(ctx, sub.Token, now, now.Add(7*24*time.Hour), 50)
	if err != nil {
		log.Error("fetch events failed", zap.Error(err))
		return
	}

	opts := graph.ListMessagesOptions{Top: 10}
	if strings.Contains(uc.Priorities, "urgent") {
		opts.Filter = "importance eq 'high'"
	}
	messages, err := j.graph.ListMessages(ctx, sub.Token, opts)
	if err != nil {
		log.Error("fetch messages failed", zap.Error(err))
		return
	}

	items := j.ranker.Build(events, messages)

	msg := &mailer.Email{
		To:      sub.To,
		From:    sub.From,
		Subject: digestSubject,
		HTML:    renderHTML(items),
	}
	if err := j.mailer.Send(ctx, msg); err != nil {
		log.Error("digest send failed", zap.Error(err))
		return
	}
	log.Info("digest sent", zap.Int("items", len(items)))

	if j.fanout != nil {
		j.fanout.Notify(ctx, digestSubject, renderText(items))
	}
}
