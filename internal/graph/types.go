package graph

import (
	"context"
	"time"
)

// Client is the mail/calendar provider surface the assistant depends on.
// The bearer token is passed per call: interactive requests forward the
// caller's credential, the digest job uses a configured one.
type Client interface {
	ListMessages(ctx context.Context, token string, opts ListMessagesOptions) ([]Message, error)
	ReplyToMessage(ctx context.Context, token, messageID, comment string) error
	CreateEvent(ctx context.Context, token string, ev Event) error
	ListEvents(ctx context.Context, token string, opts ListEventsOptions) ([]Event, error)
	CalendarView(ctx context.Context, token string, start, end time.Time, top int) ([]Event, error)
}

// ImportanceHigh is the provider's marker for high-importance messages.
const ImportanceHigh = "high"

// EmailAddress mirrors the provider's address pair.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Recipient wraps an address the way the provider nests it.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Message is a mailbox item as returned by the provider.
type Message struct {
	ID               string    `json:"id"`
	Subject          string    `json:"subject"`
	From             Recipient `json:"from"`
	Importance       string    `json:"importance"`
	ReceivedDateTime string    `json:"receivedDateTime"`
}

// DateTimeTimeZone is the provider's split representation of a timestamp.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Event is a calendar item as returned by (or posted to) the provider.
type Event struct {
	ID      string           `json:"id,omitempty"`
	Subject string           `json:"subject"`
	Start   DateTimeTimeZone `json:"start"`
	End     DateTimeTimeZone `json:"end"`
}

// ListMessagesOptions narrows a mailbox listing. OrderBy is a provider field
// name; results come back descending on it.
type ListMessagesOptions struct {
	OrderBy string
	Filter  string
	Top     int
}

// ListEventsOptions narrows a calendar listing.
type ListEventsOptions struct {
	Filter string
	Top    int
}
