package mailer

import "context"

// Email is one outbound message handed to the sending service.
type Email struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// Mailer sends a single email. Implementations are stateless request/response
// clients; delivery is not retried here.
type Mailer interface {
	Send(ctx context.Context, msg *Email) error
}
