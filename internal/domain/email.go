package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmedEmailData holds data for the booking confirmation email.
type BookingConfirmedEmailData struct {
	Email     string
	Name      string
	BookingID string
	RoomID    string
	Changed   bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingConfirmed(ctx context.Context, data *BookingConfirmedEmailData) error
}
