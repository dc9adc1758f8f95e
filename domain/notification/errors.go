package notification

import "errors"

var (
	// ErrNoRecipients is returned when no To recipients are provided
	ErrNoRecipients = errors.New("at least one recipient is required")

	// ErrInvalidRecipient is returned when a recipient has no email address
	ErrInvalidRecipient = errors.New("recipient must have an email address")

	// ErrNoVideoName is returned when the video name is missing
	ErrNoVideoName = errors.New("video name is required")

	// ErrNoVideoURL is returned when the shareable link is missing
	ErrNoVideoURL = errors.New("video URL is required")

	// ErrInvalidCount is returned for a negative censored word count
	ErrInvalidCount = errors.New("censored word count cannot be negative")

	// ErrRecipientNotFound is returned when a recipient lookup fails
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrAmbiguousRecipient is returned when multiple recipients match a query
	ErrAmbiguousRecipient = errors.New("multiple recipients match query")

	// ErrSendFailed is returned when the email fails to send
	ErrSendFailed = errors.New("failed to send email")
)
