package notification

import "context"

// Recipient represents an email recipient with name and address
type Recipient struct {
	Name    string
	Address string
}

// EmailRequest contains all the data needed to announce a cleaned video
type EmailRequest struct {
	To            []Recipient // Primary recipients
	CC            []Recipient // Carbon copy recipients
	VideoName     string      // File name of the cleaned video
	VideoURL      string      // Shareable link to the cleaned video
	CensoredCount int         // Number of words that were silenced
	SenderName    string      // Name to sign the email
}

// Validate checks that the email request has all required fields
func (r *EmailRequest) Validate() error {
	if len(r.To) == 0 {
		return ErrNoRecipients
	}
	for _, rc := range append(append([]Recipient{}, r.To...), r.CC...) {
		if rc.Address == "" {
			return ErrInvalidRecipient
		}
	}
	if r.VideoName == "" {
		return ErrNoVideoName
	}
	if r.VideoURL == "" {
		return ErrNoVideoURL
	}
	if r.CensoredCount < 0 {
		return ErrInvalidCount
	}
	return nil
}

// EmailSender defines the interface for sending emails
type EmailSender interface {
	Send(ctx context.Context, req *EmailRequest) error
}
