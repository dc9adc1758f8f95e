package notification

import (
	"context"

	"video-censor/domain/notification"
)

// Service handles email notification operations
type Service struct {
	sender     notification.EmailSender
	senderName string
}

// NewService creates a new notification service
func NewService(sender notification.EmailSender, senderName string) *Service {
	return &Service{
		sender:     sender,
		senderName: senderName,
	}
}

// SendRequest contains the parameters for announcing a cleaned video
type SendRequest struct {
	To            []notification.Recipient
	CC            []notification.Recipient
	VideoName     string
	VideoURL      string
	CensoredCount int
}

// Send sends a notification email for a published video
func (s *Service) Send(ctx context.Context, req SendRequest) error {
	return s.sender.Send(ctx, &notification.EmailRequest{
		To:            req.To,
		CC:            req.CC,
		VideoName:     req.VideoName,
		VideoURL:      req.VideoURL,
		CensoredCount: req.CensoredCount,
		SenderName:    s.senderName,
	})
}
