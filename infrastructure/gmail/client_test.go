package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"video-censor/domain/notification"

	"google.golang.org/api/gmail/v1"
)

// mockGmailService is a mock implementation for testing
type mockGmailService struct {
	sentMessages []*gmail.Message
	failError    error
}

func (m *mockGmailService) SendMessage(ctx context.Context, userID string, message *gmail.Message) (*gmail.Message, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	m.sentMessages = append(m.sentMessages, message)
	return &gmail.Message{Id: "test-message-id"}, nil
}

var testSender = notification.Recipient{Name: "Censor Bot", Address: "censor@example.com"}

func validRequest() *notification.EmailRequest {
	return &notification.EmailRequest{
		To:            []notification.Recipient{{Name: "Maria Lopez", Address: "maria@example.com"}},
		CC:            []notification.Recipient{{Name: "Sam Carter", Address: "sam@example.com"}},
		VideoName:     "show_cleaned.mp4",
		VideoURL:      "https://drive.google.com/file/d/xyz/view",
		CensoredCount: 1,
		SenderName:    "Censor Bot",
	}
}

func decodeRaw(t *testing.T, m *gmail.Message) string {
	t.Helper()
	raw, err := base64.URLEncoding.DecodeString(m.Raw)
	if err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}
	return string(raw)
}

func TestClient_Send(t *testing.T) {
	mock := &mockGmailService{}
	client := NewClient(testSender, WithGmailService(mock))

	if err := client.Send(context.Background(), validRequest()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(mock.sentMessages) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(mock.sentMessages))
	}

	raw := decodeRaw(t, mock.sentMessages[0])
	for _, check := range []string{
		"From: Censor Bot <censor@example.com>",
		"To: Maria Lopez <maria@example.com>",
		"Cc: Sam Carter <sam@example.com>",
		"Subject: Clean version ready: show_cleaned.mp4",
		"Dear Maria,",
		"1 word was silenced",
		"https://drive.google.com/file/d/xyz/view",
		"Content-Type: text/plain",
		"Content-Type: text/html",
	} {
		if !strings.Contains(raw, check) {
			t.Errorf("message missing %q in:\n%s", check, raw)
		}
	}
}

func TestClient_Send_MultipleRecipients(t *testing.T) {
	mock := &mockGmailService{}
	client := NewClient(testSender, WithGmailService(mock))

	req := validRequest()
	req.CC = nil
	req.To = append(req.To, notification.Recipient{Name: "Alex Kim", Address: "alex@example.com"})

	if err := client.Send(context.Background(), req); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	raw := decodeRaw(t, mock.sentMessages[0])
	if !strings.Contains(raw, "To: Maria Lopez <maria@example.com>, Alex Kim <alex@example.com>") {
		t.Errorf("message missing multiple recipients in To header:\n%s", raw)
	}
	if strings.Contains(raw, "Cc:") {
		t.Errorf("message has Cc header without CC recipients:\n%s", raw)
	}
	if !strings.Contains(raw, "Dear Maria & Alex,") {
		t.Errorf("message should greet both recipients by name:\n%s", raw)
	}
}

func TestClient_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		client  *Client
		req     func() *notification.EmailRequest
		wantErr error
		substr  string
	}{
		{
			name:   "invalid request",
			client: NewClient(testSender, WithGmailService(&mockGmailService{})),
			req: func() *notification.EmailRequest {
				r := validRequest()
				r.To = nil
				return r
			},
			wantErr: notification.ErrNoRecipients,
			substr:  "invalid email request",
		},
		{
			name:    "API failure",
			client:  NewClient(testSender, WithGmailService(&mockGmailService{failError: errors.New("quota")})),
			req:     validRequest,
			wantErr: notification.ErrSendFailed,
		},
		{
			name:    "no service",
			client:  NewClient(testSender),
			req:     validRequest,
			wantErr: notification.ErrSendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Send(context.Background(), tt.req())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Send() error = %v, want %v", err, tt.wantErr)
			}
			if tt.substr != "" && (err == nil || !strings.Contains(err.Error(), tt.substr)) {
				t.Errorf("Send() error = %v, want containing %q", err, tt.substr)
			}
		})
	}
}
