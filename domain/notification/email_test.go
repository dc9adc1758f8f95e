package notification

import "testing"

func TestEmailRequest_Validate(t *testing.T) {
	validRequest := EmailRequest{
		To:            []Recipient{{Name: "Maria Lopez", Address: "maria@example.com"}},
		VideoName:     "show_cleaned.mp4",
		VideoURL:      "https://drive.google.com/file/d/xyz/view",
		CensoredCount: 3,
	}

	tests := []struct {
		name    string
		modify  func(*EmailRequest)
		wantErr error
	}{
		{name: "valid request", modify: func(r *EmailRequest) {}},
		{name: "no recipients", modify: func(r *EmailRequest) { r.To = nil }, wantErr: ErrNoRecipients},
		{
			name:    "recipient without address",
			modify:  func(r *EmailRequest) { r.To = []Recipient{{Name: "Maria"}} },
			wantErr: ErrInvalidRecipient,
		},
		{
			name:    "cc without address",
			modify:  func(r *EmailRequest) { r.CC = []Recipient{{Name: "Sam"}} },
			wantErr: ErrInvalidRecipient,
		},
		{name: "no video name", modify: func(r *EmailRequest) { r.VideoName = "" }, wantErr: ErrNoVideoName},
		{name: "no video URL", modify: func(r *EmailRequest) { r.VideoURL = "" }, wantErr: ErrNoVideoURL},
		{name: "negative count", modify: func(r *EmailRequest) { r.CensoredCount = -1 }, wantErr: ErrInvalidCount},
		{name: "nothing censored is valid", modify: func(r *EmailRequest) { r.CensoredCount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest // Copy
			tt.modify(&req)
			if err := req.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
