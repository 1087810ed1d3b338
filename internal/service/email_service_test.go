package service

import (
	"errors"
	"strings"
	"testing"
)

func TestTicketStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"open", "open"},
		{"in-progress", "in progress"},
		{"  Closed ", "closed"},
		{"unexpected", "open"},
	}
	for _, tt := range tests {
		if got := ticketStatusLabel(tt.status); got != tt.want {
			t.Fatalf("ticketStatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSendTicketReplyEmailDisabled(t *testing.T) {
	svc := NewEmailService(nil)
	err := svc.SendTicketReplyEmail("seller@example.com", TicketReplyEmailInput{
		TicketID: 1,
		Subject:  "Order question",
		Reply:    "We are looking into it.",
		ShopName: "Sunny Crafts",
	})
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("STUDIO360 <noreply@example.com>", "seller@example.com", "Ticket #3", "body text")
	if !strings.Contains(msg, "To: seller@example.com\r\n") {
		t.Fatalf("message missing recipient header: %s", msg)
	}
	if !strings.HasSuffix(msg, "\r\nbody text") {
		t.Fatalf("message body malformed: %s", msg)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
