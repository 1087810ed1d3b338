package worker

import (
	"context"
	"testing"

	"github.com/studio360-next/internal/provider"
	"github.com/studio360-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleTicketReplyEmailBadPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskTicketReplyEmail, []byte("{not-json"))

	if err := consumer.handleTicketReplyEmail(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for malformed payload")
	}
}

func TestHandleTicketReplyEmailZeroTicketSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskTicketReplyEmail, []byte(`{"ticket_id":0,"message_id":1}`))

	if err := consumer.handleTicketReplyEmail(context.Background(), task); err != nil {
		t.Fatalf("expected zero ticket id to be skipped, got %v", err)
	}
}

func TestHandleTicketStatusEmailSkipWithoutEmailService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskTicketStatusEmail, []byte(`{"ticket_id":7,"status":"closed"}`))

	if err := consumer.handleTicketStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected skip when email service missing, got %v", err)
	}
}
