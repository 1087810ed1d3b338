package queue

import (
	"encoding/json"

	"github.com/studio360-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskTicketReplyEmail 工单回复邮件通知任务
	TaskTicketReplyEmail = constants.TaskTicketReplyEmail
	// TaskTicketStatusEmail 工单状态变更邮件通知任务
	TaskTicketStatusEmail = constants.TaskTicketStatusEmail
)

// TicketReplyEmailPayload 工单回复邮件任务载荷
type TicketReplyEmailPayload struct {
	TicketID  uint `json:"ticket_id"`
	MessageID uint `json:"message_id"`
}

// TicketStatusEmailPayload 工单状态变更邮件任务载荷
type TicketStatusEmailPayload struct {
	TicketID uint   `json:"ticket_id"`
	Status   string `json:"status"`
}

// NewTicketReplyEmailTask 创建工单回复邮件任务
func NewTicketReplyEmailTask(payload TicketReplyEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketReplyEmail, body), nil
}

// NewTicketStatusEmailTask 创建工单状态变更邮件任务
func NewTicketStatusEmailTask(payload TicketStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketStatusEmail, body), nil
}
