package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/provider"
	"github.com/studio360-next/internal/queue"
	"github.com/studio360-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskTicketReplyEmail, c.handleTicketReplyEmail)
	mux.HandleFunc(queue.TaskTicketStatusEmail, c.handleTicketStatusEmail)
}

func (c *Consumer) handleTicketReplyEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_ticket_reply_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TicketReplyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_ticket_reply_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.TicketID == 0 {
		logger.Debugw("worker_ticket_reply_email_skip_invalid_payload", "ticket_id", payload.TicketID)
		return nil
	}

	ticket, seller, err := c.resolveTicketSeller(payload.TicketID, "worker_ticket_reply_email")
	if err != nil || ticket == nil || seller == nil {
		return err
	}

	var body string
	messages, err := c.TicketRepo.ListMessages(ticket.ID)
	if err != nil {
		logger.Warnw("worker_ticket_reply_email_fetch_messages_failed", "ticket_id", ticket.ID, "error", err)
		return err
	}
	for _, message := range messages {
		if message.ID == payload.MessageID {
			body = message.Body
			break
		}
	}
	if body == "" {
		logger.Debugw("worker_ticket_reply_email_skip_message_not_found", "ticket_id", ticket.ID, "message_id", payload.MessageID)
		return nil
	}

	input := service.TicketReplyEmailInput{
		TicketID: ticket.ID,
		Subject:  ticket.Subject,
		Reply:    body,
		ShopName: seller.ShopName,
	}
	if err := c.EmailService.SendTicketReplyEmail(seller.Email, input); err != nil {
		logger.Warnw("worker_ticket_reply_email_send_failed",
			"ticket_id", ticket.ID,
			"receiver_email", seller.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleTicketStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_ticket_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TicketStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_ticket_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.TicketID == 0 {
		logger.Debugw("worker_ticket_status_email_skip_invalid_payload", "ticket_id", payload.TicketID)
		return nil
	}

	ticket, seller, err := c.resolveTicketSeller(payload.TicketID, "worker_ticket_status_email")
	if err != nil || ticket == nil || seller == nil {
		return err
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = ticket.Status
	}
	input := service.TicketStatusEmailInput{
		TicketID: ticket.ID,
		Subject:  ticket.Subject,
		Status:   status,
		ShopName: seller.ShopName,
	}
	if err := c.EmailService.SendTicketStatusEmail(seller.Email, input); err != nil {
		logger.Warnw("worker_ticket_status_email_send_failed",
			"ticket_id", ticket.ID,
			"receiver_email", seller.Email,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

// resolveTicketSeller 取出工单与收件卖家，任一为空时记录日志并返回 nil
func (c *Consumer) resolveTicketSeller(ticketID uint, logPrefix string) (*models.SupportTicket, *models.Seller, error) {
	if c.EmailService == nil {
		logger.Warnw(logPrefix+"_skip_email_service_nil", "ticket_id", ticketID)
		return nil, nil, nil
	}
	ticket, err := c.TicketRepo.GetByID(ticketID)
	if err != nil {
		logger.Warnw(logPrefix+"_fetch_ticket_failed", "ticket_id", ticketID, "error", err)
		return nil, nil, err
	}
	if ticket == nil {
		logger.Debugw(logPrefix+"_skip_ticket_not_found", "ticket_id", ticketID)
		return nil, nil, nil
	}
	seller, err := c.SellerRepo.GetByID(ticket.SellerID)
	if err != nil {
		logger.Warnw(logPrefix+"_fetch_seller_failed", "ticket_id", ticketID, "seller_id", ticket.SellerID, "error", err)
		return nil, nil, err
	}
	if seller == nil || strings.TrimSpace(seller.Email) == "" {
		logger.Debugw(logPrefix+"_skip_empty_receiver", "ticket_id", ticketID, "seller_id", ticket.SellerID)
		return nil, nil, nil
	}
	return ticket, seller, nil
}
