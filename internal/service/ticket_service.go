package service

import (
	"strings"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/logger"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/queue"
	"github.com/studio360-next/internal/repository"

	"gorm.io/gorm"
)

// TicketService 工单服务
type TicketService struct {
	ticketRepo  repository.TicketRepository
	queueClient *queue.Client
}

// NewTicketService 创建工单服务
func NewTicketService(ticketRepo repository.TicketRepository, queueClient *queue.Client) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		queueClient: queueClient,
	}
}

// CreateTicketInput 创建工单输入
type CreateTicketInput struct {
	SellerID uint
	Subject  string
	Category string
	Priority string
	Message  string
}

// TicketDetail 工单详情（含全部留言）
type TicketDetail struct {
	Ticket   *models.SupportTicket  `json:"ticket"`
	Messages []models.TicketMessage `json:"messages"`
}

func normalizeTicketPriority(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case constants.TicketPriorityLow:
		return constants.TicketPriorityLow
	case constants.TicketPriorityHigh:
		return constants.TicketPriorityHigh
	default:
		return constants.TicketPriorityNormal
	}
}

func normalizeTicketCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	switch normalized {
	case constants.TicketCategoryBilling,
		constants.TicketCategoryShipping,
		constants.TicketCategoryVoucher,
		constants.TicketCategoryTechnical:
		return normalized
	default:
		return constants.TicketCategoryGeneral
	}
}

// Create 创建工单并写入首条留言
func (s *TicketService) Create(input CreateTicketInput) (*models.SupportTicket, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, ErrTicketSubjectMissing
	}
	body := strings.TrimSpace(input.Message)
	if body == "" {
		return nil, ErrTicketBodyMissing
	}

	ticket := &models.SupportTicket{
		SellerID: input.SellerID,
		Subject:  subject,
		Category: normalizeTicketCategory(input.Category),
		Priority: normalizeTicketPriority(input.Priority),
		Status:   constants.TicketStatusOpen,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.ticketRepo.WithTx(tx)
		if err := repo.Create(ticket); err != nil {
			return err
		}
		message := &models.TicketMessage{
			TicketID:   ticket.ID,
			AuthorKind: constants.TicketAuthorSeller,
			AuthorID:   input.SellerID,
			Body:       body,
		}
		return repo.CreateMessage(message)
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// List 获取工单列表
func (s *TicketService) List(filter repository.TicketListFilter) ([]models.SupportTicket, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	return s.ticketRepo.List(filter)
}

// Get 获取工单详情
// sellerID 大于 0 时校验归属，平台管理员传 0
func (s *TicketService) Get(id uint, sellerID uint) (*TicketDetail, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if sellerID > 0 && ticket.SellerID != sellerID {
		return nil, ErrTicketAccessDenied
	}
	messages, err := s.ticketRepo.ListMessages(id)
	if err != nil {
		return nil, err
	}
	return &TicketDetail{Ticket: ticket, Messages: messages}, nil
}

// Reply 追加工单留言
// 卖家回复会把工单重新置为 open；管理员回复置为 in-progress 并触发邮件通知
func (s *TicketService) Reply(id uint, authorKind string, authorID uint, body string) (*models.TicketMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrTicketBodyMissing
	}
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if authorKind == constants.TicketAuthorSeller && ticket.SellerID != authorID {
		return nil, ErrTicketAccessDenied
	}
	if ticket.Status == constants.TicketStatusClosed {
		return nil, ErrTicketClosed
	}

	message := &models.TicketMessage{
		TicketID:   ticket.ID,
		AuthorKind: authorKind,
		AuthorID:   authorID,
		Body:       body,
	}
	now := time.Now()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.ticketRepo.WithTx(tx)
		if err := repo.CreateMessage(message); err != nil {
			return err
		}
		ticket.LastReplyAt = &now
		if authorKind == constants.TicketAuthorAdmin {
			ticket.Status = constants.TicketStatusInProgress
		} else {
			ticket.Status = constants.TicketStatusOpen
		}
		return repo.Update(ticket)
	})
	if err != nil {
		return nil, err
	}

	if authorKind == constants.TicketAuthorAdmin {
		payload := queue.TicketReplyEmailPayload{TicketID: ticket.ID, MessageID: message.ID}
		if err := s.queueClient.EnqueueTicketReplyEmail(payload); err != nil {
			logger.Errorw("ticket_enqueue_reply_email_failed", "ticket_id", ticket.ID, "error", err)
		}
	}
	return message, nil
}

// UpdateStatus 变更工单状态
func (s *TicketService) UpdateStatus(id uint, status string) (*models.SupportTicket, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.TicketStatusOpen, constants.TicketStatusInProgress, constants.TicketStatusClosed:
	default:
		return nil, ErrTicketStatusInvalid
	}

	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if ticket.Status == status {
		return ticket, nil
	}

	ticket.Status = status
	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, err
	}

	payload := queue.TicketStatusEmailPayload{TicketID: ticket.ID, Status: status}
	if err := s.queueClient.EnqueueTicketStatusEmail(payload); err != nil {
		logger.Errorw("ticket_enqueue_status_email_failed", "ticket_id", ticket.ID, "error", err)
	}
	return ticket, nil
}

// Stats 工单统计
func (s *TicketService) Stats(sellerID uint) (repository.TicketStats, error) {
	return s.ticketRepo.Stats(sellerID)
}
