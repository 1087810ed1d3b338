package repository

import (
	"errors"
	"strings"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// TicketRepository 工单数据访问接口
type TicketRepository interface {
	GetByID(id uint) (*models.SupportTicket, error)
	Create(ticket *models.SupportTicket) error
	Update(ticket *models.SupportTicket) error
	List(filter TicketListFilter) ([]models.SupportTicket, int64, error)
	Stats(sellerID uint) (TicketStats, error)
	CreateMessage(message *models.TicketMessage) error
	ListMessages(ticketID uint) ([]models.TicketMessage, error)
	WithTx(tx *gorm.DB) *GormTicketRepository
}

// TicketStats 工单统计汇总
type TicketStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Closed     int64 `json:"closed"`
}

// GormTicketRepository GORM 实现
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单仓库
func NewTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTicketRepository) WithTx(tx *gorm.DB) *GormTicketRepository {
	if tx == nil {
		return r
	}
	return &GormTicketRepository{db: tx}
}

// GetByID 根据ID获取工单
func (r *GormTicketRepository) GetByID(id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := r.db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// Create 创建工单
func (r *GormTicketRepository) Create(ticket *models.SupportTicket) error {
	return r.db.Create(ticket).Error
}

// Update 更新工单
func (r *GormTicketRepository) Update(ticket *models.SupportTicket) error {
	return r.db.Save(ticket).Error
}

// List 获取工单列表
func (r *GormTicketRepository) List(filter TicketListFilter) ([]models.SupportTicket, int64, error) {
	var tickets []models.SupportTicket
	query := r.db.Model(&models.SupportTicket{})

	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildSearchCondition(r.db, []string{"subject"})
		like := "%" + search + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Stats 统计工单各状态数量
func (r *GormTicketRepository) Stats(sellerID uint) (TicketStats, error) {
	var stats TicketStats
	base := func() *gorm.DB {
		q := r.db.Model(&models.SupportTicket{})
		if sellerID > 0 {
			q = q.Where("seller_id = ?", sellerID)
		}
		return q
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", constants.TicketStatusOpen).Count(&stats.Open).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", constants.TicketStatusInProgress).Count(&stats.InProgress).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", constants.TicketStatusClosed).Count(&stats.Closed).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// CreateMessage 写入工单留言
func (r *GormTicketRepository) CreateMessage(message *models.TicketMessage) error {
	return r.db.Create(message).Error
}

// ListMessages 获取工单全部留言（时间正序）
func (r *GormTicketRepository) ListMessages(ticketID uint) ([]models.TicketMessage, error) {
	messages := make([]models.TicketMessage, 0)
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
