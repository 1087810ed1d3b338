package repository

import (
	"errors"

	"github.com/studio360-next/internal/models"

	"gorm.io/gorm"
)

// JournalRepository 日记账数据访问接口
type JournalRepository interface {
	GetByID(id uint) (*models.JournalEntry, error)
	Create(entry *models.JournalEntry) error
	Delete(id uint) error
	List(filter JournalListFilter) ([]models.JournalEntry, int64, error)
	LedgerSummary(sellerID uint) ([]LedgerAccountSummary, error)
}

// LedgerAccountSummary 总账科目汇总行
type LedgerAccountSummary struct {
	AccountCode  string       `json:"account_code"`
	AccountTitle string       `json:"account_title"`
	TotalDebit   models.Money `json:"total_debit"`
	TotalCredit  models.Money `json:"total_credit"`
}

// GormJournalRepository GORM 实现
type GormJournalRepository struct {
	db *gorm.DB
}

// NewJournalRepository 创建日记账仓库
func NewJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// GetByID 根据ID获取分录（含明细行）
func (r *GormJournalRepository) GetByID(id uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.Preload("Lines").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Create 创建分录（明细行随分录一起写入）
func (r *GormJournalRepository) Create(entry *models.JournalEntry) error {
	return r.db.Create(entry).Error
}

// Delete 删除分录及其明细行
func (r *GormJournalRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&models.JournalLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JournalEntry{}, id).Error
	})
}

// List 查询分录列表（按记账日期倒序，含明细行）
func (r *GormJournalRepository) List(filter JournalListFilter) ([]models.JournalEntry, int64, error) {
	var entries []models.JournalEntry
	query := r.db.Model(&models.JournalEntry{})

	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("entry_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("entry_date <= ?", *filter.DateTo)
	}
	if filter.Account != "" {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.JournalLine{}).Select("entry_id").Where("account_code = ?", filter.Account),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Lines").Order("entry_date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// LedgerSummary 按科目汇总借贷发生额
func (r *GormJournalRepository) LedgerSummary(sellerID uint) ([]LedgerAccountSummary, error) {
	rows := make([]LedgerAccountSummary, 0)
	query := r.db.Model(&models.JournalLine{}).
		Select("journal_lines.account_code, journal_lines.account_title, " +
			"COALESCE(SUM(journal_lines.debit), 0) AS total_debit, " +
			"COALESCE(SUM(journal_lines.credit), 0) AS total_credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.entry_id").
		Where("journal_entries.deleted_at IS NULL")

	if sellerID > 0 {
		query = query.Where("journal_entries.seller_id = ?", sellerID)
	}

	err := query.Group("journal_lines.account_code, journal_lines.account_title").
		Order("journal_lines.account_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
