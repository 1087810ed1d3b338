package models

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry 普通日记账分录
type JournalEntry struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	SellerID  uint           `gorm:"index;not null" json:"seller_id"`         // 所属卖家
	EntryDate time.Time      `gorm:"index;not null" json:"entry_date"`        // 记账日期
	Reference string         `gorm:"type:varchar(60);index" json:"reference"` // 凭证号
	Remarks   string         `gorm:"type:varchar(500)" json:"remarks"`        // 摘要备注
	Lines     []JournalLine  `gorm:"foreignKey:EntryID" json:"lines"`         // 借贷明细行
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalLine 分录明细行
type JournalLine struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                // 主键
	EntryID      uint           `gorm:"index;not null" json:"entry_id"`                      // 分录ID
	AccountCode  string         `gorm:"type:varchar(20);index;not null" json:"account_code"` // 科目代码
	AccountTitle string         `gorm:"type:varchar(120);not null" json:"account_title"`     // 科目名称
	Debit        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"debit"`  // 借方金额
	Credit       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"credit"` // 贷方金额
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (JournalLine) TableName() string {
	return "journal_lines"
}
