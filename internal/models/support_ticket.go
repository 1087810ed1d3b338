package models

import (
	"time"

	"gorm.io/gorm"
)

// SupportTicket 卖家支持工单
type SupportTicket struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                       // 主键
	SellerID    uint           `gorm:"index;not null" json:"seller_id"`                            // 提交卖家ID
	Subject     string         `gorm:"type:varchar(200);not null" json:"subject"`                  // 主题
	Category    string         `gorm:"type:varchar(40);not null;index" json:"category"`            // 分类
	Priority    string         `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"` // 优先级（low/normal/high）
	Status      string         `gorm:"type:varchar(20);not null;index" json:"status"`              // 状态（open/in-progress/closed）
	LastReplyAt *time.Time     `gorm:"index" json:"last_reply_at"`                                 // 最后回复时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// TicketMessage 工单留言
type TicketMessage struct {
	ID         uint           `gorm:"primarykey" json:"id"`                         // 主键
	TicketID   uint           `gorm:"index;not null" json:"ticket_id"`              // 工单ID
	AuthorKind string         `gorm:"type:varchar(20);not null" json:"author_kind"` // 作者身份（seller/admin）
	AuthorID   uint           `gorm:"index;not null" json:"author_id"`              // 作者ID
	Body       string         `gorm:"type:text;not null" json:"body"`               // 内容
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (TicketMessage) TableName() string {
	return "ticket_messages"
}
