package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement 系统公告
type Announcement struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`              // 标题
	Message   string         `gorm:"type:text;not null" json:"message"`                    // 正文
	Type      string         `gorm:"type:varchar(20);not null;default:'info'" json:"type"` // 类型（info/warning/maintenance）
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`         // 是否启用
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                               // 生效时间
	ExpiresAt *time.Time     `gorm:"index" json:"expires_at"`                              // 失效时间
	CreatedBy uint           `gorm:"index" json:"created_by"`                              // 创建管理员ID
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Announcement) TableName() string {
	return "announcements"
}
