package models

import (
	"time"

	"gorm.io/gorm"
)

// Courier 物流承运商（按卖家隔离）
type Courier struct {
	ID        uint           `gorm:"primarykey" json:"id"`                         // 主键
	SellerID  uint           `gorm:"index;not null" json:"seller_id"`              // 所属卖家
	Name      string         `gorm:"type:varchar(120);not null;index" json:"name"` // 名称
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`         // 排序
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Courier) TableName() string {
	return "couriers"
}

// CourierRate 承运商分区运费
type CourierRate struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                           // 主键
	CourierID   uint           `gorm:"index:idx_courier_region,unique;not null" json:"courier_id"`     // 承运商ID
	Region      string         `gorm:"type:varchar(40);index:idx_courier_region,unique" json:"region"` // 配送区域
	Description string         `gorm:"type:varchar(255)" json:"description"`                           // 说明（时效等）
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`             // 运费
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`                   // 是否启用
	CreatedAt   time.Time      `json:"created_at"`                                                     // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (CourierRate) TableName() string {
	return "courier_rates"
}
