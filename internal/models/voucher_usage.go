package models

import (
	"time"
)

// VoucherUsage 代金券核销记录
type VoucherUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                        // 主键
	VoucherID      uint      `gorm:"index;not null" json:"voucherId"`                             // 代金券ID
	Code           string    `gorm:"type:varchar(16);index;not null" json:"code"`                 // 核销时的兑换码快照
	OrderAmount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"orderAmount"`    // 订单金额
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discountAmount"` // 优惠金额
	FreeShipping   bool      `gorm:"not null;default:false" json:"freeShipping"`                  // 是否免运费
	RedeemedAt     time.Time `gorm:"index" json:"redeemedAt"`                                     // 核销时间
}

// TableName 指定表名
func (VoucherUsage) TableName() string {
	return "voucher_usages"
}
