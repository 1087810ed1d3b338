package models

import (
	"time"

	"github.com/studio360-next/internal/constants"
)

// Voucher 代金券
type Voucher struct {
	ID             uint       `gorm:"primarykey" json:"id"`                                        // 主键（数据库自增）
	Code           string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`           // 兑换码（8 位大写字母数字）
	Name           string     `gorm:"type:varchar(120);not null" json:"name"`                      // 名称
	Description    string     `gorm:"type:varchar(500)" json:"description"`                        // 描述
	Type           string     `gorm:"type:varchar(20);not null;index" json:"type"`                 // 类型（percentage/fixed_amount/free_shipping/buy_x_get_y）
	Value          Money      `gorm:"type:decimal(20,2);not null" json:"value"`                    // 折扣数值（百分比或固定金额）
	MinOrderAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"minOrderAmount"` // 使用门槛
	MaxDiscount    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"maxDiscount"`    // 最大优惠金额（0 表示不设上限）
	UsageLimit     int        `gorm:"not null;default:0" json:"usageLimit"`                        // 总使用上限（0 表示不限制）
	UsedCount      int        `gorm:"not null;default:0" json:"usedCount"`                         // 已使用次数
	ValidFrom      time.Time  `gorm:"index" json:"validFrom"`                                      // 生效时间
	ValidUntil     *time.Time `gorm:"index" json:"validUntil"`                                     // 失效时间（nil 表示长期有效）
	ApplicableTo   string     `gorm:"type:varchar(20);not null;default:'all'" json:"applicableTo"` // 适用范围（all/products/categories）
	ApplicableIDs  Int64List  `gorm:"type:text" json:"applicableIds"`                              // 适用范围 ID 集合
	Status         string     `gorm:"type:varchar(20);not null;index" json:"status"`               // 状态（active/inactive/used，expired 为推导值）
	SellerID       uint       `gorm:"index;not null" json:"sellerId"`                              // 所属卖家
	CreatedBy      string     `gorm:"type:varchar(120)" json:"createdBy"`                          // 创建者标识
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`                                      // 创建时间
	UpdatedAt      time.Time  `json:"updatedAt"`                                                   // 更新时间
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}

// IsExpiredAt 判断在指定时刻是否已过有效期
func (v *Voucher) IsExpiredAt(now time.Time) bool {
	return v.ValidUntil != nil && now.After(*v.ValidUntil)
}

// EffectiveStatus 返回对外展示状态
// 已过有效期的券无论落库状态如何均视为 expired
func (v *Voucher) EffectiveStatus(now time.Time) string {
	if v.Status != constants.VoucherStatusUsed && v.IsExpiredAt(now) {
		return constants.VoucherStatusExpired
	}
	return v.Status
}

// HasUsageLeft 判断是否还有剩余可用次数
func (v *Voucher) HasUsageLeft() bool {
	return v.UsageLimit == 0 || v.UsedCount < v.UsageLimit
}

// VoucherView 对外展示结构，status 为推导状态
type VoucherView struct {
	Voucher
	Status string `json:"status"`
}

// View 构建展示对象，status 字段替换为推导状态
func (v *Voucher) View(now time.Time) VoucherView {
	return VoucherView{Voucher: *v, Status: v.EffectiveStatus(now)}
}
