package service

import (
	"strings"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VoucherService 代金券核销服务
type VoucherService struct {
	voucherRepo repository.VoucherRepository
	usageRepo   repository.VoucherUsageRepository
}

// NewVoucherService 创建代金券核销服务
func NewVoucherService(voucherRepo repository.VoucherRepository, usageRepo repository.VoucherUsageRepository) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		usageRepo:   usageRepo,
	}
}

// VoucherEvaluation 资格校验与折扣计算结果
type VoucherEvaluation struct {
	Voucher        *models.Voucher `json:"voucher"`
	DiscountAmount models.Money    `json:"discountAmount"`
	FinalAmount    models.Money    `json:"finalAmount"`
	IsFreeShipping bool            `json:"isFreeShipping"`
}

// checkEligibility 按固定顺序校验资格，不修改任何状态
func checkEligibility(voucher *models.Voucher, orderAmount models.Money, now time.Time) error {
	if voucher.Status != constants.VoucherStatusActive {
		return ErrVoucherNotActive
	}
	if voucher.IsExpiredAt(now) {
		return ErrVoucherExpired
	}
	if now.Before(voucher.ValidFrom) {
		return ErrVoucherNotYetValid
	}
	if !voucher.HasUsageLeft() {
		return ErrVoucherUsageLimit
	}
	if orderAmount.Decimal.LessThan(voucher.MinOrderAmount.Decimal) {
		return NewMinOrderAmountError(voucher.MinOrderAmount)
	}
	return nil
}

// computeDiscount 按类型计算折扣金额
// buy_x_get_y 不在金额上定价，折扣为 0
func computeDiscount(voucher *models.Voucher, orderAmount models.Money) (models.Money, bool) {
	switch voucher.Type {
	case constants.VoucherTypePercentage:
		discount := orderAmount.Decimal.Mul(voucher.Value.Decimal).Div(decimal.NewFromInt(100))
		if voucher.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(voucher.MaxDiscount.Decimal) {
			discount = voucher.MaxDiscount.Decimal
		}
		return models.NewMoneyFromDecimal(discount), false
	case constants.VoucherTypeFixedAmount:
		discount := voucher.Value.Decimal
		if discount.GreaterThan(orderAmount.Decimal) {
			discount = orderAmount.Decimal
		}
		return models.NewMoneyFromDecimal(discount), false
	case constants.VoucherTypeFreeShipping:
		return models.Money{}, true
	default:
		return models.Money{}, false
	}
}

// Evaluate 只读校验：检查资格并计算折扣，不消耗使用次数
func (s *VoucherService) Evaluate(code string, orderAmount models.Money) (*VoucherEvaluation, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrVoucherInvalidCode
	}

	voucher, err := s.voucherRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherInvalidCode
	}

	now := time.Now()
	if err := checkEligibility(voucher, orderAmount, now); err != nil {
		return nil, err
	}

	discount, freeShipping := computeDiscount(voucher, orderAmount)
	final := models.NewMoneyFromDecimal(orderAmount.Decimal.Sub(discount.Decimal))

	return &VoucherEvaluation{
		Voucher:        voucher,
		DiscountAmount: discount,
		FinalAmount:    final,
		IsFreeShipping: freeShipping,
	}, nil
}

// Apply 消耗一次使用次数
// 自增带余量守卫，并发下不会超发；用完额度后状态翻转为 used
// sellerID 大于 0 时校验归属，他人的券按不存在处理
func (s *VoucherService) Apply(id, sellerID uint) (*models.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	if sellerID > 0 && voucher.SellerID != sellerID {
		return nil, ErrVoucherNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.voucherRepo.WithTx(tx)
		consumed, err := repo.TryConsume(voucher.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrVoucherUsageLimit
		}
		return repo.MarkUsedIfExhausted(voucher.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.voucherRepo.GetByID(id)
}

// Redeem 原子核销：资格校验、折扣计算、计数自增与核销记录在同一事务内完成
// 两个并发核销同一张限量券时，最多只有额度内的请求成功
func (s *VoucherService) Redeem(code string, orderAmount models.Money) (*VoucherEvaluation, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrVoucherInvalidCode
	}

	var evaluation *VoucherEvaluation
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		voucherRepo := s.voucherRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)

		voucher, err := voucherRepo.GetByCode(trimmed)
		if err != nil {
			return err
		}
		if voucher == nil {
			return ErrVoucherInvalidCode
		}

		now := time.Now()
		if err := checkEligibility(voucher, orderAmount, now); err != nil {
			return err
		}

		consumed, err := voucherRepo.TryConsume(voucher.ID)
		if err != nil {
			return err
		}
		if !consumed {
			// 余量守卫拒绝，读到的快照已经过期
			return ErrVoucherUsageLimit
		}
		if err := voucherRepo.MarkUsedIfExhausted(voucher.ID); err != nil {
			return err
		}

		discount, freeShipping := computeDiscount(voucher, orderAmount)
		final := models.NewMoneyFromDecimal(orderAmount.Decimal.Sub(discount.Decimal))

		usage := &models.VoucherUsage{
			VoucherID:      voucher.ID,
			Code:           voucher.Code,
			OrderAmount:    orderAmount,
			DiscountAmount: discount,
			FreeShipping:   freeShipping,
			RedeemedAt:     now,
		}
		if err := usageRepo.Create(usage); err != nil {
			return err
		}

		reloaded, err := voucherRepo.GetByID(voucher.ID)
		if err != nil {
			return err
		}
		evaluation = &VoucherEvaluation{
			Voucher:        reloaded,
			DiscountAmount: discount,
			FinalAmount:    final,
			IsFreeShipping: freeShipping,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return evaluation, nil
}
