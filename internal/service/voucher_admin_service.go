package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/shopspring/decimal"
)

// VoucherAdminService 代金券管理服务
type VoucherAdminService struct {
	voucherRepo repository.VoucherRepository
	usageRepo   repository.VoucherUsageRepository
}

// NewVoucherAdminService 创建代金券管理服务
func NewVoucherAdminService(voucherRepo repository.VoucherRepository, usageRepo repository.VoucherUsageRepository) *VoucherAdminService {
	return &VoucherAdminService{
		voucherRepo: voucherRepo,
		usageRepo:   usageRepo,
	}
}

// VoucherInput 创建/更新代金券输入
type VoucherInput struct {
	Code           string
	Name           string
	Description    string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	UsageLimit     int
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	ApplicableTo   string
	ApplicableIDs  []int64
	Status         string
	SellerID       uint
	CreatedBy      string
}

// validateVoucherInput 按固定顺序校验输入，返回首个失败
func validateVoucherInput(input *VoucherInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrVoucherNameRequired
	}
	voucherType := strings.ToLower(strings.TrimSpace(input.Type))
	if voucherType == "" {
		return ErrVoucherTypeRequired
	}
	validType := false
	for _, t := range constants.VoucherTypes {
		if voucherType == t {
			validType = true
			break
		}
	}
	if !validType {
		return ErrVoucherTypeInvalid
	}
	input.Type = voucherType

	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrVoucherValueInvalid
	}
	if voucherType == constants.VoucherTypePercentage && input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrVoucherPercentTooHigh
	}
	if input.MinOrderAmount.Decimal.IsNegative() {
		return ErrVoucherMinNegative
	}
	if input.MaxDiscount.Decimal.IsNegative() {
		return ErrVoucherMaxNegative
	}
	if input.UsageLimit < 0 {
		return ErrVoucherUsageLimitLow
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && !input.ValidFrom.Before(*input.ValidUntil) {
		return ErrVoucherDateOrder
	}
	return nil
}

// generateVoucherCode 生成 8 位大写字母数字兑换码
func generateVoucherCode() (string, error) {
	charset := constants.VoucherCodeCharset
	max := big.NewInt(int64(len(charset)))
	buf := make([]byte, constants.VoucherCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf), nil
}

// resolveCode 确定兑换码：外部提供的码校验唯一性，否则随机生成并重试
func (s *VoucherAdminService) resolveCode(input *VoucherInput) (string, error) {
	if provided := strings.ToUpper(strings.TrimSpace(input.Code)); provided != "" {
		taken, err := s.voucherRepo.ExistsByCode(provided)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrVoucherCodeTaken
		}
		return provided, nil
	}

	for attempt := 0; attempt < constants.VoucherCodeMaxAttempts; attempt++ {
		code, err := generateVoucherCode()
		if err != nil {
			return "", err
		}
		taken, err := s.voucherRepo.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrVoucherCodeGenerate
}

// Create 创建代金券
func (s *VoucherAdminService) Create(input VoucherInput) (*models.Voucher, error) {
	if err := validateVoucherInput(&input); err != nil {
		return nil, err
	}

	code, err := s.resolveCode(&input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	validFrom := now
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != constants.VoucherStatusInactive {
		status = constants.VoucherStatusActive
	}

	applicableTo := strings.ToLower(strings.TrimSpace(input.ApplicableTo))
	if applicableTo == "" {
		applicableTo = constants.VoucherApplicableAll
	}

	voucher := &models.Voucher{
		Code:           code,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Type:           input.Type,
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		UsageLimit:     input.UsageLimit,
		UsedCount:      0,
		ValidFrom:      validFrom,
		ValidUntil:     input.ValidUntil,
		ApplicableTo:   applicableTo,
		ApplicableIDs:  models.Int64List(input.ApplicableIDs),
		Status:         status,
		SellerID:       input.SellerID,
		CreatedBy:      strings.TrimSpace(input.CreatedBy),
	}

	if err := s.voucherRepo.Create(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Get 根据ID获取代金券
// sellerID 大于 0 时校验归属，他人的券按不存在处理
func (s *VoucherAdminService) Get(id, sellerID uint) (*models.Voucher, error) {
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
	return voucher, nil
}

// List 获取代金券列表
func (s *VoucherAdminService) List(filter repository.VoucherListFilter) ([]models.Voucher, int64, error) {
	if filter.Now.IsZero() {
		filter.Now = time.Now()
	}
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.voucherRepo.List(filter)
}

// Update 全量更新代金券（兑换码与归属不可变）
func (s *VoucherAdminService) Update(id uint, input VoucherInput) (*models.Voucher, error) {
	existing, err := s.Get(id, input.SellerID)
	if err != nil {
		return nil, err
	}

	if err := validateVoucherInput(&input); err != nil {
		return nil, err
	}

	validFrom := existing.ValidFrom
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}

	applicableTo := strings.ToLower(strings.TrimSpace(input.ApplicableTo))
	if applicableTo == "" {
		applicableTo = constants.VoucherApplicableAll
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case constants.VoucherStatusActive, constants.VoucherStatusInactive, constants.VoucherStatusUsed:
	default:
		status = existing.Status
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)
	existing.Type = input.Type
	existing.Value = input.Value
	existing.MinOrderAmount = input.MinOrderAmount
	existing.MaxDiscount = input.MaxDiscount
	existing.UsageLimit = input.UsageLimit
	existing.ValidFrom = validFrom
	existing.ValidUntil = input.ValidUntil
	existing.ApplicableTo = applicableTo
	existing.ApplicableIDs = models.Int64List(input.ApplicableIDs)
	existing.Status = status

	if err := s.voucherRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 物理删除代金券
func (s *VoucherAdminService) Delete(id, sellerID uint) error {
	if _, err := s.Get(id, sellerID); err != nil {
		return err
	}
	return s.voucherRepo.Delete(id)
}

// ToggleStatus 在 active/inactive 之间切换，无条件可重复执行
func (s *VoucherAdminService) ToggleStatus(id, sellerID uint) (*models.Voucher, error) {
	voucher, err := s.Get(id, sellerID)
	if err != nil {
		return nil, err
	}

	next := constants.VoucherStatusActive
	if voucher.Status == constants.VoucherStatusActive {
		next = constants.VoucherStatusInactive
	}
	if err := s.voucherRepo.UpdateStatus(voucher.ID, next); err != nil {
		return nil, err
	}
	voucher.Status = next
	return voucher, nil
}

// VoucherStatsSummary 统计响应：状态汇总 + 按类型分布
type VoucherStatsSummary struct {
	Summary   repository.VoucherStats       `json:"summary"`
	TypeStats []repository.VoucherTypeCount `json:"typeStats"`
}

// Stats 统计汇总
func (s *VoucherAdminService) Stats(sellerID uint) (VoucherStatsSummary, error) {
	var result VoucherStatsSummary
	summary, err := s.voucherRepo.Stats(sellerID, time.Now())
	if err != nil {
		return result, err
	}
	typeStats, err := s.voucherRepo.TypeStats(sellerID)
	if err != nil {
		return result, err
	}
	result.Summary = summary
	result.TypeStats = typeStats
	return result, nil
}

// ListUsages 查询某券的核销历史
func (s *VoucherAdminService) ListUsages(voucherID, sellerID uint, page, pageSize int) ([]models.VoucherUsage, int64, error) {
	if _, err := s.Get(voucherID, sellerID); err != nil {
		return nil, 0, err
	}
	return s.usageRepo.List(repository.VoucherUsageListFilter{
		VoucherID: voucherID,
		Page:      page,
		PageSize:  pageSize,
	})
}
