package service

import (
	"errors"
	"fmt"

	"github.com/studio360-next/internal/models"
)

// 通用错误
var (
	ErrNotFound = errors.New("resource not found")
)

// 代金券校验错误（首个失败即返回，文案直接面向前端）
var (
	ErrVoucherNameRequired   = errors.New("Voucher name is required")
	ErrVoucherTypeRequired   = errors.New("Voucher type is required")
	ErrVoucherTypeInvalid    = errors.New("Invalid voucher type")
	ErrVoucherValueInvalid   = errors.New("Voucher value must be greater than 0")
	ErrVoucherPercentTooHigh = errors.New("Percentage discount cannot exceed 100%")
	ErrVoucherMinNegative    = errors.New("Minimum order amount cannot be negative")
	ErrVoucherMaxNegative    = errors.New("Maximum discount cannot be negative")
	ErrVoucherUsageLimitLow  = errors.New("Usage limit must be at least 1")
	ErrVoucherDateOrder      = errors.New("Valid from date must be before valid until date")
)

// 代金券管理与核销错误
var (
	ErrVoucherNotFound     = errors.New("Voucher not found")
	ErrVoucherCodeTaken    = errors.New("Voucher code already exists")
	ErrVoucherCodeGenerate = errors.New("Failed to generate unique voucher code")
	ErrVoucherInvalidCode  = errors.New("Invalid voucher code")
	ErrVoucherNotActive    = errors.New("Voucher is not active")
	ErrVoucherExpired      = errors.New("Voucher has expired")
	ErrVoucherNotYetValid  = errors.New("Voucher is not yet valid")
	ErrVoucherUsageLimit   = errors.New("Voucher usage limit exceeded")
)

// MinOrderAmountError 未达到使用门槛错误，携带门槛金额
type MinOrderAmountError struct {
	MinOrderAmount models.Money
}

// Error 实现 error 接口
func (e *MinOrderAmountError) Error() string {
	return fmt.Sprintf("Minimum order amount of %s required", e.MinOrderAmount.String())
}

// NewMinOrderAmountError 创建使用门槛错误
func NewMinOrderAmountError(min models.Money) *MinOrderAmountError {
	return &MinOrderAmountError{MinOrderAmount: min}
}

// 配送与运费错误
var (
	ErrCourierNotFound     = errors.New("Courier not found")
	ErrCourierNameRequired = errors.New("Courier name is required")
	ErrShippingRegion      = errors.New("Invalid shipping region")
	ErrShippingRateInvalid = errors.New("Shipping rate must not be negative")
	ErrCourierRateNotFound = errors.New("Courier rate not found")
)

// 公告错误
var (
	ErrAnnouncementNotFound     = errors.New("Announcement not found")
	ErrAnnouncementTitleMissing = errors.New("Announcement title is required")
	ErrAnnouncementBodyMissing  = errors.New("Announcement message is required")
	ErrAnnouncementTypeInvalid  = errors.New("Invalid announcement type")
)

// 工单错误
var (
	ErrTicketNotFound       = errors.New("Support ticket not found")
	ErrTicketClosed         = errors.New("Support ticket is closed")
	ErrTicketSubjectMissing = errors.New("Ticket subject is required")
	ErrTicketBodyMissing    = errors.New("Ticket message is required")
	ErrTicketStatusInvalid  = errors.New("Invalid ticket status")
	ErrTicketAccessDenied   = errors.New("Ticket does not belong to this seller")
)

// 日记账错误
var (
	ErrJournalNotFound    = errors.New("Journal entry not found")
	ErrJournalNoLines     = errors.New("Journal entry requires at least two lines")
	ErrJournalUnbalanced  = errors.New("Journal entry is not balanced: total debits must equal total credits")
	ErrJournalBadAccount  = errors.New("Unknown account code")
	ErrJournalLineAmounts = errors.New("Each line requires a debit or credit amount")
)

// 认证与账号错误
var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrShopNameRequired     = errors.New("shop name is required")
	ErrCaptchaRequired      = errors.New("captcha is required")
	ErrCaptchaInvalid       = errors.New("captcha verification failed")
	ErrCaptchaConfigInvalid = errors.New("captcha configuration is invalid")
	ErrWeakPassword         = errors.New("password does not meet the password policy")
)

// 邮件发送错误
var (
	ErrEmailServiceDisabled      = errors.New("email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")
	ErrEmailRecipientRejected    = errors.New("recipient address rejected by mail server")
	ErrSMTPConfigInvalid         = errors.New("SMTP configuration is invalid")
)
