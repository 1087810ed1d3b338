package service

import (
	"strings"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/shopspring/decimal"
)

// JournalService 普通日记账服务
type JournalService struct {
	journalRepo repository.JournalRepository
}

// NewJournalService 创建日记账服务
func NewJournalService(journalRepo repository.JournalRepository) *JournalService {
	return &JournalService{journalRepo: journalRepo}
}

// JournalLineInput 分录明细行输入
type JournalLineInput struct {
	AccountCode string
	Debit       models.Money
	Credit      models.Money
}

// JournalEntryInput 创建分录输入
type JournalEntryInput struct {
	SellerID  uint
	EntryDate time.Time
	Reference string
	Remarks   string
	Lines     []JournalLineInput
}

// LedgerAccount 总账科目行（含余额）
type LedgerAccount struct {
	AccountCode  string       `json:"accountCode"`
	AccountTitle string       `json:"accountTitle"`
	TotalDebit   models.Money `json:"totalDebit"`
	TotalCredit  models.Money `json:"totalCredit"`
	Balance      models.Money `json:"balance"`
	BalanceSide  string       `json:"balanceSide"`
}

// LedgerSummary 总账汇总
type LedgerSummary struct {
	Accounts    []LedgerAccount `json:"accounts"`
	TotalDebit  models.Money    `json:"totalDebit"`
	TotalCredit models.Money    `json:"totalCredit"`
}

// validateLines 校验明细行：科目存在、单行借贷二选一、借贷合计相等
func validateLines(inputs []JournalLineInput) ([]models.JournalLine, error) {
	if len(inputs) < 2 {
		return nil, ErrJournalNoLines
	}

	lines := make([]models.JournalLine, 0, len(inputs))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, input := range inputs {
		code := strings.TrimSpace(input.AccountCode)
		title, ok := constants.ChartOfAccounts[code]
		if !ok {
			return nil, ErrJournalBadAccount
		}
		debit := input.Debit.Decimal
		credit := input.Credit.Decimal
		if debit.IsNegative() || credit.IsNegative() {
			return nil, ErrJournalLineAmounts
		}
		// 单行必须是纯借方或纯贷方
		if debit.IsZero() == credit.IsZero() {
			return nil, ErrJournalLineAmounts
		}
		totalDebit = totalDebit.Add(debit)
		totalCredit = totalCredit.Add(credit)

		lines = append(lines, models.JournalLine{
			AccountCode:  code,
			AccountTitle: title,
			Debit:        models.NewMoneyFromDecimal(debit),
			Credit:       models.NewMoneyFromDecimal(credit),
		})
	}

	if !totalDebit.Equal(totalCredit) {
		return nil, ErrJournalUnbalanced
	}
	return lines, nil
}

// Create 创建分录
func (s *JournalService) Create(input JournalEntryInput) (*models.JournalEntry, error) {
	lines, err := validateLines(input.Lines)
	if err != nil {
		return nil, err
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &models.JournalEntry{
		SellerID:  input.SellerID,
		EntryDate: entryDate,
		Reference: strings.TrimSpace(input.Reference),
		Remarks:   strings.TrimSpace(input.Remarks),
		Lines:     lines,
	}
	if err := s.journalRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get 获取分录详情
func (s *JournalService) Get(id uint, sellerID uint) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrJournalNotFound
	}
	if sellerID > 0 && entry.SellerID != sellerID {
		return nil, ErrJournalNotFound
	}
	return entry, nil
}

// Delete 删除分录及明细行
func (s *JournalService) Delete(id uint, sellerID uint) error {
	if _, err := s.Get(id, sellerID); err != nil {
		return err
	}
	return s.journalRepo.Delete(id)
}

// List 获取分录列表
func (s *JournalService) List(filter repository.JournalListFilter) ([]models.JournalEntry, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	return s.journalRepo.List(filter)
}

// Ledger 总账汇总
// 余额取借贷差额的绝对值，方向由差额符号决定
func (s *JournalService) Ledger(sellerID uint) (*LedgerSummary, error) {
	rows, err := s.journalRepo.LedgerSummary(sellerID)
	if err != nil {
		return nil, err
	}

	summary := &LedgerSummary{Accounts: make([]LedgerAccount, 0, len(rows))}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, row := range rows {
		diff := row.TotalDebit.Decimal.Sub(row.TotalCredit.Decimal)
		account := LedgerAccount{
			AccountCode:  row.AccountCode,
			AccountTitle: row.AccountTitle,
			TotalDebit:   row.TotalDebit,
			TotalCredit:  row.TotalCredit,
			Balance:      models.NewMoneyFromDecimal(diff.Abs()),
			BalanceSide:  "debit",
		}
		if diff.IsNegative() {
			account.BalanceSide = "credit"
		}
		totalDebit = totalDebit.Add(row.TotalDebit.Decimal)
		totalCredit = totalCredit.Add(row.TotalCredit.Decimal)
		summary.Accounts = append(summary.Accounts, account)
	}

	summary.TotalDebit = models.NewMoneyFromDecimal(totalDebit)
	summary.TotalCredit = models.NewMoneyFromDecimal(totalCredit)
	return summary, nil
}

// ChartOfAccounts 返回可用科目表
func (s *JournalService) ChartOfAccounts() []LedgerAccount {
	accounts := make([]LedgerAccount, 0, len(constants.ChartOfAccounts))
	for _, code := range constants.AccountCodes {
		accounts = append(accounts, LedgerAccount{
			AccountCode:  code,
			AccountTitle: constants.ChartOfAccounts[code],
		})
	}
	return accounts
}
