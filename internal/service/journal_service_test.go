package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"
	"github.com/studio360-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupJournalServiceTest(t *testing.T) *JournalService {
	t.Helper()
	dsn := fmt.Sprintf("file:journal_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.JournalEntry{}, &models.JournalLine{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewJournalService(repository.NewJournalRepository(db))
}

func cashSaleInput(sellerID uint, amount float64) JournalEntryInput {
	return JournalEntryInput{
		SellerID: sellerID,
		Remarks:  "Cash sale",
		Lines: []JournalLineInput{
			{AccountCode: constants.AccountCodeCash, Debit: models.NewMoneyFromFloat(amount)},
			{AccountCode: constants.AccountCodeSalesRevenue, Credit: models.NewMoneyFromFloat(amount)},
		},
	}
}

func TestCreateJournalEntry(t *testing.T) {
	svc := setupJournalServiceTest(t)

	entry, err := svc.Create(cashSaleInput(1, 1500))
	if err != nil {
		t.Fatalf("create entry failed: %v", err)
	}
	if entry.EntryDate.IsZero() {
		t.Fatalf("entry date should default to now")
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("lines want 2 got %d", len(entry.Lines))
	}
	if entry.Lines[0].AccountTitle != "Cash" {
		t.Fatalf("account title want Cash got %s", entry.Lines[0].AccountTitle)
	}

	loaded, err := svc.Get(entry.ID, 1)
	if err != nil {
		t.Fatalf("get entry failed: %v", err)
	}
	if len(loaded.Lines) != 2 {
		t.Fatalf("loaded lines want 2 got %d", len(loaded.Lines))
	}
}

func TestCreateJournalEntryValidation(t *testing.T) {
	svc := setupJournalServiceTest(t)

	// 少于两行
	_, err := svc.Create(JournalEntryInput{SellerID: 1, Lines: []JournalLineInput{
		{AccountCode: constants.AccountCodeCash, Debit: models.NewMoneyFromFloat(100)},
	}})
	if !errors.Is(err, ErrJournalNoLines) {
		t.Fatalf("want ErrJournalNoLines got %v", err)
	}

	// 未知科目
	_, err = svc.Create(JournalEntryInput{SellerID: 1, Lines: []JournalLineInput{
		{AccountCode: "9999", Debit: models.NewMoneyFromFloat(100)},
		{AccountCode: constants.AccountCodeSalesRevenue, Credit: models.NewMoneyFromFloat(100)},
	}})
	if !errors.Is(err, ErrJournalBadAccount) {
		t.Fatalf("want ErrJournalBadAccount got %v", err)
	}

	// 单行同时有借有贷
	_, err = svc.Create(JournalEntryInput{SellerID: 1, Lines: []JournalLineInput{
		{AccountCode: constants.AccountCodeCash, Debit: models.NewMoneyFromFloat(100), Credit: models.NewMoneyFromFloat(100)},
		{AccountCode: constants.AccountCodeSalesRevenue, Credit: models.NewMoneyFromFloat(100)},
	}})
	if !errors.Is(err, ErrJournalLineAmounts) {
		t.Fatalf("want ErrJournalLineAmounts got %v", err)
	}

	// 借贷不平
	_, err = svc.Create(JournalEntryInput{SellerID: 1, Lines: []JournalLineInput{
		{AccountCode: constants.AccountCodeCash, Debit: models.NewMoneyFromFloat(100)},
		{AccountCode: constants.AccountCodeSalesRevenue, Credit: models.NewMoneyFromFloat(90)},
	}})
	if !errors.Is(err, ErrJournalUnbalanced) {
		t.Fatalf("want ErrJournalUnbalanced got %v", err)
	}
}

func TestJournalOwnershipAndDelete(t *testing.T) {
	svc := setupJournalServiceTest(t)
	entry, err := svc.Create(cashSaleInput(1, 500))
	if err != nil {
		t.Fatalf("create entry failed: %v", err)
	}

	// 他人分录按不存在处理
	if _, err := svc.Get(entry.ID, 2); !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("foreign seller want ErrJournalNotFound got %v", err)
	}
	if err := svc.Delete(entry.ID, 2); !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("foreign delete want ErrJournalNotFound got %v", err)
	}

	if err := svc.Delete(entry.ID, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(entry.ID, 1); !errors.Is(err, ErrJournalNotFound) {
		t.Fatalf("deleted entry want ErrJournalNotFound got %v", err)
	}
}

func TestJournalListFilters(t *testing.T) {
	svc := setupJournalServiceTest(t)
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	first := cashSaleInput(1, 100)
	first.EntryDate = older
	if _, err := svc.Create(first); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second := JournalEntryInput{
		SellerID:  1,
		EntryDate: newer,
		Lines: []JournalLineInput{
			{AccountCode: constants.AccountCodeShippingExpense, Debit: models.NewMoneyFromFloat(50)},
			{AccountCode: constants.AccountCodeCash, Credit: models.NewMoneyFromFloat(50)},
		},
	}
	if _, err := svc.Create(second); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries, total, err := svc.List(repository.JournalListFilter{SellerID: 1, DateFrom: &from})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("date filter want 1 entry got total=%d len=%d", total, len(entries))
	}

	entries, total, err = svc.List(repository.JournalListFilter{SellerID: 1, Account: constants.AccountCodeShippingExpense})
	if err != nil {
		t.Fatalf("account filter failed: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("account filter want 1 entry got total=%d len=%d", total, len(entries))
	}

	// 其他卖家不可见
	_, total, err = svc.List(repository.JournalListFilter{SellerID: 2})
	if err != nil {
		t.Fatalf("foreign list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("foreign seller total want 0 got %d", total)
	}
}

func TestLedgerSummaryBalances(t *testing.T) {
	svc := setupJournalServiceTest(t)
	if _, err := svc.Create(cashSaleInput(1, 1500)); err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	if _, err := svc.Create(JournalEntryInput{
		SellerID: 1,
		Lines: []JournalLineInput{
			{AccountCode: constants.AccountCodeShippingExpense, Debit: models.NewMoneyFromFloat(420)},
			{AccountCode: constants.AccountCodeCash, Credit: models.NewMoneyFromFloat(420)},
		},
	}); err != nil {
		t.Fatalf("create expense failed: %v", err)
	}

	summary, err := svc.Ledger(1)
	if err != nil {
		t.Fatalf("ledger failed: %v", err)
	}
	if summary.TotalDebit.String() != "1920.00" || summary.TotalCredit.String() != "1920.00" {
		t.Fatalf("totals want 1920.00/1920.00 got %s/%s", summary.TotalDebit.String(), summary.TotalCredit.String())
	}

	byCode := make(map[string]LedgerAccount, len(summary.Accounts))
	for _, account := range summary.Accounts {
		byCode[account.AccountCode] = account
	}
	cash := byCode[constants.AccountCodeCash]
	if cash.Balance.String() != "1080.00" || cash.BalanceSide != "debit" {
		t.Fatalf("cash balance want 1080.00 debit got %s %s", cash.Balance.String(), cash.BalanceSide)
	}
	sales := byCode[constants.AccountCodeSalesRevenue]
	if sales.Balance.String() != "1500.00" || sales.BalanceSide != "credit" {
		t.Fatalf("sales balance want 1500.00 credit got %s %s", sales.Balance.String(), sales.BalanceSide)
	}
}

func TestChartOfAccountsOrdered(t *testing.T) {
	svc := setupJournalServiceTest(t)
	accounts := svc.ChartOfAccounts()
	if len(accounts) != len(constants.AccountCodes) {
		t.Fatalf("accounts want %d got %d", len(constants.AccountCodes), len(accounts))
	}
	if accounts[0].AccountCode != constants.AccountCodeCash {
		t.Fatalf("first account want cash got %s", accounts[0].AccountCode)
	}
}
