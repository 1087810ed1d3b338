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

func setupTicketServiceTest(t *testing.T) *TicketService {
	t.Helper()
	dsn := fmt.Sprintf("file:ticket_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SupportTicket{}, &models.TicketMessage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewTicketService(repository.NewTicketRepository(db), nil)
}

func createTicket(t *testing.T, svc *TicketService, sellerID uint, subject string) *models.SupportTicket {
	t.Helper()
	ticket, err := svc.Create(CreateTicketInput{
		SellerID: sellerID,
		Subject:  subject,
		Category: "billing",
		Priority: "high",
		Message:  "My payout has not arrived yet.",
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	return ticket
}

func TestCreateTicketWritesFirstMessage(t *testing.T) {
	svc := setupTicketServiceTest(t)
	ticket := createTicket(t, svc, 1, "Payout delay")

	if ticket.Status != constants.TicketStatusOpen {
		t.Fatalf("status want open got %s", ticket.Status)
	}
	if ticket.Category != constants.TicketCategoryBilling || ticket.Priority != constants.TicketPriorityHigh {
		t.Fatalf("category/priority not normalized: %s/%s", ticket.Category, ticket.Priority)
	}

	detail, err := svc.Get(ticket.ID, 1)
	if err != nil {
		t.Fatalf("get ticket failed: %v", err)
	}
	if len(detail.Messages) != 1 {
		t.Fatalf("messages want 1 got %d", len(detail.Messages))
	}
	if detail.Messages[0].AuthorKind != constants.TicketAuthorSeller {
		t.Fatalf("author want seller got %s", detail.Messages[0].AuthorKind)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	svc := setupTicketServiceTest(t)

	if _, err := svc.Create(CreateTicketInput{SellerID: 1, Message: "body"}); !errors.Is(err, ErrTicketSubjectMissing) {
		t.Fatalf("want ErrTicketSubjectMissing got %v", err)
	}
	if _, err := svc.Create(CreateTicketInput{SellerID: 1, Subject: "subject"}); !errors.Is(err, ErrTicketBodyMissing) {
		t.Fatalf("want ErrTicketBodyMissing got %v", err)
	}

	// 未知分类与优先级回落到默认值
	ticket, err := svc.Create(CreateTicketInput{
		SellerID: 1,
		Subject:  "Question",
		Category: "whatever",
		Priority: "urgent",
		Message:  "hello",
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if ticket.Category != constants.TicketCategoryGeneral || ticket.Priority != constants.TicketPriorityNormal {
		t.Fatalf("defaults not applied: %s/%s", ticket.Category, ticket.Priority)
	}
}

func TestGetTicketOwnership(t *testing.T) {
	svc := setupTicketServiceTest(t)
	ticket := createTicket(t, svc, 1, "Payout delay")

	if _, err := svc.Get(ticket.ID, 2); !errors.Is(err, ErrTicketAccessDenied) {
		t.Fatalf("foreign seller want ErrTicketAccessDenied got %v", err)
	}
	// 管理端传 0 跳过归属校验
	if _, err := svc.Get(ticket.ID, 0); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	if _, err := svc.Get(999, 0); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("missing ticket want ErrTicketNotFound got %v", err)
	}
}

func TestReplyTransitionsStatus(t *testing.T) {
	svc := setupTicketServiceTest(t)
	ticket := createTicket(t, svc, 1, "Payout delay")

	// 管理员回复置为 in-progress
	if _, err := svc.Reply(ticket.ID, constants.TicketAuthorAdmin, 7, "We are checking."); err != nil {
		t.Fatalf("admin reply failed: %v", err)
	}
	detail, err := svc.Get(ticket.ID, 0)
	if err != nil {
		t.Fatalf("get ticket failed: %v", err)
	}
	if detail.Ticket.Status != constants.TicketStatusInProgress {
		t.Fatalf("status want in-progress got %s", detail.Ticket.Status)
	}
	if detail.Ticket.LastReplyAt == nil {
		t.Fatalf("last reply time should be set")
	}

	// 卖家追问重新置为 open
	if _, err := svc.Reply(ticket.ID, constants.TicketAuthorSeller, 1, "Any update?"); err != nil {
		t.Fatalf("seller reply failed: %v", err)
	}
	detail, err = svc.Get(ticket.ID, 0)
	if err != nil {
		t.Fatalf("get ticket failed: %v", err)
	}
	if detail.Ticket.Status != constants.TicketStatusOpen {
		t.Fatalf("status want open got %s", detail.Ticket.Status)
	}
	if len(detail.Messages) != 3 {
		t.Fatalf("messages want 3 got %d", len(detail.Messages))
	}
}

func TestReplyGuards(t *testing.T) {
	svc := setupTicketServiceTest(t)
	ticket := createTicket(t, svc, 1, "Payout delay")

	if _, err := svc.Reply(ticket.ID, constants.TicketAuthorSeller, 1, "   "); !errors.Is(err, ErrTicketBodyMissing) {
		t.Fatalf("blank body want ErrTicketBodyMissing got %v", err)
	}
	if _, err := svc.Reply(ticket.ID, constants.TicketAuthorSeller, 2, "hi"); !errors.Is(err, ErrTicketAccessDenied) {
		t.Fatalf("foreign seller want ErrTicketAccessDenied got %v", err)
	}

	if _, err := svc.UpdateStatus(ticket.ID, "closed"); err != nil {
		t.Fatalf("close ticket failed: %v", err)
	}
	if _, err := svc.Reply(ticket.ID, constants.TicketAuthorSeller, 1, "reopen please"); !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("closed ticket want ErrTicketClosed got %v", err)
	}
}

func TestUpdateStatusAndStats(t *testing.T) {
	svc := setupTicketServiceTest(t)
	first := createTicket(t, svc, 1, "Payout delay")
	createTicket(t, svc, 1, "Shipping label issue")
	createTicket(t, svc, 2, "Voucher not applying")

	if _, err := svc.UpdateStatus(first.ID, "resolved"); !errors.Is(err, ErrTicketStatusInvalid) {
		t.Fatalf("unknown status want ErrTicketStatusInvalid got %v", err)
	}
	if _, err := svc.UpdateStatus(first.ID, " Closed "); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	stats, err := svc.Stats(1)
	if err != nil {
		t.Fatalf("seller stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Open != 1 || stats.Closed != 1 {
		t.Fatalf("seller stats unexpected: %+v", stats)
	}

	stats, err = svc.Stats(0)
	if err != nil {
		t.Fatalf("platform stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("platform total want 3 got %d", stats.Total)
	}
}
