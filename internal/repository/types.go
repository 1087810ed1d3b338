package repository

import "time"

// VoucherListFilter 查询代金券列表的过滤条件
// Status 支持推导状态 expired（按 valid_until 过滤，不看落库状态）
type VoucherListFilter struct {
	Page     int
	PageSize int
	SellerID uint
	Status   string
	Type     string
	Search   string
	Now      time.Time
}

// VoucherUsageListFilter 查询代金券核销记录的过滤条件
type VoucherUsageListFilter struct {
	Page      int
	PageSize  int
	VoucherID uint
}

// AnnouncementListFilter 查询系统公告列表的过滤条件
type AnnouncementListFilter struct {
	Page      int
	PageSize  int
	Type      string
	Search    string
	IsActive  *bool
	OnlyValid bool
}

// TicketListFilter 查询工单列表的过滤条件
type TicketListFilter struct {
	Page     int
	PageSize int
	SellerID uint
	Status   string
	Category string
	Priority string
	Search   string
}

// JournalListFilter 查询日记账分录的过滤条件
type JournalListFilter struct {
	Page     int
	PageSize int
	SellerID uint
	DateFrom *time.Time
	DateTo   *time.Time
	Account  string
}

// SellerListFilter 查询卖家列表的过滤条件
type SellerListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
