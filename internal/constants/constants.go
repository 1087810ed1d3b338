package constants

// 代金券类型常量
const (
	VoucherTypePercentage   = "percentage"
	VoucherTypeFixedAmount  = "fixed_amount"
	VoucherTypeFreeShipping = "free_shipping"
	VoucherTypeBuyXGetY     = "buy_x_get_y"
)

// VoucherTypes 支持的代金券类型集合
var VoucherTypes = []string{
	VoucherTypePercentage,
	VoucherTypeFixedAmount,
	VoucherTypeFreeShipping,
	VoucherTypeBuyXGetY,
}

// 代金券状态常量
// expired 不落库，读取时根据有效期推导
const (
	VoucherStatusActive   = "active"
	VoucherStatusInactive = "inactive"
	VoucherStatusExpired  = "expired"
	VoucherStatusUsed     = "used"
)

// 代金券适用范围常量
const (
	VoucherApplicableAll        = "all"
	VoucherApplicableProducts   = "products"
	VoucherApplicableCategories = "categories"
)

// 代金券码常量
const (
	VoucherCodeLength      = 8
	VoucherCodeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	VoucherCodeMaxAttempts = 10
)

// 配送区域常量
const (
	ShippingRegionMetroManila = "metro-manila"
	ShippingRegionLuzon       = "luzon"
	ShippingRegionVisayas     = "visayas"
	ShippingRegionMindanao    = "mindanao"
	ShippingRegionIslands     = "islands"
)

// ShippingRegions 支持的配送区域集合
var ShippingRegions = []string{
	ShippingRegionMetroManila,
	ShippingRegionLuzon,
	ShippingRegionVisayas,
	ShippingRegionMindanao,
	ShippingRegionIslands,
}

// 公告类型常量
const (
	AnnouncementTypeInfo        = "info"
	AnnouncementTypeWarning     = "warning"
	AnnouncementTypeMaintenance = "maintenance"
)

// 工单状态常量
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in-progress"
	TicketStatusClosed     = "closed"
)

// 工单优先级常量
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
)

// 工单分类常量
const (
	TicketCategoryGeneral   = "general"
	TicketCategoryBilling   = "billing"
	TicketCategoryShipping  = "shipping"
	TicketCategoryVoucher   = "voucher"
	TicketCategoryTechnical = "technical"
)

// 工单留言作者常量
const (
	TicketAuthorSeller = "seller"
	TicketAuthorAdmin  = "admin"
)

// 账户状态常量
const (
	SellerStatusActive   = "active"
	SellerStatusDisabled = "disabled"
)

// 登录验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneSellerLogin = "seller_login"
	CaptchaSceneAdminLogin  = "admin_login"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskTicketReplyEmail  = "ticket:reply_email"
	TaskTicketStatusEmail = "ticket:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "s360"
)

// 设置键常量
const (
	SettingKeyShopProfile     = "shop_profile"
	SettingKeyShippingConfig  = "shipping_config"
	SettingKeySMTPConfig      = "smtp_config"
	SettingKeyCaptchaConfig   = "captcha_config"
	SettingFieldFreeShipping  = "enable_free_shipping"
	SettingFieldFreeShipMin   = "minimum_order_amount"
	SettingFieldShopName      = "shop_name"
	SettingFieldContactEmail  = "contact_email"
	SettingFieldContactPhone  = "contact_phone"
	SettingFieldShopCategory  = "category"
	SettingFieldStreetAddress = "street_address"
)

// 会计科目代码常量（总账科目表）
const (
	AccountCodeCash             = "1000"
	AccountCodeReceivables      = "1100"
	AccountCodeInventory        = "1200"
	AccountCodePrepaidExpenses  = "1300"
	AccountCodeEquipment        = "1500"
	AccountCodePayables         = "2000"
	AccountCodeLoansPayable     = "2100"
	AccountCodeOwnersCapital    = "3000"
	AccountCodeOwnersDrawings   = "3100"
	AccountCodeSalesRevenue     = "4000"
	AccountCodeShippingIncome   = "4100"
	AccountCodeCostOfGoodsSold  = "5000"
	AccountCodeShippingExpense  = "6000"
	AccountCodePlatformFees     = "6100"
	AccountCodeAdvertising      = "6200"
	AccountCodeSuppliesExpense  = "6300"
	AccountCodeUtilitiesExpense = "6400"
	AccountCodeMiscExpense      = "6900"
)

// ChartOfAccounts 科目代码到科目名称的映射
var ChartOfAccounts = map[string]string{
	AccountCodeCash:             "Cash",
	AccountCodeReceivables:      "Accounts Receivable",
	AccountCodeInventory:        "Merchandise Inventory",
	AccountCodePrepaidExpenses:  "Prepaid Expenses",
	AccountCodeEquipment:        "Equipment",
	AccountCodePayables:         "Accounts Payable",
	AccountCodeLoansPayable:     "Loans Payable",
	AccountCodeOwnersCapital:    "Owner's Capital",
	AccountCodeOwnersDrawings:   "Owner's Drawings",
	AccountCodeSalesRevenue:     "Sales Revenue",
	AccountCodeShippingIncome:   "Shipping Income",
	AccountCodeCostOfGoodsSold:  "Cost of Goods Sold",
	AccountCodeShippingExpense:  "Shipping Expense",
	AccountCodePlatformFees:     "Platform Fees",
	AccountCodeAdvertising:      "Advertising Expense",
	AccountCodeSuppliesExpense:  "Supplies Expense",
	AccountCodeUtilitiesExpense: "Utilities Expense",
	AccountCodeMiscExpense:      "Miscellaneous Expense",
}

// AccountCodes 科目代码（按代码顺序）
var AccountCodes = []string{
	AccountCodeCash,
	AccountCodeReceivables,
	AccountCodeInventory,
	AccountCodePrepaidExpenses,
	AccountCodeEquipment,
	AccountCodePayables,
	AccountCodeLoansPayable,
	AccountCodeOwnersCapital,
	AccountCodeOwnersDrawings,
	AccountCodeSalesRevenue,
	AccountCodeShippingIncome,
	AccountCodeCostOfGoodsSold,
	AccountCodeShippingExpense,
	AccountCodePlatformFees,
	AccountCodeAdvertising,
	AccountCodeSuppliesExpense,
	AccountCodeUtilitiesExpense,
	AccountCodeMiscExpense,
}
