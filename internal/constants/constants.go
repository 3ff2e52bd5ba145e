package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 订单支付状态常量
const (
	OrderPaymentPending  = "pending"
	OrderPaymentPaid     = "paid"
	OrderPaymentFailed   = "failed"
	OrderPaymentRefunded = "refunded"
)

// 支付记录状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusCanceled  = "canceled"
)

// 商品购买方式常量
const (
	PurchaseTypeAffiliate = "affiliate"
	PurchaseTypeDirect    = "direct"
)

// 商品成色常量
const (
	ProductConditionNew         = "new"
	ProductConditionRefurbished = "refurbished"
	ProductConditionUsed        = "used"
)

// 客户账号状态常量
const (
	CustomerStatusActive   = "active"
	CustomerStatusDisabled = "disabled"
)

// 奖励流水类型常量
const (
	RewardEntryEarn   = "earn"
	RewardEntryRedeem = "redeem"
	RewardEntryAdjust = "adjust"
)

// 队列与任务常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskAnalyticsEvent     = "analytics:event"
	TaskPasswordResetEmail = "email:password_reset"
	TaskOrderConfirmEmail  = "email:order_confirm"
	TaskContactNotify      = "contact:notify"
)

// 站点配置键常量（公开给前台的白名单键）
const (
	SettingKeySiteName        = "site_name"
	SettingKeySiteTagline     = "site_tagline"
	SettingKeyContactEmail    = "contact_email"
	SettingKeyCurrency        = "currency"
	SettingKeyShippingFlatFee = "shipping_flat_fee"
	SettingKeyTaxRate         = "tax_rate"
)

// 会话与令牌常量
const (
	CustomerSessionDays   = 7
	ResetTokenExpiry      = 1 // 小时
	ResetTokenLength      = 32
	SessionTokenIDLength  = 21
	OrderNumberRandDigits = 6
)

// 横幅投放常量
const (
	// DefaultBannerDurationDays 回调元数据缺失或非法时的兜底投放时长
	DefaultBannerDurationDays = 30
)
