package constants

// 分页默认值
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// SearchResultLimit 搜索接口单次返回上限
	SearchResultLimit = 50
)

// gin 上下文键
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// 令牌类型
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// 通知跳转前缀
const (
	NotificationLinkProduct = "/products/"
)

// 异步队列
const (
	QueueDefault   = "default"
	QueueAnalytics = "analytics"
)

// 异步任务类型
const (
	TaskReviewSubmitted = "review:submitted"
	TaskReviewViewed    = "review:viewed"
)
