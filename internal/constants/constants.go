package constants

type ContextKey string

const (
	RequestIDKey     ContextKey = "request_id"
	RequestIDHeader             = "request_id"
)

type StockBackend string

const (
	StockBackendRedis StockBackend = "redis"
	StockBackendDB    StockBackend = "db"
)

const (
	DescriptionDeposit       = "wallet deposit"
	DescriptionRefundPrefix  = "refund for rejected items of order"
	DescriptionCancelRefund  = "refund for cancelled order"
	DefaultWalletDescription = "wallet payment"
)
