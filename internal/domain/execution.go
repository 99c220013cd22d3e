package domain

// OrderType is the execution order type.
type OrderType string

const (
	OrderTypeFOK    OrderType = "fok"
	OrderTypeIOC    OrderType = "ioc"
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	OrderTypeStop   OrderType = "stop"
)

// Market identifies the venue an order is executed on.
type Market string

const (
	MarketBrokerTec Market = "BROKERTEC"
	MarketESpeed    Market = "ESPEED"
	MarketCME       Market = "CME"
)

// ExecutionOrder is an order that can be placed on an exchange.
type ExecutionOrder struct {
	Product         Product
	Side            PricingSide
	OrderID         string
	OrderType       OrderType
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChildOrder    bool
}
