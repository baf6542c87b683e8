package types

type OrderSide string

const (
	OrderSideBuy  = OrderSide("buy")
	OrderSideSell = OrderSide("sell")
)

type OrderType string

const (
	OrderLimit    = OrderType("limit")
	OrderMarket   = OrderType("market")
	OrderIOC      = OrderType("ioc")
	OrderPostOnly = OrderType("post_only")
)

// OrderState is the internal order lifecycle state. The happy path is
// PendingCreate -> Open -> Filled; Canceled is terminal and idempotent.
type OrderState string

const (
	OrderStatePendingCreate   = OrderState("pending_create")
	OrderStateOpen            = OrderState("open")
	OrderStatePartiallyFilled = OrderState("partially_filled")
	OrderStateFilled          = OrderState("filled")
	OrderStatePendingCancel   = OrderState("pending_cancel")
	OrderStateCanceled        = OrderState("canceled")
)

type NetworkStatus string

const (
	NetworkConnected    = NetworkStatus("connected")
	NetworkNotConnected = NetworkStatus("not_connected")
)
