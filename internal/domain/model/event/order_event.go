package event

// OrderCreatedEvent 使用者取得新的 active order
type OrderCreatedEvent struct {
	BaseEvent
	UserID string `json:"userId"`
}

func NewOrderCreatedEvent(orderID, userID string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent: NewBaseEvent(orderID, OrderCreatedEventName),
		UserID:    userID,
	}
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

// OrderPaidEvent 訂單由未付款轉為已付款
type OrderPaidEvent struct {
	BaseEvent
	UserID     string `json:"userId"`
	TotalPrice int64  `json:"totalPrice"`
}

func NewOrderPaidEvent(orderID, userID string, totalPrice int64) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseEvent:  NewBaseEvent(orderID, OrderPaidEventName),
		UserID:     userID,
		TotalPrice: totalPrice,
	}
}

func (e *OrderPaidEvent) Type() EventType {
	return OrderPaidEventName
}
