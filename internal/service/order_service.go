package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

type IOrderService interface {
	Create(ctx context.Context, userID string) (*model.Order, error)
	RetrieveActiveByUser(ctx context.Context, userID string) (*model.Order, error)
	RetrievePaidByUser(ctx context.Context, userID string) ([]model.Order, error)
	PayOrder(ctx context.Context, orderID string, isPaid bool) (*model.Order, error)
	DeleteByUser(ctx context.Context, userID string) error
	ListAll(ctx context.Context) ([]model.Order, error)
}

/*
訂單生命週期
每個使用者最多一張未付款訂單(active order), 付款後成為歷史訂單
沒有鎖, 多步驟操作不具原子性, 併發產生的重複 active order 由查詢取最早一張
*/
type OrderService struct {
	userRepo      db.IUserRepository
	orderRepo     db.IOrderRepository
	cartItemRepo  db.ICartItemRepository
	productRepo   db.IProductRepository
	eventProducer producer.IOrderEventProducer
}

func NewOrderService(userRepo db.IUserRepository, orderRepo db.IOrderRepository, cartItemRepo db.ICartItemRepository, productRepo db.IProductRepository, eventProducer producer.IOrderEventProducer) *OrderService {
	mustNotNil("userRepo", userRepo)
	mustNotNil("orderRepo", orderRepo)
	mustNotNil("cartItemRepo", cartItemRepo)
	mustNotNil("productRepo", productRepo)
	if util.IsNil(eventProducer) {
		eventProducer = producer.NoopOrderEventProducer{}
	}
	return &OrderService{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		eventProducer: eventProducer,
	}
}

// Create 為使用者建立新的 active order
// 使用者不存在, 或已經有未付款訂單時回傳 nil
func (o *OrderService) Create(ctx context.Context, userID string) (*model.Order, error) {
	exists, err := o.userRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user %s: %w", userID, err)
	}
	if !exists {
		return nil, nil
	}

	active, err := o.getActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, nil
	}

	order := &model.Order{UserID: userID}
	if err := o.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order for user %s: %w", userID, err)
	}
	o.publish(ctx, event.NewOrderCreatedEvent(order.ID, userID))
	return order, nil
}

// RetrieveActiveByUser 取得使用者的 active order
// 沒有的話會直接建立一張, 所以這個查詢可能寫入
// 只有使用者不存在時回傳 nil
func (o *OrderService) RetrieveActiveByUser(ctx context.Context, userID string) (*model.Order, error) {
	exists, err := o.userRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user %s: %w", userID, err)
	}
	if !exists {
		return nil, nil
	}

	active, err := o.getActiveOrder(ctx, userID)
	if err != nil || active != nil {
		return active, err
	}

	created, err := o.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	if created != nil {
		return created, nil
	}
	// 其他請求剛好搶先建立
	return o.getActiveOrder(ctx, userID)
}

// RetrievePaidByUser 歷史訂單, 使用者不存在回傳空列表
func (o *OrderService) RetrievePaidByUser(ctx context.Context, userID string) ([]model.Order, error) {
	exists, err := o.userRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user %s: %w", userID, err)
	}
	if !exists {
		return []model.Order{}, nil
	}

	orders, err := o.orderRepo.GetPaidOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get paid orders of user %s: %w", userID, err)
	}
	return orders, nil
}

// PayOrder 只有存在且尚未付款的訂單可以轉換
// 已付款的訂單回傳 nil, 內容不變
func (o *OrderService) PayOrder(ctx context.Context, orderID string, isPaid bool) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	order, err = absentIfNotFound(order, err)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil || order.IsPaid {
		return nil, nil
	}

	order.IsPaid = isPaid
	if err := o.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", orderID, err)
	}

	if order.IsPaid {
		total, err := o.orderTotal(ctx, order.ID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("calculate paid order total failed")
		}
		o.publish(ctx, event.NewOrderPaidEvent(order.ID, order.UserID, total))
	}
	return order, nil
}

// DeleteByUser 刪除使用者所有已付款與未付款訂單的購物車項目, 最後刪除全部訂單
func (o *OrderService) DeleteByUser(ctx context.Context, userID string) error {
	orders, err := o.orderRepo.GetPaidOrdersByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get paid orders of user %s: %w", userID, err)
	}

	unpaid, err := o.orderRepo.GetUnpaidOrdersByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get unpaid orders of user %s: %w", userID, err)
	}
	orders = append(orders, unpaid...)

	for _, order := range orders {
		if _, err := o.cartItemRepo.DeleteCartItemsByOrderID(ctx, order.ID); err != nil {
			return fmt.Errorf("delete cart items of order %s: %w", order.ID, err)
		}
	}

	if _, err := o.orderRepo.DeleteOrdersByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete orders of user %s: %w", userID, err)
	}
	return nil
}

func (o *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := o.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (o *OrderService) getActiveOrder(ctx context.Context, userID string) (*model.Order, error) {
	active, err := o.orderRepo.GetActiveOrderByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active order of user %s: %w", userID, err)
	}
	return active, nil
}

func (o *OrderService) orderTotal(ctx context.Context, orderID string) (int64, error) {
	items, err := o.cartItemRepo.GetCartItemsByOrderID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	_, total, err := buildCartLines(ctx, func(ctx context.Context, productID string) (*model.Product, error) {
		product, err := o.productRepo.GetProductByID(ctx, productID)
		return absentIfNotFound(product, err)
	}, items...)
	return total, err
}

// 事件發送失敗不影響主流程
func (o *OrderService) publish(ctx context.Context, evt event.Event) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := o.eventProducer.ProduceOrderEvent(ctx, evt); err != nil {
			log.Error().Err(err).Str("event_type", string(evt.Type())).Str("order_id", evt.GetAggregateID()).Msg("produce order event failed")
		}
	}()
}

var _ IOrderService = (*OrderService)(nil)
