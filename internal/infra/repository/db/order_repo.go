package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

const (
	columnUserID = "user_id"
	columnIsPaid = "is_paid"
)

// 同一使用者的未付款訂單理論上只有一張
// 併發建立時可能短暫出現多張, 查詢一律取最早建立的那張
type OrderRepo struct {
	orders *GormCollection[model.Order]
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{orders: NewGormCollection[model.Order](db)}
}

// Create - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.orders.Insert(ctx, order)
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orders.FindAll(ctx)
}

// Read - 查詢使用者未付款訂單
// 錯誤:
//   - ErrNotFound: 使用者沒有未付款訂單
func (s *OrderRepo) GetActiveOrderByUserID(ctx context.Context, userID string) (*model.Order, error) {
	orders, err := s.GetUnpaidOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

// Read - 查詢使用者全部未付款訂單, 併發建立時可能不只一張
func (s *OrderRepo) GetUnpaidOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.FindBy(ctx, map[string]any{columnUserID: userID, columnIsPaid: false})
}

// Read - 查詢使用者已付款訂單
func (s *OrderRepo) GetPaidOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.FindBy(ctx, map[string]any{columnUserID: userID, columnIsPaid: true})
}

// Update - 更新訂單
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.orders.Save(ctx, order)
}

// Delete - 刪除使用者所有訂單
func (s *OrderRepo) DeleteOrdersByUserID(ctx context.Context, userID string) (int64, error) {
	return s.orders.DeleteBy(ctx, map[string]any{columnUserID: userID})
}
