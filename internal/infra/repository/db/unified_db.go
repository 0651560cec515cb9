package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	GetDB() *gorm.DB
	InitMigrate() error
	Close() error

	IProductRepository
	IOrderRepository
	IUserRepository
	ICartItemRepository
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetActiveOrderByUserID(ctx context.Context, userID string) (*model.Order, error)
	GetUnpaidOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error)
	GetPaidOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	DeleteOrdersByUserID(ctx context.Context, userID string) (int64, error)
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UserExists(ctx context.Context, id string) (bool, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// ICartItemRepository CartItem 相關操作介面
type ICartItemRepository interface {
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItem(ctx context.Context, item *model.CartItem) error
	GetAllCartItems(ctx context.Context) ([]model.CartItem, error)
	GetCartItemsByOrderAndProduct(ctx context.Context, orderID, productID string) ([]model.CartItem, error)
	GetCartItemsByOrderID(ctx context.Context, orderID string) ([]model.CartItem, error)
	DeleteCartItem(ctx context.Context, id string) error
	DeleteCartItemsByOrderAndProduct(ctx context.Context, orderID, productID string) (int64, error)
	DeleteCartItemsByOrderID(ctx context.Context, orderID string) (int64, error)
	DeleteCartItemsByProductID(ctx context.Context, productID string) (int64, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	dbDao *DbDao
	*ProductDBRepo
	*OrderRepo
	*UserRepo
	*CartItemRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		dbDao:         dbDao,
		ProductDBRepo: NewProductDBRepo(dbDao),
		OrderRepo:     NewOrderRepo(dbDao),
		UserRepo:      NewUserRepo(dbDao),
		CartItemRepo:  NewCartItemRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.dbDao.DB
}

func (u *UnifiedDBImpl) Close() error {
	return u.dbDao.Close()
}

var (
	_ UnifiedDB           = (*UnifiedDBImpl)(nil)
	_ IProductRepository  = (*ProductDBRepo)(nil)
	_ IOrderRepository    = (*OrderRepo)(nil)
	_ IUserRepository     = (*UserRepo)(nil)
	_ ICartItemRepository = (*CartItemRepo)(nil)
)
