package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/rs/zerolog/log"
)

type IUserService interface {
	Create(ctx context.Context, name string) (*model.User, error)
	Retrieve(ctx context.Context, userID string) (*model.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Update(ctx context.Context, userID string, name string) (*model.User, error)
	Delete(ctx context.Context, userID string) error
	ListAll(ctx context.Context) ([]model.User, error)
}

type UserService struct {
	userRepo     db.IUserRepository
	orderService IOrderService
}

func NewUserService(userRepo db.IUserRepository, orderService IOrderService) *UserService {
	mustNotNil("userRepo", userRepo)
	mustNotNil("orderService", orderService)
	return &UserService{userRepo: userRepo, orderService: orderService}
}

// Create 建立使用者並順帶建立第一張 active order
// 訂單建立失敗只記log, 之後 RetrieveActiveByUser 會補建
func (u *UserService) Create(ctx context.Context, name string) (*model.User, error) {
	user := &model.User{Name: name}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	order, err := u.orderService.Create(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("provision first order failed")
	} else if order == nil {
		log.Warn().Str("user_id", user.ID).Msg("first order was not provisioned")
	}
	return user, nil
}

func (u *UserService) Retrieve(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	user, err = absentIfNotFound(user, err)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

func (u *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	return u.userRepo.UserExists(ctx, userID)
}

// Update 使用者不存在回傳 nil
func (u *UserService) Update(ctx context.Context, userID string, name string) (*model.User, error) {
	user, err := u.Retrieve(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	user.Name = name
	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}
	return user, nil
}

// Delete 先刪除使用者所有訂單與購物車項目, 再刪除使用者
func (u *UserService) Delete(ctx context.Context, userID string) error {
	if err := u.orderService.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

func (u *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

var _ IUserService = (*UserService)(nil)
