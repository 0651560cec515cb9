package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

type UserRepo struct {
	users *GormCollection[model.User]
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{users: NewGormCollection[model.User](db)}
}

// Create - 創建用戶
func (u *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return u.users.Insert(ctx, user)
}

// Read - 根據ID查詢用戶
func (u *UserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.FindByID(ctx, id)
}

func (u *UserRepo) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Read - 查詢所有用戶
func (u *UserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return u.users.FindAll(ctx)
}

// Update - 更新用戶
func (u *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return u.users.Save(ctx, user)
}

// Delete - 刪除用戶
func (u *UserRepo) DeleteUser(ctx context.Context, id string) error {
	_, err := u.users.DeleteByID(ctx, id)
	return err
}
