package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrEmptyFilter = errors.New("filter must contain at least one field")
)

// Collection 文件集合的基本操作
// 以主鍵 id 存取, 或是用欄位等值條件查詢/刪除
type Collection[T any] interface {
	Insert(ctx context.Context, doc *T) error
	Save(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindBy(ctx context.Context, fields map[string]any) ([]T, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteBy(ctx context.Context, fields map[string]any) (int64, error)
}

type GormCollection[T any] struct {
	db *DbDao
}

func NewGormCollection[T any](db *DbDao) *GormCollection[T] {
	return &GormCollection[T]{db: db}
}

// Insert - 新增文件, id 由 BaseModel hook 產生
func (c *GormCollection[T]) Insert(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

// Save - 依 id 覆寫整份文件, 不存在時新增
func (c *GormCollection[T]) Save(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Save(doc).Error
}

// Read - 根據ID查詢
// 錯誤:
//   - ErrNotFound: 文件不存在
func (c *GormCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Read - 查詢全部, 依建立時間排序
func (c *GormCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	docs := make([]T, 0)
	err := c.db.WithContext(ctx).Order("created_at asc, id asc").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Read - 欄位等值查詢, key 為 column name
func (c *GormCollection[T]) FindBy(ctx context.Context, fields map[string]any) ([]T, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyFilter
	}
	docs := make([]T, 0)
	err := c.db.WithContext(ctx).Where(fields).Order("created_at asc, id asc").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete - 硬刪除, 回傳刪除筆數
func (c *GormCollection[T]) DeleteByID(ctx context.Context, id string) (int64, error) {
	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("delete by id %s: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// Delete - 依條件硬刪除, 空條件回傳 ErrEmptyFilter
func (c *GormCollection[T]) DeleteBy(ctx context.Context, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, ErrEmptyFilter
	}
	result := c.db.WithContext(ctx).Where(fields).Delete(new(T))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ Collection[struct{}] = (*GormCollection[struct{}])(nil)
