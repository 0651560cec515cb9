package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

// 找不到資料一律回傳 (nil, nil), 由呼叫端決定怎麼呈現
func absentIfNotFound[T any](doc *T, err error) (*T, error) {
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func mustNotNil(name string, dep interface{}) {
	if util.IsNil(dep) {
		panic(name + " cannot be nil")
	}
}

type productLookup func(ctx context.Context, productID string) (*model.Product, error)

/*
組出購物車明細與總金額
sum(quantity * unitPrice)
商品已被刪除的項目不計價, 明細中 Product 為 nil
*/
func buildCartLines(ctx context.Context, lookup productLookup, items ...model.CartItem) ([]model.CartLine, int64, error) {
	lines := make([]model.CartLine, 0, len(items))
	var total int64
	for _, item := range items {
		product, err := lookup(ctx, item.ProductID)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, model.CartLine{CartItem: item, Product: product})
		if product == nil {
			log.Warn().Str("cart_item_id", item.ID).Str("product_id", item.ProductID).Msg("cart item references missing product")
			continue
		}
		total += item.Quantity * product.UnitPrice
	}
	return lines, total, nil
}
