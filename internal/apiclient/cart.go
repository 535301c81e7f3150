package apiclient

import (
	"context"
	"net/url"

	"github.com/dujiao-next/storefront/internal/cart"
)

// CartAPI 服务端购物车镜像接口
type CartAPI struct{ c *Client }

// Cart 返回购物车接口
func (c *Client) Cart() *CartAPI { return &CartAPI{c: c} }

// Get 获取服务端购物车
func (a *CartAPI) Get(ctx context.Context) ([]cart.LineItem, error) {
	var out []cart.LineItem
	if _, err := a.c.Get(ctx, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Add 加入购物车，返回合并后的购物车
func (a *CartAPI) Add(ctx context.Context, item cart.LineItem) ([]cart.LineItem, error) {
	var out []cart.LineItem
	if err := a.c.Post(ctx, "/cart", item, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQuantity 修改行数量
func (a *CartAPI) UpdateQuantity(ctx context.Context, key string, quantity int) ([]cart.LineItem, error) {
	var out []cart.LineItem
	body := map[string]int{"quantity": quantity}
	if err := a.c.Put(ctx, "/cart/items/"+url.PathEscape(key), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove 删除行
func (a *CartAPI) Remove(ctx context.Context, key string) error {
	return a.c.Delete(ctx, "/cart/items/"+url.PathEscape(key))
}

// Clear 清空
func (a *CartAPI) Clear(ctx context.Context) error {
	return a.c.Delete(ctx, "/cart")
}
