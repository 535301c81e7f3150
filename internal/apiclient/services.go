package apiclient

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/contracts"
)

// AuthAPI 认证接口
type AuthAPI struct{ c *Client }

// Auth 返回认证接口
func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }

// Login 登录
func (a *AuthAPI) Login(ctx context.Context, req contracts.LoginRequest) (*contracts.AuthResponse, error) {
	var out contracts.AuthResponse
	if err := a.c.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register 注册
func (a *AuthAPI) Register(ctx context.Context, req contracts.RegisterRequest) (*contracts.AuthResponse, error) {
	var out contracts.AuthResponse
	if err := a.c.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout 注销
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.Post(ctx, "/auth/logout", nil, nil)
}

// Refresh 刷新令牌
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*contracts.AuthResponse, error) {
	var out contracts.AuthResponse
	if err := a.c.Post(ctx, "/auth/refresh", contracts.RefreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile 获取当前用户
func (a *AuthAPI) Profile(ctx context.Context) (*contracts.User, error) {
	var out contracts.User
	if _, err := a.c.Get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile 更新资料
func (a *AuthAPI) UpdateProfile(ctx context.Context, patch contracts.ProfileUpdate) (*contracts.User, error) {
	var out contracts.User
	if err := a.c.Put(ctx, "/auth/profile", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductAPI 商品接口
type ProductAPI struct{ c *Client }

// Products 返回商品接口
func (c *Client) Products() *ProductAPI { return &ProductAPI{c: c} }

// List 分页查询商品
func (p *ProductAPI) List(ctx context.Context, params contracts.SearchParams) (*contracts.Page[contracts.Product], error) {
	var items []contracts.Product
	pagination, err := p.c.Get(ctx, "/products", searchQuery(params), &items)
	if err != nil {
		return nil, err
	}
	page := &contracts.Page[contracts.Product]{Items: items}
	if pagination != nil {
		page.Pagination = *pagination
	}
	return page, nil
}

// Get 商品详情
func (p *ProductAPI) Get(ctx context.Context, id string) (*contracts.Product, error) {
	var out contracts.Product
	if _, err := p.c.Get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews 商品评价列表
func (p *ProductAPI) Reviews(ctx context.Context, productID string) ([]contracts.Review, error) {
	var out []contracts.Review
	if _, err := p.c.Get(ctx, "/products/"+url.PathEscape(productID)+"/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview 为商品创建评价
func (p *ProductAPI) CreateReview(ctx context.Context, productID string, review contracts.Review) (*contracts.Review, error) {
	var out contracts.Review
	if err := p.c.Post(ctx, "/products/"+url.PathEscape(productID)+"/reviews", review, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search 关键字搜索
func (p *ProductAPI) Search(ctx context.Context, query string, filters contracts.SearchFilters) ([]contracts.Product, error) {
	var out []contracts.Product
	body := contracts.SearchParams{Query: query, Filters: filters}
	if err := p.c.Post(ctx, "/search", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func searchQuery(params contracts.SearchParams) url.Values {
	q := url.Values{}
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	f := params.Filters
	if f.Category != "" {
		q.Set("filters[category]", f.Category)
	}
	if f.PriceMin != nil {
		q.Set("filters[priceMin]", f.PriceMin.String())
	}
	if f.PriceMax != nil {
		q.Set("filters[priceMax]", f.PriceMax.String())
	}
	if f.InStock != nil {
		q.Set("filters[inStock]", strconv.FormatBool(*f.InStock))
	}
	if f.IsNew != nil {
		q.Set("filters[isNew]", strconv.FormatBool(*f.IsNew))
	}
	if f.Discount != nil {
		q.Set("filters[discount]", strconv.FormatBool(*f.Discount))
	}
	if len(f.Tags) > 0 {
		q.Set("filters[tags]", strings.Join(f.Tags, ","))
	}
	return q
}

// OrderAPI 订单接口
type OrderAPI struct{ c *Client }

// Orders 返回订单接口
func (c *Client) Orders() *OrderAPI { return &OrderAPI{c: c} }

// List 订单列表
func (o *OrderAPI) List(ctx context.Context) ([]contracts.Order, error) {
	var out []contracts.Order
	if _, err := o.c.Get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get 订单详情
func (o *OrderAPI) Get(ctx context.Context, id string) (*contracts.Order, error) {
	var out contracts.Order
	if _, err := o.c.Get(ctx, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create 创建订单
func (o *OrderAPI) Create(ctx context.Context, order contracts.Order) (*contracts.Order, error) {
	var out contracts.Order
	if err := o.c.Post(ctx, "/orders", order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update 更新订单
func (o *OrderAPI) Update(ctx context.Context, id string, updates map[string]interface{}) (*contracts.Order, error) {
	var out contracts.Order
	if err := o.c.Put(ctx, "/orders/"+url.PathEscape(id), updates, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel 取消订单
func (o *OrderAPI) Cancel(ctx context.Context, id string) (*contracts.Order, error) {
	var out contracts.Order
	if err := o.c.Patch(ctx, "/orders/"+url.PathEscape(id)+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NotificationAPI 通知接口
type NotificationAPI struct{ c *Client }

// Notifications 返回通知接口
func (c *Client) Notifications() *NotificationAPI { return &NotificationAPI{c: c} }

// List 通知列表
func (n *NotificationAPI) List(ctx context.Context) ([]contracts.Notification, error) {
	var out []contracts.Notification
	if _, err := n.c.Get(ctx, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead 标记已读
func (n *NotificationAPI) MarkRead(ctx context.Context, id string) (*contracts.Notification, error) {
	var out contracts.Notification
	if err := n.c.Patch(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllRead 全部已读
func (n *NotificationAPI) MarkAllRead(ctx context.Context) error {
	return n.c.Patch(ctx, "/notifications/read-all", nil, nil)
}

// Delete 删除通知
func (n *NotificationAPI) Delete(ctx context.Context, id string) error {
	return n.c.Delete(ctx, "/notifications/"+url.PathEscape(id))
}
