package apiclient

import (
	"context"
	"net/url"

	"github.com/dujiao-next/storefront/internal/contracts"
)

// ReviewAPI 评价接口
type ReviewAPI struct{ c *Client }

// Reviews 返回评价接口
func (c *Client) Reviews() *ReviewAPI { return &ReviewAPI{c: c} }

// Create 创建评价
func (r *ReviewAPI) Create(ctx context.Context, review contracts.Review) (contracts.Review, error) {
	var out contracts.Review
	err := r.c.Post(ctx, "/reviews", review, &out)
	return out, err
}

// GetByProductID 按商品查询评价
func (r *ReviewAPI) GetByProductID(ctx context.Context, productID string) ([]contracts.Review, error) {
	var out []contracts.Review
	_, err := r.c.Get(ctx, "/reviews", url.Values{"productId": {productID}}, &out)
	return out, err
}

// Update 更新评价
func (r *ReviewAPI) Update(ctx context.Context, id string, patch contracts.ReviewPatch) (contracts.Review, error) {
	var out contracts.Review
	err := r.c.Put(ctx, "/reviews/"+url.PathEscape(id), patch, &out)
	return out, err
}

// Delete 删除评价
func (r *ReviewAPI) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, "/reviews/"+url.PathEscape(id))
}
