package public

import (
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品分页列表
func (h *Handler) GetProducts(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid filter value", err)
		return
	}
	page, err := h.ProductService.ListPublic(params)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load products", err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Pagination)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "Product id is required", nil)
		return
	}
	product, err := h.ProductService.GetPublic(id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "Failed to load product")
		return
	}
	response.Success(c, product)
}

// SearchProducts 关键字搜索
func (h *Handler) SearchProducts(c *gin.Context) {
	var req contracts.SearchParams
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	items, err := h.ProductService.Search(strings.TrimSpace(req.Query), req.Filters)
	if err != nil {
		respondError(c, response.CodeInternal, "Search failed", err)
		return
	}
	response.Success(c, items)
}

// parseSearchParams 解析 query/sort/page/limit 与 filters[...] 查询参数
func parseSearchParams(c *gin.Context) (contracts.SearchParams, error) {
	params := contracts.SearchParams{
		Query: strings.TrimSpace(c.Query("query")),
		Sort:  strings.TrimSpace(c.Query("sort")),
	}
	params.Page, _ = strconv.Atoi(c.Query("page"))
	params.Limit, _ = strconv.Atoi(c.Query("limit"))

	f := &params.Filters
	f.Category = strings.TrimSpace(c.Query("filters[category]"))
	var err error
	if f.PriceMin, err = moneyQuery(c, "filters[priceMin]"); err != nil {
		return params, err
	}
	if f.PriceMax, err = moneyQuery(c, "filters[priceMax]"); err != nil {
		return params, err
	}
	if f.InStock, err = boolQuery(c, "filters[inStock]"); err != nil {
		return params, err
	}
	if f.IsNew, err = boolQuery(c, "filters[isNew]"); err != nil {
		return params, err
	}
	if f.Discount, err = boolQuery(c, "filters[discount]"); err != nil {
		return params, err
	}
	if raw := strings.TrimSpace(c.Query("filters[tags]")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return params, nil
}

func moneyQuery(c *gin.Context, key string) (*models.Money, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := models.ParseMoney(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func boolQuery(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
