package contracts

import (
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

// 订单状态
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem 订单行
type OrderItem struct {
	ProductID       string            `json:"productId"`
	Title           string            `json:"title"`
	Price           models.Money      `json:"price"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	TotalPrice      models.Money      `json:"totalPrice"`
}

// OrderAddress 收货/账单地址
type OrderAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order 订单
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Items           []OrderItem   `json:"items"`
	Subtotal        models.Money  `json:"subtotal"`
	Shipping        models.Money  `json:"shipping"`
	Total           models.Money  `json:"total"`
	Status          string        `json:"status"`
	ShippingAddress OrderAddress  `json:"shippingAddress"`
	BillingAddress  *OrderAddress `json:"billingAddress,omitempty"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   string        `json:"paymentStatus"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
