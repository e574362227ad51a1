package dto

import "time"

// OrderItemPayload is one cart line item as sent and returned over HTTP.
type OrderItemPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID              int64              `json:"id"`
	OrderNumber     string             `json:"orderNumber"`
	RestaurantID    int64              `json:"restaurantId"`
	Items           []OrderItemPayload `json:"items"`
	Subtotal        int                `json:"subtotal"`
	DeliveryFee     int                `json:"deliveryFee"`
	Total           int                `json:"total"`
	Status          string             `json:"status"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
