package dto

// RestaurantResponse represents a restaurant as exposed via transport layers.
type RestaurantResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Cuisine      string `json:"cuisine"`
	Rating       string `json:"rating"`
	DeliveryTime string `json:"deliveryTime"`
	PriceForTwo  int    `json:"priceForTwo"`
	Image        string `json:"image"`
	Address      string `json:"address"`
	IsActive     bool   `json:"isActive"`
}

// MenuItemResponse represents a menu item as exposed via transport layers.
type MenuItemResponse struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int    `json:"price"`
	Category     string `json:"category"`
	Image        string `json:"image"`
	IsVeg        bool   `json:"isVeg"`
	IsAvailable  bool   `json:"isAvailable"`
}
