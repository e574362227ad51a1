package entity

// MenuItem belongs to exactly one restaurant; ownership never transfers.
type MenuItem struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        int
	Category     string
	Image        string
	IsVeg        bool
	IsAvailable  bool
}
