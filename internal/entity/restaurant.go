package entity

// Restaurant is a listed restaurant held by the in-memory store.
// Records are immutable after creation except for IsActive.
type Restaurant struct {
	ID           int64
	Name         string
	Cuisine      string
	Rating       string
	DeliveryTime string
	PriceForTwo  int
	Image        string
	Address      string
	IsActive     bool
}
