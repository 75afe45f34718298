package domain

import "time"

// RestaurantFilter narrows a restaurant listing. The filtering is applied by
// the backend, never client-side. Cuisine "All" is a sentinel meaning no
// cuisine restriction.
type RestaurantFilter struct {
	Featured bool
	Cuisine  string
	Search   string
}

// OrderItemInput is one line of an order being placed. UnitPrice is the
// price snapshot taken from the cart.
type OrderItemInput struct {
	MenuItemID string
	Quantity   int
	UnitPrice  float64
	Note       string
}

// OrderInput is the checkout payload.
type OrderInput struct {
	RestaurantID        string
	Items               []OrderItemInput
	Subtotal            float64
	DeliveryFee         float64
	ServiceFee          float64
	Tax                 float64
	Tip                 float64
	Total               float64
	PaymentMethod       string
	SpecialInstructions string
}

// ReviewInput is the payload for a new review.
type ReviewInput struct {
	RestaurantID   string
	Rating         int
	Comment        string
	FoodRating     *int
	DeliveryRating *int
	ServiceRating  *int
}

// AddressInput is the payload for a new delivery address.
type AddressInput struct {
	Label        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	IsDefault    bool
}

// Session is the client-local mirror of an authenticated backend session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}
