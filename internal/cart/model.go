package cart

import "time"

type Cart struct {
	ID        int
	UserID    int
	CreatedAt time.Time
}

// Item is a cart line joined with live product data.
type Item struct {
	ProductID   int
	Title       string
	Price       float64
	Quantity    int
	Image       *string
	Description *string
	Category    *string
}

// View is what GetCart returns: the cart header plus its joined lines. A user
// without a cart gets a zero-ID view with empty items.
type View struct {
	ID        int
	UserID    int
	CreatedAt time.Time
	Items     []Item
}
