package cart

// Item is one stored cart line.
type Item struct {
	ProductID string
	Quantity  int
}

// IncomingItem is a cart line posted by the client. The product id may arrive
// under any of three keys.
type IncomingItem struct {
	Product   string `json:"product"`
	ID        string `json:"_id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (in IncomingItem) ResolvedID() string {
	switch {
	case in.Product != "":
		return in.Product
	case in.ID != "":
		return in.ID
	default:
		return in.ProductID
	}
}

// Entry is a stored line expanded with live product data. ID is nil when the
// product no longer exists.
type Entry struct {
	ID       *string `json:"_id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
