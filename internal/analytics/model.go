package analytics

type Counts struct {
	Users           int
	Products        int
	Orders          int
	Revenue         float64
	PendingOrders   int
	DeliveredOrders int
}

// DailySales is one calendar day (UTC, YYYY-MM-DD) of orders.
type DailySales struct {
	Date   string  `json:"_id"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type TopProduct struct {
	ProductID string  `json:"_id"`
	Name      string  `json:"name"`
	TotalSold int     `json:"totalSold"`
	Revenue   float64 `json:"revenue"`
}

type Summary struct {
	TotalUsers      int          `json:"totalUsers"`
	TotalProducts   int          `json:"totalProducts"`
	TotalOrders     int          `json:"totalOrders"`
	TotalRevenue    float64      `json:"totalRevenue"`
	PendingOrders   int          `json:"pendingOrders"`
	DeliveredOrders int          `json:"deliveredOrders"`
	DailySales      []DailySales `json:"dailySales"`
	TopProducts     []TopProduct `json:"topProducts"`
}
