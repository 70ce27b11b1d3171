package handler

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"

	"github.com/gin-gonic/gin"
)

// orderItemRequest mirrors a cart line; only the product id and quantity
// are trusted.
type orderItemRequest struct {
	Product  string  `json:"product"`
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type createOrderRequest struct {
	OrderItems      []orderItemRequest `json:"orderItems"`
	ShippingAddress *address.Address   `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      *float64           `json:"itemsPrice"`
	ShippingPrice   *float64           `json:"shippingPrice"`
	TaxPrice        *float64           `json:"taxPrice"`
	TotalPrice      *float64           `json:"totalPrice"`
	Coupon          string             `json:"coupon"`
	Discount        *float64           `json:"discount"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r createOrderRequest) toInput(userID string) order.CreateInput {
	items := make([]order.ItemInput, 0, len(r.OrderItems))
	for _, it := range r.OrderItems {
		id := it.Product
		if id == "" {
			id = it.ID
		}
		items = append(items, order.ItemInput{Product: id, Quantity: it.Quantity})
	}

	return order.CreateInput{
		UserID:          userID,
		Items:           items,
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		Coupon:          r.Coupon,
		ClientTotals: order.Totals{
			ItemsPrice:    r.ItemsPrice,
			ShippingPrice: r.ShippingPrice,
			TaxPrice:      r.TaxPrice,
			TotalPrice:    r.TotalPrice,
			Discount:      r.Discount,
		},
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.orders.Create(c.Request.Context(), req.toInput(u.ID))
	if err != nil {
		respondError(c, err, "Error creating order")
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) MyOrders(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	orders, err := h.orders.ListMine(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, err, "Error fetching orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	o, err := h.orders.GetByID(c.Request.Context(), c.Param("id"), u.ID, u.IsAdmin())
	if err != nil {
		respondError(c, err, "Error fetching order")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) PayOrder(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req order.PaymentResult
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.orders.MarkPaid(c.Request.Context(), c.Param("id"), u.ID, u.IsAdmin(), req)
	if err != nil {
		respondError(c, err, "Error updating order")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Error fetching orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		respondError(c, err, "Error updating order status")
		return
	}
	c.JSON(http.StatusOK, o)
}
