package order

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type Pricing struct {
	ItemsPrice    decimal.Decimal
	Discount      decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculatePricing derives every order amount from the line items. The
// discount percentage comes off the items total before tax is applied;
// shipping is added untaxed.
func CalculatePricing(items []LineItem, discountPercent, shipping, taxRate float64) Pricing {
	itemsPrice := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		itemsPrice = itemsPrice.Add(line)
	}
	itemsPrice = cents(itemsPrice)

	discount := decimal.Zero
	if discountPercent > 0 {
		discount = cents(itemsPrice.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred))
	}

	subtotal := itemsPrice.Sub(discount)
	tax := cents(subtotal.Mul(decimal.NewFromFloat(taxRate)))
	ship := cents(decimal.NewFromFloat(shipping))

	return Pricing{
		ItemsPrice:    itemsPrice,
		Discount:      discount,
		ShippingPrice: ship,
		TaxPrice:      tax,
		TotalPrice:    subtotal.Add(ship).Add(tax),
	}
}

func (p Pricing) apply(o *Order) {
	o.ItemsPrice = p.ItemsPrice.InexactFloat64()
	o.Discount = p.Discount.InexactFloat64()
	o.ShippingPrice = p.ShippingPrice.InexactFloat64()
	o.TaxPrice = p.TaxPrice.InexactFloat64()
	o.TotalPrice = p.TotalPrice.InexactFloat64()
}

// mismatches lists the client totals that differ from the computed ones by
// at least a cent.
func (p Pricing) mismatches(t Totals) []string {
	var out []string
	check := func(name string, client *float64, server decimal.Decimal) {
		if client == nil {
			return
		}
		if !cents(decimal.NewFromFloat(*client)).Equal(server) {
			out = append(out, name)
		}
	}
	check("itemsPrice", t.ItemsPrice, p.ItemsPrice)
	check("shippingPrice", t.ShippingPrice, p.ShippingPrice)
	check("taxPrice", t.TaxPrice, p.TaxPrice)
	check("totalPrice", t.TotalPrice, p.TotalPrice)
	check("discount", t.Discount, p.Discount)
	return out
}
