package orders

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTotal returns unit_price x quantity for a purchase line.
func (i PurchaseItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// LineTotal returns unit_price x quantity for a sale line.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// LineTotal returns unit_price x order_quantity for a requisition line.
func (i RequisitionItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.OrderQuantity)
}

// Total folds the purchase lines into the order total. Recomputed on every
// line mutation; the value is never stored.
func (o PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Total folds the sale lines into the order total.
func (o SaleOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Total folds the requisition lines into the order total.
func (o RequisitionOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// fulfillmentRate computes fulfilled/requested as a percentage clamped to
// [0,100]. Zero requested yields zero, never a division by zero.
func fulfillmentRate(fulfilled, requested decimal.Decimal) decimal.Decimal {
	if requested.IsZero() {
		return decimal.Zero
	}
	rate := fulfilled.Div(requested).Mul(hundred)
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(hundred) {
		return hundred
	}
	return rate
}

// Fulfillment returns the delivered percentage across all purchase lines.
func (o PurchaseOrder) Fulfillment() decimal.Decimal {
	ordered, delivered := decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		ordered = ordered.Add(item.Quantity)
		delivered = delivered.Add(item.DeliveredQuantity)
	}
	return fulfillmentRate(delivered, ordered)
}

// Fulfillment returns the fulfilled percentage across all requisition lines.
func (o RequisitionOrder) Fulfillment() decimal.Decimal {
	requested, fulfilled := decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		requested = requested.Add(item.OrderQuantity)
		fulfilled = fulfilled.Add(item.QuantityFulfilled)
	}
	return fulfillmentRate(fulfilled, requested)
}

// SetDelivered updates the delivered quantity, clamped to [0, ordered].
func (i *PurchaseItem) SetDelivered(qty decimal.Decimal) {
	i.DeliveredQuantity = clamp(qty, decimal.Zero, i.Quantity)
}

// SetOrdered updates the ordered quantity. It never drops below what has
// already been delivered.
func (i *PurchaseItem) SetOrdered(qty decimal.Decimal) {
	if qty.LessThan(i.DeliveredQuantity) {
		qty = i.DeliveredQuantity
	}
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	i.Quantity = qty
}

// SetFulfilled updates the fulfilled quantity, clamped to [0, requested].
func (i *RequisitionItem) SetFulfilled(qty decimal.Decimal) {
	i.QuantityFulfilled = clamp(qty, decimal.Zero, i.OrderQuantity)
}

// SetRequested updates the requested quantity. It never drops below what has
// already been fulfilled.
func (i *RequisitionItem) SetRequested(qty decimal.Decimal) {
	if qty.LessThan(i.QuantityFulfilled) {
		qty = i.QuantityFulfilled
	}
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	i.OrderQuantity = qty
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
