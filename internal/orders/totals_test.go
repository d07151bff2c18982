package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSaleOrderTotalExactSum(t *testing.T) {
	o := SaleOrder{Items: []SaleItem{
		{Quantity: dec("10"), UnitPrice: dec("10.00")},
	}}
	assert.True(t, o.Total().Equal(dec("100.00")), "got %s", o.Total())

	o.Items = append(o.Items,
		SaleItem{Quantity: dec("2"), UnitPrice: dec("25.00")},
		SaleItem{Quantity: dec("1"), UnitPrice: dec("30.00")},
	)
	assert.True(t, o.Total().Equal(dec("180.00")), "got %s", o.Total())
}

func TestTotalRecomputesAfterRemoval(t *testing.T) {
	o := PurchaseOrder{Items: []PurchaseItem{
		{Quantity: dec("3"), UnitPrice: dec("7.50")},
		{Quantity: dec("1"), UnitPrice: dec("2.50")},
	}}
	require.True(t, o.Total().Equal(dec("25.00")))
	o.Items = o.Items[:1]
	require.True(t, o.Total().Equal(dec("22.50")))
}

func TestRequisitionFulfillmentFullyFulfilled(t *testing.T) {
	o := RequisitionOrder{Items: []RequisitionItem{
		{OrderQuantity: dec("5"), QuantityFulfilled: dec("5")},
		{OrderQuantity: dec("2"), QuantityFulfilled: dec("2")},
	}}
	assert.True(t, o.Fulfillment().Equal(dec("100")), "got %s", o.Fulfillment())
}

func TestFulfillmentZeroWhenNothingRequested(t *testing.T) {
	assert.True(t, RequisitionOrder{}.Fulfillment().IsZero())
	assert.True(t, PurchaseOrder{}.Fulfillment().IsZero())

	o := RequisitionOrder{Items: []RequisitionItem{
		{OrderQuantity: decimal.Zero, QuantityFulfilled: decimal.Zero},
	}}
	assert.True(t, o.Fulfillment().IsZero())
}

func TestFulfillmentStaysWithinBounds(t *testing.T) {
	o := PurchaseOrder{Items: []PurchaseItem{
		{Quantity: dec("4"), DeliveredQuantity: dec("1")},
		{Quantity: dec("4"), DeliveredQuantity: dec("2")},
	}}
	rate := o.Fulfillment()
	assert.True(t, rate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, rate.LessThanOrEqual(dec("100")))
	assert.True(t, rate.Equal(dec("37.5")), "got %s", rate)
}

func TestSetDeliveredClampsToOrdered(t *testing.T) {
	item := PurchaseItem{Quantity: dec("5")}

	item.SetDelivered(dec("7"))
	assert.True(t, item.DeliveredQuantity.Equal(dec("5")))

	item.SetDelivered(dec("-1"))
	assert.True(t, item.DeliveredQuantity.IsZero())

	item.SetDelivered(dec("3"))
	assert.True(t, item.DeliveredQuantity.Equal(dec("3")))
}

func TestSetOrderedNeverBelowDelivered(t *testing.T) {
	item := PurchaseItem{Quantity: dec("5"), DeliveredQuantity: dec("3")}

	item.SetOrdered(dec("2"))
	assert.True(t, item.Quantity.Equal(dec("3")), "ordered clamped up to delivered, got %s", item.Quantity)

	item.SetOrdered(dec("10"))
	assert.True(t, item.Quantity.Equal(dec("10")))
}

func TestSetRequestedNeverBelowFulfilled(t *testing.T) {
	item := RequisitionItem{OrderQuantity: dec("8"), QuantityFulfilled: dec("6")}

	item.SetRequested(dec("4"))
	assert.True(t, item.OrderQuantity.Equal(dec("6")))

	item.SetFulfilled(dec("9"))
	assert.True(t, item.QuantityFulfilled.Equal(dec("6")), "fulfilled clamped to requested")
}

func TestStatusLabelsAreExhaustive(t *testing.T) {
	known := []struct {
		label StatusLabel
		text  string
	}{
		{PurchasePending.Label(), "Pending"},
		{PurchaseApproved.Label(), "Approved"},
		{PurchaseDelivered.Label(), "Delivered"},
		{PurchaseCancelled.Label(), "Cancelled"},
		{SaleConfirmed.Label(), "Confirmed"},
		{SaleFulfilled.Label(), "Fulfilled"},
		{RequisitionInTransit.Label(), "In Transit"},
		{RequisitionRejected.Label(), "Rejected"},
	}
	for _, tc := range known {
		assert.Equal(t, tc.text, tc.label.Text)
		assert.NotEmpty(t, tc.label.Tone)
	}
}

func TestUnknownStatusNeverRendersRaw(t *testing.T) {
	assert.Equal(t, "Unknown", PurchaseStatus("SOMETHING_NEW").Label().Text)
	assert.Equal(t, "Unknown", SaleStatus("??").Label().Text)
	assert.Equal(t, "Unknown", RequisitionStatus("").Label().Text)
}
