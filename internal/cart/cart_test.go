package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	return c
}

func headphones() Item {
	return Item{ProductID: 1, Name: "Wireless Headphones", PriceCents: 3000}
}

func mug() Item {
	return Item{ProductID: 2, Name: "Ceramic Mug", PriceCents: 2500}
}

func notebook() Item {
	return Item{ProductID: 3, Name: "Linen Notebook", PriceCents: 2000}
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{FreeShippingThresholdCents: -1})
	assert.Error(t, err)

	_, err = New(Config{FlatShippingFeeCents: -1})
	assert.Error(t, err)

	_, err = New(Config{TaxRate: decimal.New(-8, -2)})
	assert.Error(t, err)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(mug()))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Wireless Headphones", lines[0].Item.Name)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, c.TotalItemCount())
}

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	assert.Error(t, c.AddItem(Item{ProductID: 0, PriceCents: 100}))
	assert.Error(t, c.AddItem(Item{ProductID: 9, PriceCents: -1}))
	assert.Empty(t, c.Lines())
}

func TestRemoveItemKeepsOrder(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(mug()))
	require.NoError(t, c.AddItem(notebook()))

	c.RemoveItem(mug().ProductID)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].Item.ProductID)
	assert.Equal(t, int64(3), lines[1].Item.ProductID)

	// absent product is a no-op
	c.RemoveItem(42)
	assert.Len(t, c.Lines(), 2)

	// the surviving lines still increment in place
	require.NoError(t, c.AddItem(notebook()))
	assert.Equal(t, 2, c.Lines()[1].Quantity)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))

	c.SetQuantity(headphones().ProductID, 5)
	assert.Equal(t, 5, c.TotalItemCount())

	c.SetQuantity(headphones().ProductID, 0)
	assert.Empty(t, c.Lines())

	// absent product is a no-op
	c.SetQuantity(42, 3)
	assert.Empty(t, c.Lines())
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(mug()))
	c.SetQuantity(mug().ProductID, -2)
	assert.Empty(t, c.Lines())
}

func TestTotalsBelowFreeShipping(t *testing.T) {
	t.Parallel()

	// $30 x2 + $25 = $85 subtotal
	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(mug()))

	assert.Equal(t, int64(8500), c.SubtotalCents())
	assert.Equal(t, int64(999), c.ShippingFeeCents())
	assert.Equal(t, int64(1500), c.AmountToFreeShippingCents())
	assert.Equal(t, int64(680), c.TaxCents())
	assert.Equal(t, int64(8500+999+680), c.GrandTotalCents())
}

func TestTotalsAtFreeShipping(t *testing.T) {
	t.Parallel()

	// $85 + $20 = $105 subtotal, past the $100 threshold
	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(headphones()))
	require.NoError(t, c.AddItem(mug()))
	require.NoError(t, c.AddItem(notebook()))

	assert.Equal(t, int64(10500), c.SubtotalCents())
	assert.Equal(t, int64(0), c.ShippingFeeCents())
	assert.Equal(t, int64(0), c.AmountToFreeShippingCents())
	assert.Equal(t, int64(840), c.TaxCents())
	assert.Equal(t, int64(11340), c.GrandTotalCents())
}

func TestTotalsExactThreshold(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(Item{ProductID: 7, Name: "Gift Card", PriceCents: 10000}))

	assert.Equal(t, int64(0), c.ShippingFeeCents())
	assert.Equal(t, int64(0), c.AmountToFreeShippingCents())
}

func TestEmptyCartTotals(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	assert.Equal(t, int64(0), c.SubtotalCents())
	assert.Equal(t, int64(0), c.ShippingFeeCents())
	assert.Equal(t, int64(0), c.TaxCents())
	assert.Equal(t, int64(0), c.GrandTotalCents())
	assert.Equal(t, int64(10000), c.AmountToFreeShippingCents())
	assert.Equal(t, 0, c.TotalItemCount())
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))
	c.Clear()
	assert.Empty(t, c.Lines())

	// the index resets too
	require.NoError(t, c.AddItem(headphones()))
	assert.Equal(t, 1, c.TotalItemCount())
}

func TestLinesReturnsCopy(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	require.NoError(t, c.AddItem(headphones()))

	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
