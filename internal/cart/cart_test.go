package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/streamstore/internal/domain"
)

func product(id int64, price float64) domain.Product {
	return domain.Product{ID: id, ServiceID: 1, Name: "p", Price: price}
}

func TestAdd_SameProductMerges(t *testing.T) {
	c := New()
	c.Add(product(1, 10))
	item := c.Add(product(1, 10))

	require.Equal(t, 1, c.Len(), "one entry per product id")
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product(3, 1))
	c.Add(product(1, 1))
	c.Add(product(3, 1))
	assert.Equal(t, []int64{3, 1}, c.ProductIDs())
	assert.Equal(t, 3, c.Count())
}

func TestUpdateQuantity_ClampsAtOne(t *testing.T) {
	c := New()
	c.Add(product(1, 10))
	c.Add(product(1, 10))

	item, err := c.UpdateQuantity(1, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = c.UpdateQuantity(1, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity, "never below one")
	assert.Equal(t, 1, c.Len(), "never removed by a delta")

	item, err = c.UpdateQuantity(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = c.UpdateQuantity(99, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product(1, 10))
	c.Add(product(2, 10))

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))
	assert.Equal(t, []int64{2}, c.ProductIDs())
}

func TestTotal(t *testing.T) {
	c := New()
	a := product(1, 10.00)
	b := product(2, 5.50)
	c.Add(a)
	c.Add(a)
	c.Add(b)
	_, err := c.UpdateQuantity(2, 2)
	require.NoError(t, err)

	assert.True(t, c.Total().Equal(decimal.RequireFromString("36.50")), "got %s", c.Total())
	assert.Equal(t, "36.50", c.Total().StringFixed(2))

	assert.True(t, New().Total().IsZero())
}

func TestTotal_NoFloatDrift(t *testing.T) {
	c := New()
	c.Add(product(1, 0.1))
	c.Add(product(2, 0.2))
	assert.Equal(t, "0.3", c.Total().String())
}

func TestHydrate(t *testing.T) {
	products := []domain.Product{product(1, 10), product(2, 20)}
	lines := []Line{
		{ProductID: 2, Quantity: 2},
		{ProductID: 99, Quantity: 1}, // deleted product
		{ProductID: 1, Quantity: 0},
		{ProductID: 2, Quantity: 1},
	}

	c := Hydrate(lines, products)
	require.Equal(t, []int64{2, 1}, c.ProductIDs())
	items := c.Items()
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, []Line{{ProductID: 2, Quantity: 3}, {ProductID: 1, Quantity: 1}}, c.Lines())
}

func TestItemsIsACopy(t *testing.T) {
	c := New()
	c.Add(product(1, 10))
	items := c.Items()
	items[0].Quantity = 50
	assert.Equal(t, 1, c.Items()[0].Quantity)
}
