package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/capiwear/storefront/catalog/pkg/response"
)

func product(id int64, name string, price string) response.Product {
	d, _ := decimal.NewFromString(price)
	return response.Product{
		ID:       id,
		Name:     name,
		Price:    d,
		Image:    "https://cdn.example/" + name + ".png",
		Category: "camisetas",
	}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	tests := []struct {
		name             string
		adds             int
		expectedQuantity int
	}{
		{name: "single add creates one line item with quantity 1", adds: 1, expectedQuantity: 1},
		{name: "three adds keep one line item with quantity 3", adds: 3, expectedQuantity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			p := product(1, "camiseta-capi", "129.90")
			for range tt.adds {
				store.AddItem(p)
			}

			items := store.Items()
			assert.Len(t, items, 1, "same product must never duplicate line items")
			assert.EqualValues(t, tt.expectedQuantity, items[0].Quantity)
			assert.EqualValues(t, tt.expectedQuantity, store.Count())
		})
	}
}

func TestAddItemCapturesProductFields(t *testing.T) {
	store := NewStore()
	store.AddItem(product(7, "moletom-logo", "219.90"))

	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, "moletom-logo", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("219.90")))
	assert.EqualValues(t, "https://cdn.example/moletom-logo.png", items[0].Image)
}

func TestAddItemFallsBackToPlaceholderImage(t *testing.T) {
	store := NewStore()
	p := product(7, "moletom-logo", "219.90")
	p.Image = ""
	store.AddItem(p)

	assert.EqualValues(t, response.PlaceholderImage, store.Items()[0].Image)
}

func TestAddItemOpensDrawerAndClearsMessages(t *testing.T) {
	store := NewStore()
	store.RecordSuccess("order #1 created successfully")
	assert.False(t, store.DrawerOpen())

	store.AddItem(product(1, "camiseta-capi", "129.90"))

	assert.True(t, store.DrawerOpen())
	assert.Empty(t, store.SuccessMessage())
	assert.Empty(t, store.ErrorMessage())
}

func TestRemoveItem(t *testing.T) {
	store := NewStore()
	store.AddItem(product(1, "camiseta-capi", "129.90"))
	store.AddItem(product(2, "calca-jogger", "189.90"))

	store.RemoveItem(1)

	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].ProductID)

	// Removing an absent item is a silent no-op.
	store.RemoveItem(99)
	assert.Len(t, store.Items(), 1)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		expectPresent bool
		expectedQty   int
	}{
		{name: "positive quantity is set exactly", quantity: 5, expectPresent: true, expectedQty: 5},
		{name: "no upper clamp", quantity: 10000, expectPresent: true, expectedQty: 10000},
		{name: "zero removes the item", quantity: 0, expectPresent: false},
		{name: "negative removes the item", quantity: -3, expectPresent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			store.AddItem(product(1, "camiseta-capi", "129.90"))

			store.SetQuantity(1, tt.quantity)

			if !tt.expectPresent {
				assert.Empty(t, store.Items())
				assert.False(t, store.Contains(1))
				return
			}
			items := store.Items()
			assert.Len(t, items, 1)
			assert.EqualValues(t, tt.expectedQty, items[0].Quantity)
		})
	}
}

func TestSubtotalAndCount(t *testing.T) {
	store := NewStore()
	assert.True(t, store.Subtotal().IsZero())
	assert.EqualValues(t, 0, store.Count())

	store.AddItem(product(1, "camiseta-capi", "10.00"))
	store.AddItem(product(1, "camiseta-capi", "10.00"))
	store.AddItem(product(2, "meia-capi", "5.00"))

	assert.True(t, store.Subtotal().Equal(decimal.RequireFromString("25.00")),
		"subtotal should be 10.00*2 + 5.00*1, got %s", store.Subtotal())
	assert.EqualValues(t, 3, store.Count())

	store.SetQuantity(2, 4)
	assert.True(t, store.Subtotal().Equal(decimal.RequireFromString("40.00")),
		"subtotal must recompute after a mutation, got %s", store.Subtotal())
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	store := NewStore()
	store.AddItem(product(3, "bone-trucker", "89.90"))
	store.AddItem(product(1, "camiseta-capi", "129.90"))
	store.AddItem(product(2, "calca-jogger", "189.90"))
	store.AddItem(product(1, "camiseta-capi", "129.90"))

	ids := []int64{}
	for _, item := range store.Items() {
		ids = append(ids, item.ProductID)
	}
	assert.EqualValues(t, []int64{3, 1, 2}, ids)
}

func TestBeginCheckoutGuardsReentry(t *testing.T) {
	store := NewStore()
	store.RecordFailure("previous failure")

	assert.True(t, store.BeginCheckout(), "first attempt should acquire the in-flight flag")
	assert.Empty(t, store.ErrorMessage(), "starting an attempt clears prior outcomes")
	assert.True(t, store.Submitting())
	assert.False(t, store.BeginCheckout(), "second attempt while in flight must be refused")

	store.FinishCheckout()
	assert.False(t, store.Submitting())
	assert.True(t, store.BeginCheckout(), "the guard is re-enterable after completion")
}

func TestOutcomeMessagesAreMutuallyExclusive(t *testing.T) {
	store := NewStore()

	store.RecordFailure("order service returned status code=500")
	assert.NotEmpty(t, store.ErrorMessage())

	store.RecordSuccess("order #42 created successfully")
	assert.Empty(t, store.ErrorMessage())
	assert.Contains(t, store.SuccessMessage(), "42")

	store.RecordFailure("network is down")
	assert.Empty(t, store.SuccessMessage())
}
