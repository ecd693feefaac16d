package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddonSnapshotTotalAndKey(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	first := AddonSnapshot{
		{ID: a, Name: "Extra rice", Price: 15},
		{ID: b, Name: "Egg", Price: 12},
	}
	reversed := AddonSnapshot{
		{ID: b, Name: "Egg", Price: 12},
		{ID: a, Name: "Extra rice", Price: 15},
	}

	assert.InDelta(t, 27.0, first.Total(), 0.001)
	assert.Equal(t, first.Key(), reversed.Key(), "addon key must not depend on selection order")
	assert.NotEqual(t, first.Key(), AddonSnapshot{{ID: a, Price: 15}}.Key())
	assert.Equal(t, "", AddonSnapshot{}.Key())
}

func TestCartItemLineTotal(t *testing.T) {
	item := &CartItem{
		Quantity:  3,
		UnitPrice: 120,
		Addons: AddonSnapshot{
			{ID: uuid.New(), Price: 10},
		},
	}
	assert.InDelta(t, 390.0, item.LineTotal(), 0.001)

	bare := &CartItem{Quantity: 2, UnitPrice: 50}
	assert.InDelta(t, 100.0, bare.LineTotal(), 0.001)
}

func TestCartItemMergeKey(t *testing.T) {
	productID := uuid.New()
	addonID := uuid.New()
	spicy := "extra spicy"

	base := &CartItem{
		ProductID: productID,
		Addons:    AddonSnapshot{{ID: addonID, Price: 5}},
	}
	same := &CartItem{
		ProductID: productID,
		Addons:    AddonSnapshot{{ID: addonID, Price: 5}},
	}
	withInstr := &CartItem{
		ProductID:    productID,
		Addons:       AddonSnapshot{{ID: addonID, Price: 5}},
		Instructions: &spicy,
	}
	otherAddons := &CartItem{
		ProductID: productID,
	}

	assert.Equal(t, base.MergeKey(), same.MergeKey())
	assert.NotEqual(t, base.MergeKey(), withInstr.MergeKey())
	assert.NotEqual(t, base.MergeKey(), otherAddons.MergeKey())
}
