//go:build unit

package impact_test

import (
	"testing"

	"foodbridge/internal/domain/impact"

	"github.com/stretchr/testify/assert"
)

func TestEstimateQuantity(t *testing.T) {
	t.Run("two kilos of chicken", func(t *testing.T) {
		est := impact.EstimateQuantity(2, "kg", "Chicken breast trays")

		assert.Equal(t, 13.8, est.CO2Kg)
		assert.Equal(t, 8650.0, est.WaterLiters)
		assert.Equal(t, 8, est.PeopleServed)
	})

	t.Run("unit conversion", func(t *testing.T) {
		est := impact.EstimateQuantity(500, "g", "tomato salad")
		assert.Equal(t, 1.0, est.CO2Kg)
		assert.Equal(t, 161.0, est.WaterLiters)
		assert.Equal(t, 2, est.PeopleServed)
	})

	t.Run("unknown unit assumes kilograms", func(t *testing.T) {
		known := impact.EstimateQuantity(3, "kg", "rice")
		unknown := impact.EstimateQuantity(3, "crate", "rice")
		assert.Equal(t, known, unknown)
	})

	t.Run("unmatched hint falls back to default factors", func(t *testing.T) {
		est := impact.EstimateQuantity(1, "kg", "mystery surplus")
		assert.Equal(t, 2.5, est.CO2Kg)
		assert.Equal(t, 1500.0, est.WaterLiters)
	})

	t.Run("negative quantity clamps to zero", func(t *testing.T) {
		est := impact.EstimateQuantity(-4, "kg", "bread")
		assert.Zero(t, est.CO2Kg)
		assert.Zero(t, est.WaterLiters)
		assert.Zero(t, est.PeopleServed)
	})
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		hint string
		want string
	}{
		{"Grilled chicken sandwiches", "poultry"}, // poultry outranks prepared
		{"cheddar cheese wheels", "cheese"},       // cheese outranks dairy
		{"whole milk cartons", "dairy"},
		{"sourdough bread loaves", "bread"},
		{"beef stew", "meat"},
		{"completely unknown", "default"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, impact.CategoryOf(tc.hint), "hint %q", tc.hint)
	}
}

func TestEstimateItems(t *testing.T) {
	t.Run("aggregates lines and rounds once", func(t *testing.T) {
		est := impact.EstimateItems([]impact.Item{
			{Name: "chicken thighs", Quantity: 1, Unit: "kg"},
			{Name: "rice", Quantity: 2, Unit: "kg"},
		})

		assert.Equal(t, 12.3, est.CO2Kg)         // 6.9 + 2*2.7
		assert.Equal(t, 7613.0, est.WaterLiters) // 4325 + 2*1644
		assert.Equal(t, 12, est.PeopleServed)    // 3kg / 0.25
	})

	t.Run("empty breakdown yields zero", func(t *testing.T) {
		est := impact.EstimateItems(nil)
		assert.Zero(t, est.CO2Kg)
		assert.Zero(t, est.PeopleServed)
	})
}
