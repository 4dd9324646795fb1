package impact

import (
	"math"
	"strings"
)

// Estimate holds the sustainability figures derived from a delivered
// quantity. Mass and volume figures are rounded to two decimals.
type Estimate struct {
	CO2Kg        float64
	WaterLiters  float64
	PeopleServed int
}

// Item is one line of an itemized delivery breakdown.
type Item struct {
	Name     string
	Quantity float64
	Unit     string
}

const kgPerServing = 0.25

type factors struct {
	co2KgPerKg  float64
	waterLPerKg float64
}

// Emission and water footprint factors per food category, kg-CO2e/kg and
// liters/kg.
var categoryFactors = map[string]factors{
	"meat":       {27.0, 15415},
	"poultry":    {6.9, 4325},
	"fish":       {6.1, 3691},
	"cheese":     {13.5, 3178},
	"dairy":      {3.2, 1020},
	"vegetables": {2.0, 322},
	"fruits":     {1.1, 962},
	"grains":     {2.7, 1644},
	"bread":      {1.6, 1608},
	"prepared":   {3.8, 2100},
	"default":    {2.5, 1500},
}

// Keyword tables checked in order; the first category with a matching
// keyword wins, so "cheese" is tested before the generic "dairy" bucket.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"poultry", []string{"chicken", "turkey", "duck", "poultry"}},
	{"fish", []string{"fish", "salmon", "tuna", "shrimp", "prawn", "seafood"}},
	{"meat", []string{"beef", "pork", "lamb", "mutton", "steak", "sausage", "bacon", "meat"}},
	{"cheese", []string{"cheese", "mozzarella", "cheddar", "parmesan"}},
	{"dairy", []string{"milk", "yogurt", "yoghurt", "butter", "cream", "dairy"}},
	{"bread", []string{"bread", "bun", "bagel", "croissant", "pastry", "baked"}},
	{"grains", []string{"rice", "pasta", "noodle", "grain", "cereal", "oat", "quinoa", "flour"}},
	{"vegetables", []string{"vegetable", "veggie", "salad", "carrot", "potato", "tomato", "onion", "spinach", "greens"}},
	{"fruits", []string{"fruit", "apple", "banana", "orange", "berry", "mango", "grape", "melon"}},
	{"prepared", []string{"meal", "soup", "curry", "stew", "sandwich", "pizza", "casserole", "prepared", "cooked", "leftover"}},
}

// Approximate kilograms per unit. Volume units assume water-like density;
// count units carry typical portion weights.
var unitToKg = map[string]float64{
	"kg":       1,
	"kgs":      1,
	"g":        0.001,
	"gram":     0.001,
	"grams":    0.001,
	"lb":       0.4536,
	"lbs":      0.4536,
	"oz":       0.0283,
	"l":        1,
	"liter":    1,
	"liters":   1,
	"litre":    1,
	"litres":   1,
	"ml":       0.001,
	"item":     0.3,
	"items":    0.3,
	"piece":    0.3,
	"pieces":   0.3,
	"serving":  kgPerServing,
	"servings": kgPerServing,
	"portion":  0.35,
	"portions": 0.35,
	"plate":    0.4,
	"plates":   0.4,
	"box":      2,
	"boxes":    2,
	"bag":      1.5,
	"bags":     1.5,
	"loaf":     0.5,
	"loaves":   0.5,
}

// EstimateQuantity turns a delivered quantity into CO2-avoided, water-saved
// and people-served figures. Unknown units and unmatched food hints fall
// back to defaults; the function never fails.
func EstimateQuantity(quantity float64, unit, foodHint string) Estimate {
	if quantity < 0 {
		quantity = 0
	}
	kg := quantity * kgFactor(unit)
	f := factorsFor(foodHint)
	return finish(kg*f.co2KgPerKg, kg*f.waterLPerKg, kg)
}

// EstimateItems aggregates an itemized breakdown into one estimate.
// Rounding happens once over the totals, not per line.
func EstimateItems(items []Item) Estimate {
	var co2, water, kgTotal float64
	for _, it := range items {
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		kg := qty * kgFactor(it.Unit)
		f := factorsFor(it.Name)
		co2 += kg * f.co2KgPerKg
		water += kg * f.waterLPerKg
		kgTotal += kg
	}
	return finish(co2, water, kgTotal)
}

func finish(co2, water, kg float64) Estimate {
	return Estimate{
		CO2Kg:        round2(co2),
		WaterLiters:  round2(water),
		PeopleServed: int(math.Floor(kg / kgPerServing)),
	}
}

func kgFactor(unit string) float64 {
	if f, ok := unitToKg[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return f
	}
	return 1
}

func factorsFor(foodHint string) factors {
	hint := strings.ToLower(foodHint)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(hint, kw) {
				return categoryFactors[entry.category]
			}
		}
	}
	return categoryFactors["default"]
}

// CategoryOf exposes the inferred category for display purposes.
func CategoryOf(foodHint string) string {
	hint := strings.ToLower(foodHint)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(hint, kw) {
				return entry.category
			}
		}
	}
	return "default"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
