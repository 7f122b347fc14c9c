package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

// groupAccumulator is the per-group working state of one aggregation call.
// Accumulators are created on first sight of a key and discarded when the
// response is built; nothing survives between requests. Each report uses
// the subset of fields its fold touches.
type groupAccumulator struct {
	key   string
	label string // display name captured from the first contributing row

	totalUnits  decimal.Decimal
	totalAmount decimal.Decimal
	rows        int // contributing line items, NOT deduplicated by order

	orderIDs        opendata.StringSet
	completedOrders opendata.StringSet
	suppliers       opendata.StringSet
	categories      opendata.StringSet
	catalogs        opendata.StringSet
	agreements      opendata.StringSet
	entities        opendata.StringSet

	// Quoted-price tracking. priceSum/pricePoints feed the quoted mean;
	// min/max are only meaningful while pricePoints > 0.
	priceSum    decimal.Decimal
	pricePoints int
	minPrice    decimal.Decimal
	maxPrice    decimal.Decimal

	monthly map[string]*monthlyBucket
}

type monthlyBucket struct {
	units  decimal.Decimal
	amount decimal.Decimal
	orders int
}

func newGroupAccumulator(key string) *groupAccumulator {
	return &groupAccumulator{
		key:             key,
		orderIDs:        opendata.NewStringSet(),
		completedOrders: opendata.NewStringSet(),
		suppliers:       opendata.NewStringSet(),
		categories:      opendata.NewStringSet(),
		catalogs:        opendata.NewStringSet(),
		agreements:      opendata.NewStringSet(),
		entities:        opendata.NewStringSet(),
		monthly:         make(map[string]*monthlyBucket),
	}
}

// groupFor fetches or lazily creates the accumulator for key.
func groupFor(groups map[string]*groupAccumulator, key string) *groupAccumulator {
	acc, ok := groups[key]
	if !ok {
		acc = newGroupAccumulator(key)
		groups[key] = acc
	}
	return acc
}

// absorb folds the row-level running sums every report shares.
func (g *groupAccumulator) absorb(rec opendata.TransactionRecord) {
	g.totalUnits = g.totalUnits.Add(rec.UnitsDelivered)
	g.totalAmount = g.totalAmount.Add(rec.TotalAmount)
	g.rows++
}

// observePrice records a quoted unit price. Zero and negative prices are
// ignored so extrema and the quoted mean only reflect usable quotes.
func (g *groupAccumulator) observePrice(p decimal.Decimal) {
	if !p.IsPositive() {
		return
	}
	if g.pricePoints == 0 {
		g.minPrice, g.maxPrice = p, p
	} else {
		if p.LessThan(g.minPrice) {
			g.minPrice = p
		}
		if p.GreaterThan(g.maxPrice) {
			g.maxPrice = p
		}
	}
	g.priceSum = g.priceSum.Add(p)
	g.pricePoints++
}

// unitEconomicsAvgPrice is totalAmount / totalUnits: the money actually
// moved per unit. Callers must have excluded zero-unit groups already.
func (g *groupAccumulator) unitEconomicsAvgPrice() decimal.Decimal {
	if !g.totalUnits.IsPositive() {
		return decimal.Zero
	}
	return g.totalAmount.Div(g.totalUnits).Round(2)
}

// quotedAvgPrice is the arithmetic mean of the unit prices actually seen.
// This is a different statistic from unitEconomicsAvgPrice and the two
// must never be conflated; each report renders exactly one of them.
func (g *groupAccumulator) quotedAvgPrice() (decimal.Decimal, bool) {
	if g.pricePoints == 0 {
		return decimal.Zero, false
	}
	return g.priceSum.Div(decimal.NewFromInt(int64(g.pricePoints))).Round(2), true
}

// priceRange reports observed extrema. A single observation is not a
// range, so two or more price points are required.
func (g *groupAccumulator) priceRange() (minPrice, maxPrice decimal.Decimal, ok bool) {
	if g.pricePoints < 2 {
		return decimal.Zero, decimal.Zero, false
	}
	return g.minPrice, g.maxPrice, true
}

// bucketMonth folds a row into its YYYY-MM bucket.
func (g *groupAccumulator) bucketMonth(t time.Time, units, amount decimal.Decimal) {
	key := opendata.MonthKey(t)
	b, ok := g.monthly[key]
	if !ok {
		b = &monthlyBucket{}
		g.monthly[key] = b
	}
	b.units = b.units.Add(units)
	b.amount = b.amount.Add(amount)
	b.orders++
}

// percent computes part/whole*100 rounded to one decimal, guarding the
// zero denominator.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1)
}

// capScore clamps a heuristic score component at the configured ceiling.
func capScore(v decimal.Decimal) decimal.Decimal {
	ceiling := decimal.NewFromInt(efficiencyScoreCap)
	if v.GreaterThan(ceiling) {
		return ceiling
	}
	return v
}
