package catalog

type Product struct {
	ID    int64   `json:"productId"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// AdjustStock applies a delta to the stock count, clamping the result at
// zero so the stored value never goes negative.
func (p *Product) AdjustStock(delta int) {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
}

// Snapshot is an in-memory view of the catalog keyed by product id. It is
// what the cart totals against; it does not track later store mutations.
type Snapshot map[int64]Product

func SnapshotOf(products []Product) Snapshot {
	snap := make(Snapshot, len(products))
	for _, p := range products {
		snap[p.ID] = p
	}
	return snap
}
