package catalog

import (
	"context"
	"fmt"
)

var demoProducts = []Product{
	{Name: "Big Mac", Price: 85.00, Stock: 10},
	{Name: "McNuggets 6pz", Price: 60.00, Stock: 15},
	{Name: "Papas Medianas", Price: 35.00, Stock: 20},
	{Name: "Refresco 500ml", Price: 25.00, Stock: 25},
	{Name: "Helado", Price: 20.00, Stock: 12},
}

// Seed inserts the demo catalog when the store is empty, so a fresh
// database has something to sell. Existing products are left untouched.
func Seed(ctx context.Context, repo Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range demoProducts {
		if _, err := repo.Create(ctx, p.Name, p.Price, p.Stock); err != nil {
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return nil
}
