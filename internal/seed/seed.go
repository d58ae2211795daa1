// Package seed loads an optional YAML fixture file into an empty store so a
// fresh deployment starts with a catalog instead of blank tables.
package seed

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
	Rewards  []seedReward  `yaml:"rewards"`
}

type seedProduct struct {
	Name          string  `yaml:"name"`
	SKU           string  `yaml:"sku"`
	Category      string  `yaml:"category"`
	Price         float64 `yaml:"price"`
	StockQuantity int     `yaml:"stock_quantity"`
	Description   string  `yaml:"description"`
	ImageURL      string  `yaml:"image_url"`
}

type seedReward struct {
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	RewardType     string  `yaml:"reward_type"`
	RewardValue    float64 `yaml:"reward_value"`
	PointsRequired int     `yaml:"points_required"`
}

// Apply reads the fixture at path and inserts its products and rewards into
// collections that are still empty. Existing data is never touched.
func Apply(ctx context.Context, st store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var fixture seedFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	if len(fixture.Products) > 0 {
		_, total, err := st.ListProducts(ctx, store.ProductFilter{Limit: 1})
		if err != nil {
			return err
		}
		if total == 0 {
			for _, p := range fixture.Products {
				product := models.Product{
					Name:          p.Name,
					SKU:           p.SKU,
					Category:      p.Category,
					Price:         p.Price,
					StockQuantity: p.StockQuantity,
					Description:   p.Description,
					ImageURL:      p.ImageURL,
					IsActive:      true,
				}
				if err := st.CreateProduct(ctx, &product); err != nil {
					return fmt.Errorf("seed product %q: %w", p.Name, err)
				}
			}
			log.Printf("seeded %d products", len(fixture.Products))
		}
	}

	if len(fixture.Rewards) > 0 {
		existing, err := st.ListRewards(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			for _, r := range fixture.Rewards {
				reward := models.Reward{
					Name:           r.Name,
					Description:    r.Description,
					RewardType:     r.RewardType,
					RewardValue:    r.RewardValue,
					PointsRequired: r.PointsRequired,
					IsActive:       true,
				}
				if err := st.CreateReward(ctx, &reward); err != nil {
					return fmt.Errorf("seed reward %q: %w", r.Name, err)
				}
			}
			log.Printf("seeded %d rewards", len(fixture.Rewards))
		}
	}

	return nil
}
