// Package catalog provides the static reference list of purchasable
// electrical components. The catalog is compiled into the binary from a YAML
// definition and is immutable at runtime.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"electroplan/pkg/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Currency string               `yaml:"currency"`
	Items    []domain.CatalogItem `yaml:"items"`
}

// Catalog is a read-only lookup table of catalog items keyed by id.
type Catalog struct {
	currency string
	order    []string
	byID     map[string]domain.CatalogItem
}

// Load parses the embedded catalog definition. It fails on duplicate ids,
// unknown categories, or negative prices so a bad definition is caught at
// startup rather than silently mispricing projects.
func Load() (*Catalog, error) {
	return parse(catalogYAML)
}

// New builds a catalog from explicit items, primarily for tests.
func New(items []domain.CatalogItem) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]domain.CatalogItem, len(items))}
	for _, item := range items {
		if err := c.add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c, err := New(file.Items)
	if err != nil {
		return nil, err
	}
	c.currency = file.Currency
	return c, nil
}

func (c *Catalog) add(item domain.CatalogItem) error {
	if item.ID == "" {
		return fmt.Errorf("catalog item with empty id")
	}
	if _, exists := c.byID[item.ID]; exists {
		return fmt.Errorf("duplicate catalog item %q", item.ID)
	}
	if !validCategory(item.Category) {
		return fmt.Errorf("catalog item %q has unknown category %q", item.ID, item.Category)
	}
	if item.Price < 0 {
		return fmt.Errorf("catalog item %q has negative price %d", item.ID, item.Price)
	}
	c.byID[item.ID] = item
	c.order = append(c.order, item.ID)
	return nil
}

func validCategory(cat domain.ItemCategory) bool {
	for _, known := range domain.Categories {
		if cat == known {
			return true
		}
	}
	return false
}

// FindByID returns the catalog item with the given id.
func (c *Catalog) FindByID(id string) (domain.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Items returns all catalog items in definition order.
func (c *Catalog) Items() []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Currency reports the display currency of catalog prices.
func (c *Catalog) Currency() string {
	return c.currency
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.byID)
}
