// Package catalog supplies the static lookup lists the form offers: client
// names, purchase-order types, job titles, and currencies. The core never
// checks membership against these lists; they exist purely for pickers.
package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultCatalogYAML = `# podraft lookup catalog
clients:
  - id: collabara
    label: Collabara - Collabara Inc
order_types:
  - id: group-po
    label: Group PO
  - id: individual-po
    label: Individual PO
job_titles:
  - Application Development
  - Business Administrator
currencies:
  - USD - Dollars ($)
`

// Option is one selectable entry with its stored id and display label.
type Option struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Catalog holds every lookup list the form renders.
type Catalog struct {
	Clients    []Option `yaml:"clients"`
	OrderTypes []Option `yaml:"order_types"`
	JobTitles  []string `yaml:"job_titles"`
	Currencies []string `yaml:"currencies"`
}

// Default parses the built-in catalog. It panics only on a broken built-in,
// which is a build defect, so callers get a plain value.
func Default() Catalog {
	cat, err := Parse([]byte(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog invalid: %v", err))
	}
	return cat
}

// Parse decodes a catalog document.
func Parse(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(cat.OrderTypes) == 0 {
		return Catalog{}, fmt.Errorf("catalog: order_types list is required")
	}
	return cat, nil
}

// OrderTypeLabel resolves the display label for a stored order-type id.
func (c Catalog) OrderTypeLabel(id string) string {
	for _, opt := range c.OrderTypes {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}

// ClientLabel resolves the display label for a stored client id.
func (c Catalog) ClientLabel(id string) string {
	for _, opt := range c.Clients {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}
