package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"shiftserve/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in catalog.
func Default() (domain.Catalog, error) {
	return Parse(defaultYAML)
}

func Parse(b []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// Load reads the catalog from path, or the built-in one when path is empty.
func Load(path string) (domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return Parse(b)
}
