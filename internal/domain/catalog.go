package domain

import (
	"fmt"
	"strings"
)

// Catalog lists the options offered in onboarding and shift forms.
type Catalog struct {
	Roles            []string `yaml:"roles" json:"roles"`
	Certifications   []string `yaml:"certifications" json:"certifications"`
	Skills           []string `yaml:"skills" json:"skills"`
	CuisineTypes     []string `yaml:"cuisine_types" json:"cuisine_types"`
	RestaurantTypes  []string `yaml:"restaurant_types" json:"restaurant_types"`
	Benefits         []string `yaml:"benefits" json:"benefits"`
	ExperienceLevels []string `yaml:"experience_levels" json:"experience_levels"`
	Requirements     []string `yaml:"requirements" json:"requirements"`
	StreetNames      []string `yaml:"street_names" json:"-"`
	DemoRestaurants  []string `yaml:"demo_restaurants" json:"-"`
	// DemoRequirements are the requirement sets demo shifts draw from.
	DemoRequirements [][]string `yaml:"demo_requirements" json:"-"`
}

// CheckRoles rejects roles the catalog does not list. An empty role catalog
// accepts anything.
func (c Catalog) CheckRoles(roles ...string) error {
	if len(c.Roles) == 0 {
		return nil
	}
	var unknown []string
	for _, r := range roles {
		if !containsFold(c.Roles, r) {
			unknown = append(unknown, r)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: unknown roles %s", ErrValidation, strings.Join(unknown, ", "))
	}
	return nil
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
