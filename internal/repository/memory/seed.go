package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// SeedLocations loads the delivery areas used for local runs. Mirrors
// migrations/002_seed_locations.sql.
func (s *Store) SeedLocations() {
	s.AddCountry(domain.Country{ID: "np", Name: "Nepal"})

	s.AddProvince(domain.Province{ID: "bagmati", CountryID: "np", Name: "Bagmati"})
	s.AddProvince(domain.Province{ID: "gandaki", CountryID: "np", Name: "Gandaki"})
	s.AddProvince(domain.Province{ID: "koshi", CountryID: "np", Name: "Koshi"})

	cities := []struct {
		id, province, name string
		shipping           int64
	}{
		{"kathmandu", "bagmati", "Kathmandu", 100},
		{"lalitpur", "bagmati", "Lalitpur", 100},
		{"bhaktapur", "bagmati", "Bhaktapur", 120},
		{"pokhara", "gandaki", "Pokhara", 200},
		{"biratnagar", "koshi", "Biratnagar", 250},
	}
	for _, c := range cities {
		s.AddCity(domain.City{
			ID:           c.id,
			ProvinceID:   c.province,
			Name:         c.name,
			ShippingCost: decimal.NewFromInt(c.shipping),
		})
	}
}
