package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type locationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB, logger *zap.Logger) *locationRepository {
	return &locationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *locationRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	query := `
		SELECT id, name
		FROM countries
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query countries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		var country domain.Country
		if err := rows.Scan(&country.ID, &country.Name); err != nil {
			return nil, err
		}
		countries = append(countries, &country)
	}

	return countries, rows.Err()
}

func (r *locationRepository) ListProvinces(ctx context.Context, countryID string) ([]*domain.Province, error) {
	query := `
		SELECT id, country_id, name
		FROM provinces
		WHERE country_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, countryID)
	if err != nil {
		r.logger.Error("Failed to query provinces", zap.Error(err), zap.String("country_id", countryID))
		return nil, err
	}
	defer rows.Close()

	var provinces []*domain.Province
	for rows.Next() {
		var province domain.Province
		if err := rows.Scan(&province.ID, &province.CountryID, &province.Name); err != nil {
			return nil, err
		}
		provinces = append(provinces, &province)
	}

	return provinces, rows.Err()
}

func (r *locationRepository) ListCities(ctx context.Context, provinceID string) ([]*domain.City, error) {
	query := `
		SELECT id, province_id, name, shipping_cost
		FROM cities
		WHERE province_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, provinceID)
	if err != nil {
		r.logger.Error("Failed to query cities", zap.Error(err), zap.String("province_id", provinceID))
		return nil, err
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.ProvinceID, &city.Name, &city.ShippingCost); err != nil {
			return nil, err
		}
		cities = append(cities, &city)
	}

	return cities, rows.Err()
}

func (r *locationRepository) GetCity(ctx context.Context, id string) (*domain.City, error) {
	query := `
		SELECT id, province_id, name, shipping_cost
		FROM cities
		WHERE id = $1
	`

	var city domain.City
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&city.ID,
		&city.ProvinceID,
		&city.Name,
		&city.ShippingCost,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "city", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get city by ID", zap.Error(err))
		return nil, err
	}

	return &city, nil
}
