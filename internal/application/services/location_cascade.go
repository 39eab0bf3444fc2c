package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
)

// CascadeState tracks how deep into the province/city/district chain a
// selection has progressed
type CascadeState int

const (
	CascadeUnselected CascadeState = iota
	CascadeProvinceChosen
	CascadeCityChosen
	CascadeDistrictChosen
)

// LocationCascade populates the three dependent location selectors and
// enforces the parent-invalidates-child rule in one place: choosing a
// province always clears the city and district selections and their
// option lists, choosing a city always clears the district. Descendant
// state can never go stale after a parent change.
type LocationCascade struct {
	client tokotitoh.Client
	logger zerolog.Logger

	provinces []entities.Province
	cities    []entities.City
	districts []entities.District

	province entities.Province
	city     entities.City
	district entities.District
}

// NewLocationCascade creates an empty cascade
func NewLocationCascade(client tokotitoh.Client, logger zerolog.Logger) *LocationCascade {
	return &LocationCascade{
		client: client,
		logger: logger.With().Str("component", "location_cascade").Logger(),
	}
}

// LoadProvinces fetches the root option list. Failures are logged and
// leave the list empty.
func (c *LocationCascade) LoadProvinces(ctx context.Context) {
	provinces, err := c.client.Provinces(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch provinces")
		return
	}
	c.provinces = provinces
}

// SelectProvince records the chosen province, invalidates every
// descendant selection and option list, and fetches the cities scoped to
// the new province. The city selector stays empty until the fetch
// resolves.
func (c *LocationCascade) SelectProvince(ctx context.Context, province entities.Province) {
	c.province = province
	c.city = entities.City{}
	c.district = entities.District{}
	c.cities = nil
	c.districts = nil

	cities, err := c.client.Cities(ctx, province.ID)
	if err != nil {
		c.logger.Error().Err(err).Str("province_id", province.ID).Msg("failed to fetch cities")
		return
	}
	c.cities = cities
}

// SelectCity records the chosen city, invalidates the district selection
// and option list, and fetches the districts scoped to the city.
func (c *LocationCascade) SelectCity(ctx context.Context, city entities.City) {
	c.city = city
	c.district = entities.District{}
	c.districts = nil

	districts, err := c.client.Districts(ctx, city.ID)
	if err != nil {
		c.logger.Error().Err(err).Str("city_id", city.ID).Msg("failed to fetch districts")
		return
	}
	c.districts = districts
}

// SelectDistrict records the chosen district; terminal, no further cascade
func (c *LocationCascade) SelectDistrict(district entities.District) {
	c.district = district
}

// Reset clears every selection and every option list below the root
func (c *LocationCascade) Reset() {
	c.province = entities.Province{}
	c.city = entities.City{}
	c.district = entities.District{}
	c.cities = nil
	c.districts = nil
}

// State returns how far the chain has been selected
func (c *LocationCascade) State() CascadeState {
	switch {
	case c.district.ID != "":
		return CascadeDistrictChosen
	case c.city.ID != "":
		return CascadeCityChosen
	case c.province.ID != "":
		return CascadeProvinceChosen
	default:
		return CascadeUnselected
	}
}

// Provinces returns the root option list
func (c *LocationCascade) Provinces() []entities.Province { return c.provinces }

// Cities returns the options scoped to the selected province
func (c *LocationCascade) Cities() []entities.City { return c.cities }

// Districts returns the options scoped to the selected city
func (c *LocationCascade) Districts() []entities.District { return c.districts }

// Selected returns the current selections; unset levels are zero values
func (c *LocationCascade) Selected() (entities.Province, entities.City, entities.District) {
	return c.province, c.city, c.district
}

// ApplyTo writes the selected location ids into a filter set, skipping
// unset levels
func (c *LocationCascade) ApplyTo(filters tokotitoh.FilterSet) tokotitoh.FilterSet {
	if filters == nil {
		filters = tokotitoh.FilterSet{}
	}
	if c.province.ID != "" {
		filters[tokotitoh.FilterProvince] = c.province.ID
	}
	if c.city.ID != "" {
		filters[tokotitoh.FilterCity] = c.city.ID
	}
	if c.district.ID != "" {
		filters[tokotitoh.FilterDistrict] = c.district.ID
	}
	return filters
}
