package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
)

func serveLocations(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/provinces":
			w.Write([]byte(`{"items":{"rows":[{"id":"31","name":"DKI Jakarta"},{"id":"32","name":"Jawa Barat"}]}}`))
		case "/cities":
			switch r.URL.Query().Get("province_id") {
			case "31":
				w.Write([]byte(`{"items":{"rows":[{"id":"3171","name":"Jakarta Selatan"}]}}`))
			case "32":
				w.Write([]byte(`{"items":{"rows":[{"id":"3204","name":"Bandung"},{"id":"3273","name":"Kota Bandung"}]}}`))
			default:
				w.Write([]byte(`{"items":{"rows":[]}}`))
			}
		case "/districts":
			w.Write([]byte(`{"items":{"rows":[{"id":"317101","name":"Kebayoran Baru"}]}}`))
		default:
			w.Write([]byte(`{"items":{"rows":[]}}`))
		}
	}
}

func TestLocationCascade_SelectionChain(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveLocations(t))

	cascade := NewLocationCascade(backend.client(), testLogger())
	ctx := context.Background()

	assert.Equal(t, CascadeUnselected, cascade.State())

	cascade.LoadProvinces(ctx)
	require.Len(t, cascade.Provinces(), 2)

	cascade.SelectProvince(ctx, cascade.Provinces()[0])
	assert.Equal(t, CascadeProvinceChosen, cascade.State())
	require.Len(t, cascade.Cities(), 1)
	assert.Empty(t, cascade.Districts())

	cascade.SelectCity(ctx, cascade.Cities()[0])
	assert.Equal(t, CascadeCityChosen, cascade.State())
	require.Len(t, cascade.Districts(), 1)

	cascade.SelectDistrict(cascade.Districts()[0])
	assert.Equal(t, CascadeDistrictChosen, cascade.State())

	province, city, district := cascade.Selected()
	assert.Equal(t, "31", province.ID)
	assert.Equal(t, "3171", city.ID)
	assert.Equal(t, "317101", district.ID)
}

func TestLocationCascade_ReselectingProvinceInvalidatesDescendants(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveLocations(t))

	cascade := NewLocationCascade(backend.client(), testLogger())
	ctx := context.Background()

	cascade.LoadProvinces(ctx)
	cascade.SelectProvince(ctx, cascade.Provinces()[0])
	cascade.SelectCity(ctx, cascade.Cities()[0])
	cascade.SelectDistrict(cascade.Districts()[0])
	require.Equal(t, CascadeDistrictChosen, cascade.State())

	cascade.SelectProvince(ctx, cascade.Provinces()[1])

	_, city, district := cascade.Selected()
	assert.Empty(t, city.ID)
	assert.Empty(t, district.ID)
	assert.Empty(t, cascade.Districts())
	assert.Len(t, cascade.Cities(), 2)
	assert.Equal(t, CascadeProvinceChosen, cascade.State())
}

func TestLocationCascade_CityFetchFailureLeavesSelectorEmpty(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveLocations(t))

	cascade := NewLocationCascade(backend.client(), testLogger())
	ctx := context.Background()

	cascade.LoadProvinces(ctx)
	cascade.SelectProvince(ctx, cascade.Provinces()[0])
	cascade.SelectCity(ctx, cascade.Cities()[0])
	require.NotEmpty(t, cascade.Districts())

	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	cascade.SelectProvince(ctx, cascade.Provinces()[1])
	// the selection sticks; the dependent option lists stay empty
	province, _, _ := cascade.Selected()
	assert.Equal(t, "32", province.ID)
	assert.Empty(t, cascade.Cities())
	assert.Empty(t, cascade.Districts())
}

func TestLocationCascade_ApplyTo(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveLocations(t))

	cascade := NewLocationCascade(backend.client(), testLogger())
	ctx := context.Background()

	cascade.LoadProvinces(ctx)
	cascade.SelectProvince(ctx, cascade.Provinces()[0])
	cascade.SelectCity(ctx, cascade.Cities()[0])

	filters := cascade.ApplyTo(tokotitoh.FilterSet{tokotitoh.FilterBrand: "7"})
	assert.Equal(t, "7", filters[tokotitoh.FilterBrand])
	assert.Equal(t, "31", filters[tokotitoh.FilterProvince])
	assert.Equal(t, "3171", filters[tokotitoh.FilterCity])
	assert.NotContains(t, filters, tokotitoh.FilterDistrict)

	// nil receiver set allocates
	fromNil := cascade.ApplyTo(nil)
	assert.Equal(t, "31", fromNil[tokotitoh.FilterProvince])
}

func TestLocationCascade_Reset(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveLocations(t))

	cascade := NewLocationCascade(backend.client(), testLogger())
	ctx := context.Background()

	cascade.LoadProvinces(ctx)
	cascade.SelectProvince(ctx, entities.Province{ID: "31", Name: "DKI Jakarta"})
	cascade.Reset()

	assert.Equal(t, CascadeUnselected, cascade.State())
	assert.Empty(t, cascade.Cities())
	// the root option list survives a reset
	assert.NotEmpty(t, cascade.Provinces())
}
