package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	apperrors "github.com/tokotitoh/marketplace-client/pkg/errors"
)

func serveTaxonomy(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			w.Write([]byte(`{"items":{"rows":[{"id":1,"name":"Mobil"},{"id":2,"name":"Properti"}]}}`))
		case "/subcategories":
			w.Write([]byte(`{"items":{"rows":[{"id":11,"name":"Dijual","category_id":1}]}}`))
		case "/brands":
			w.Write([]byte(`{"items":{"rows":[{"id":7,"name":"Toyota"}]}}`))
		case "/types":
			w.Write([]byte(`{"items":{"rows":[{"id":71,"name":"Avanza"}]}}`))
		default:
			w.Write([]byte(`{"items":{"rows":[]}}`))
		}
	}
}

func TestAdWizard_StepProgression(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(serveTaxonomy(t))

	w := NewAdWizard(backend.client(), testLogger())
	ctx := context.Background()

	assert.Equal(t, StepCategory, w.CurrentStep())
	assert.ElementsMatch(t, []int{1}, w.CompletedSteps())
	assert.False(t, w.GoBack())

	w.LoadCategories(ctx)
	require.Len(t, w.Categories(), 2)

	w.SelectCategory(ctx, w.Categories()[0])
	assert.Equal(t, StepSubcategory, w.CurrentStep())
	assert.ElementsMatch(t, []int{1, 2}, w.CompletedSteps())
	require.Len(t, w.Subcategories(), 1)
	require.Len(t, w.Brands(), 1)

	w.SelectSubcategory(w.Subcategories()[0])
	assert.Equal(t, StepImages, w.CurrentStep())
	assert.ElementsMatch(t, []int{1, 2, 3}, w.CompletedSteps())

	require.NoError(t, w.AddImage("https://cdn.tokotitoh.co.id/a.jpg"))
	require.NoError(t, w.NextFromImages())
	assert.Equal(t, StepForm, w.CurrentStep())
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, w.CompletedSteps())

	// stepping back removes the marker of the step being left
	assert.True(t, w.GoBack())
	assert.Equal(t, StepImages, w.CurrentStep())
	assert.ElementsMatch(t, []int{1, 2, 3}, w.CompletedSteps())
}

func TestAdWizard_ImageRules(t *testing.T) {
	backend := newTestBackend(t)
	w := NewAdWizard(backend.client(), testLogger())

	err := w.NextFromImages()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "minimal 1 gambar")

	for i := 0; i < MaxImages; i++ {
		require.NoError(t, w.AddImage("file:///tmp/img.jpg"))
	}
	err = w.AddImage("file:///tmp/satu-lagi.jpg")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Len(t, w.Images(), MaxImages)

	w.RemoveImage(0)
	assert.Len(t, w.Images(), MaxImages-1)
	w.RemoveImage(99)
	assert.Len(t, w.Images(), MaxImages-1)
}

func TestAdWizard_VehicleValidationFailsBeforeNetwork(t *testing.T) {
	backend := newTestBackend(t)
	w := NewAdWizard(backend.client(), testLogger())

	draft := w.Draft()
	draft.CategoryName = "Mobil"
	draft.SubcategoryName = "Dijual"
	draft.Title = "Avanza 2019"
	draft.Price = "150.000.000"
	draft.Description = "Mulus, pajak hidup"
	draft.WA = "08123456789"
	// brand, type, fuel, transmission, year all unset

	err := w.NextFromForm(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, backend.requestCount())
	assert.Equal(t, StepCategory, w.CurrentStep())
}

func TestAdWizard_FormValidationByCategory(t *testing.T) {
	fill := func(draft *entities.AdDraft) {
		draft.Title = "Judul"
		draft.Price = "1.000"
		draft.Description = "Deskripsi"
		draft.WA = "0812"
	}

	tests := []struct {
		name    string
		prepare func(draft *entities.AdDraft)
		wantErr bool
	}{
		{
			name: "vehicle complete",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Mobil"
				d.SubcategoryName = "Dijual"
				d.BrandID = 7
				d.TypeID = 71
				d.FuelType = "Bensin"
				d.Transmission = "Manual"
				d.Year = "2019"
			},
		},
		{
			name: "property missing areas",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Properti"
			},
			wantErr: true,
		},
		{
			name: "property complete",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Properti"
				d.LandArea = "120"
				d.BuildingArea = "90"
			},
		},
		{
			name: "electronics needs condition",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Elektronik"
			},
			wantErr: true,
		},
		{
			name: "sparepart subcategory needs condition",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Motor"
				d.SubcategoryName = "Sparepart"
				d.Condition = "Bekas"
			},
		},
		{
			name: "generic missing base field",
			prepare: func(d *entities.AdDraft) {
				fill(d)
				d.CategoryName = "Jasa"
				d.WA = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t)
			w := NewAdWizard(backend.client(), testLogger())
			tt.prepare(w.Draft())

			err := w.NextFromForm(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				assert.Equal(t, 0, backend.requestCount())
			} else {
				require.NoError(t, err)
				assert.Equal(t, StepLocation, w.CurrentStep())
			}
		})
	}
}

func TestAdWizard_SubmitRequiresLocationAndImages(t *testing.T) {
	backend := newTestBackend(t)
	w := NewAdWizard(backend.client(), testLogger())

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lokasi")
	assert.Equal(t, 0, backend.requestCount())

	draft := w.Draft()
	draft.ProvinceID = "31"
	draft.CityID = "3171"
	draft.DistrictID = "317101"

	err = w.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gambar")
	assert.Equal(t, 0, backend.requestCount())
}

func TestAdWizard_SubmitUploadsAndPosts(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "foto.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("jpeg-bytes"), 0o600))

	var posted []byte
	backend := newTestBackend(t)
	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/file-upload":
			w.Write([]byte(`{"status":"success","url":"https://cdn.tokotitoh.co.id/foto.jpg"}`))
		case "/ads":
			assert.Equal(t, http.MethodPost, r.Method)
			posted, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{"items":{"rows":[]}}`))
		}
	})

	w := NewAdWizard(backend.client(), testLogger())
	w.now = func() time.Time { return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC) }
	w.SetUser(42, "Budi")

	draft := w.Draft()
	draft.CategoryID = 1
	draft.CategoryName = "Mobil"
	draft.SubcategoryID = 11
	draft.SubcategoryName = "Dijual"
	draft.Title = "Avanza 2019"
	draft.Price = "150.000.000"
	draft.Description = "Mulus"
	draft.WA = "0812"
	draft.ProvinceID = "31"
	draft.ProvinceName = "DKI Jakarta"
	draft.CityID = "3171"
	draft.CityName = "Jakarta Selatan"
	draft.DistrictID = "317101"
	draft.DistrictName = "Kebayoran Baru"

	require.NoError(t, w.AddImage("file://"+imgPath))
	require.NoError(t, w.AddImage("https://cdn.tokotitoh.co.id/lama.jpg"))

	require.NoError(t, w.Submit(context.Background()))
	require.NotEmpty(t, posted)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(posted, &payload))

	assert.Equal(t, "Avanza 2019", payload["title"])
	assert.Equal(t, float64(150000000), payload["price"])
	assert.Equal(t, float64(42), payload["user_id"])
	assert.Equal(t, "Budi", payload["user_name"])
	assert.Equal(t, "individual", payload["ownership"])
	assert.Equal(t, "2026-03-20", payload["expired_on"])
	assert.Equal(t, float64(entities.AdStatusPending), payload["status"])
	assert.Nil(t, payload["brand_id"])

	images, ok := payload["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)
	assert.Equal(t, "https://cdn.tokotitoh.co.id/foto.jpg", images[0])
	assert.Equal(t, "https://cdn.tokotitoh.co.id/lama.jpg", images[1])
}

func TestAdWizard_UnsetOptionalFieldsSerializeAsNull(t *testing.T) {
	var posted []byte
	backend := newTestBackend(t)
	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ads" {
			posted, _ = io.ReadAll(r.Body)
		}
		w.Write([]byte(`{}`))
	})

	w := NewAdWizard(backend.client(), testLogger())
	draft := w.Draft()
	draft.Title = "Judul"
	draft.Price = "1000"
	draft.Transmission = "Manual"
	draft.BrandID = 7
	draft.BrandName = "Toyota"
	// type, fuel, year, condition left unset
	draft.ProvinceID = "31"
	draft.CityID = "3171"
	draft.DistrictID = "317101"
	require.NoError(t, w.AddImage("https://cdn.tokotitoh.co.id/a.jpg"))

	require.NoError(t, w.Submit(context.Background()))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(posted, &payload))

	// unset optionals are present as explicit nulls, not omitted
	for _, key := range []string{"type_id", "type_name", "fuel_type", "year", "condition", "km", "wa"} {
		require.Contains(t, payload, key)
		assert.Nil(t, payload[key], key)
	}
	assert.Equal(t, float64(7), payload["brand_id"])
	assert.Equal(t, "Toyota", payload["brand_name"])
	assert.Equal(t, "Manual", payload["transmission"])
}

func TestAdWizard_FailedUploadKeepsLocalReference(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "foto.jpg")
	require.NoError(t, os.WriteFile(imgPath, []byte("jpeg-bytes"), 0o600))

	var posted []byte
	backend := newTestBackend(t)
	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/file-upload":
			w.WriteHeader(http.StatusInternalServerError)
		case "/ads":
			posted, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{}`))
		}
	})

	w := NewAdWizard(backend.client(), testLogger())
	draft := w.Draft()
	draft.Title = "Judul"
	draft.Price = "1000"
	draft.ProvinceID = "31"
	draft.CityID = "3171"
	draft.DistrictID = "317101"
	require.NoError(t, w.AddImage("file://"+imgPath))

	require.NoError(t, w.Submit(context.Background()))

	var payload struct {
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(posted, &payload))
	require.Len(t, payload.Images, 1)
	assert.Equal(t, "file://"+imgPath, payload.Images[0])
}

func TestAdWizard_EditFlowPatchesExistingAd(t *testing.T) {
	var method string
	var posted []byte
	backend := newTestBackend(t)
	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ads" {
			method = r.Method
			posted, _ = io.ReadAll(r.Body)
		}
		w.Write([]byte(`{}`))
	})

	ad := &entities.Ad{
		ID:           123,
		Title:        "Avanza 2019",
		Price:        150000000,
		Description:  "Mulus",
		WA:           "0812",
		CategoryID:   1,
		CategoryName: "Mobil",
		ProvinceID:   "31",
		CityID:       "3171",
		DistrictID:   "317101",
		Images:       `["https://cdn.tokotitoh.co.id/a.jpg"]`,
	}

	w := NewAdWizard(backend.client(), testLogger())
	w.StartEdit(ad)

	assert.Equal(t, StepImages, w.CurrentStep())
	assert.ElementsMatch(t, []int{1, 2, 3}, w.CompletedSteps())
	assert.Equal(t, []string{"https://cdn.tokotitoh.co.id/a.jpg"}, w.Images())

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, http.MethodPatch, method)

	var payload struct {
		ID    int64 `json:"id"`
		Price int64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(posted, &payload))
	assert.Equal(t, int64(123), payload.ID)
	assert.Equal(t, int64(150000000), payload.Price)
}

func TestAdWizard_SubmitReturnsBackendError(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"iklan ditolak"}`))
	})

	w := NewAdWizard(backend.client(), testLogger())
	draft := w.Draft()
	draft.Title = "Judul"
	draft.Price = "1000"
	draft.ProvinceID = "31"
	draft.CityID = "3171"
	draft.DistrictID = "317101"
	require.NoError(t, w.AddImage("https://cdn.tokotitoh.co.id/a.jpg"))

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Contains(t, err.Error(), "iklan ditolak")
	assert.False(t, w.Submitting())
}
