package services

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
	apperrors "github.com/tokotitoh/marketplace-client/pkg/errors"
	"github.com/tokotitoh/marketplace-client/pkg/format"
)

// WizardStep indexes the five sell-wizard steps
type WizardStep int

const (
	StepCategory WizardStep = iota
	StepSubcategory
	StepImages
	StepForm
	StepLocation
)

// MaxImages is the hard cap on attached images per ad
const MaxImages = 10

// adLifetimeDays is how long a submitted ad stays listed
const adLifetimeDays = 200

// AdWizard walks a seller through category, subcategory, images, form
// fields and location, accumulating one draft and submitting it as a
// single payload on the final step. Forward navigation requires the
// current step to validate; validation failures never reach the network.
type AdWizard struct {
	client  tokotitoh.Client
	logger  zerolog.Logger
	cascade *LocationCascade
	now     func() time.Time

	// DraftID identifies this in-progress draft in logs
	DraftID string

	editID   int64
	userID   int64
	userName string

	currentStep WizardStep
	completed   map[int]bool

	draft  entities.AdDraft
	images []string

	categories    []entities.Category
	subcategories []entities.Subcategory
	brands        []entities.Brand
	types         []entities.VehicleType

	submitting bool
}

// NewAdWizard creates a wizard at the category step
func NewAdWizard(client tokotitoh.Client, logger zerolog.Logger) *AdWizard {
	l := logger.With().Str("component", "ad_wizard").Logger()
	return &AdWizard{
		client:      client,
		logger:      l,
		cascade:     NewLocationCascade(client, l),
		now:         time.Now,
		DraftID:     uuid.NewString(),
		currentStep: StepCategory,
		completed:   map[int]bool{1: true},
	}
}

// SetUser records the seller the ad will be submitted on behalf of
func (w *AdWizard) SetUser(id int64, name string) {
	w.userID = id
	w.userName = name
}

// StartEdit prefills the wizard from an existing ad and resumes at the
// images step, with the earlier steps already marked complete.
func (w *AdWizard) StartEdit(ad *entities.Ad) {
	w.editID = ad.ID
	w.draft = entities.DraftFromAd(ad)
	w.images = ad.ImageURLs()
	w.currentStep = StepImages
	w.completed = map[int]bool{1: true, 2: true, 3: true}
}

// LoadCategories fetches the category list; failures are logged and leave
// the list empty
func (w *AdWizard) LoadCategories(ctx context.Context) {
	categories, err := w.client.Categories(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to fetch categories")
		return
	}
	w.categories = categories
}

// SelectCategory records the category, advances to the subcategory step
// and prefetches the subcategory and brand lists
func (w *AdWizard) SelectCategory(ctx context.Context, category entities.Category) {
	w.draft.CategoryID = category.ID
	w.draft.CategoryName = category.Name
	w.completed[2] = true
	w.currentStep = StepSubcategory

	if subcategories, err := w.client.Subcategories(ctx, category.ID); err != nil {
		w.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to fetch subcategories")
	} else {
		w.subcategories = subcategories
	}
	if brands, err := w.client.Brands(ctx, category.ID); err != nil {
		w.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to fetch brands")
	} else {
		w.brands = brands
	}
}

// SelectSubcategory records the subcategory and advances to the images step
func (w *AdWizard) SelectSubcategory(subcategory entities.Subcategory) {
	w.draft.SubcategoryID = subcategory.ID
	w.draft.SubcategoryName = subcategory.Name
	w.completed[3] = true
	w.currentStep = StepImages
}

// SelectBrand records the brand and prefetches its types
func (w *AdWizard) SelectBrand(ctx context.Context, brand entities.Brand) {
	w.draft.BrandID = brand.ID
	w.draft.BrandName = brand.Name
	w.draft.TypeID = 0
	w.draft.TypeName = ""

	if types, err := w.client.Types(ctx, brand.ID); err != nil {
		w.logger.Error().Err(err).Int64("brand_id", brand.ID).Msg("failed to fetch types")
	} else {
		w.types = types
	}
}

// SelectType records the vehicle type
func (w *AdWizard) SelectType(t entities.VehicleType) {
	w.draft.TypeID = t.ID
	w.draft.TypeName = t.Name
}

// AddImage attaches a local image reference. Refused past the cap.
func (w *AdWizard) AddImage(uri string) error {
	if len(w.images) >= MaxImages {
		return apperrors.NewValidationError("Maksimal 10 gambar yang diperbolehkan.")
	}
	w.images = append(w.images, uri)
	return nil
}

// RemoveImage detaches the image at index i; out-of-range is a no-op
func (w *AdWizard) RemoveImage(i int) {
	if i < 0 || i >= len(w.images) {
		return
	}
	w.images = append(w.images[:i], w.images[i+1:]...)
}

// NextFromImages advances past the images step; at least one image is
// required
func (w *AdWizard) NextFromImages() error {
	if len(w.images) < 1 {
		return apperrors.NewValidationError("Harap tambahkan minimal 1 gambar!")
	}
	w.completed[4] = true
	w.currentStep = StepForm
	return nil
}

// NextFromForm validates the form fields, advances to the location step
// and prefetches the provinces
func (w *AdWizard) NextFromForm(ctx context.Context) error {
	if err := w.validateForm(); err != nil {
		return err
	}
	w.completed[5] = true
	w.currentStep = StepLocation
	w.cascade.LoadProvinces(ctx)
	return nil
}

// GoBack steps backwards, removing the completion marker of the step being
// left. Returns false when the wizard should be exited instead (already at
// the first step).
func (w *AdWizard) GoBack() bool {
	if w.currentStep == StepCategory {
		return false
	}
	delete(w.completed, int(w.currentStep)+1)
	w.currentStep--
	return true
}

// Submit uploads any locally-held images and posts the accumulated draft
// as one payload. Image uploads run concurrently and are best-effort: a
// failed upload keeps the local reference in place and does not block the
// others. Failure of the final POST/PATCH is returned to the caller.
func (w *AdWizard) Submit(ctx context.Context) error {
	w.syncLocation()
	if w.draft.ProvinceID == "" || w.draft.CityID == "" || w.draft.DistrictID == "" {
		return apperrors.NewValidationError("Harap lengkapi data lokasi!")
	}
	if len(w.images) < 1 {
		return apperrors.NewValidationError("Gambar wajib diisi!")
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	imageURLs := w.uploadLocalImages(ctx)

	payload, err := w.buildPayload(imageURLs)
	if err != nil {
		return err
	}

	if w.editID != 0 {
		payload.ID = w.editID
		if err := w.client.UpdateAd(ctx, payload); err != nil {
			w.logger.Error().Err(err).Str("draft_id", w.DraftID).Msg("ad update failed")
			return err
		}
	} else {
		if err := w.client.CreateAd(ctx, payload); err != nil {
			w.logger.Error().Err(err).Str("draft_id", w.DraftID).Msg("ad submission failed")
			return err
		}
	}

	w.logger.Info().Str("draft_id", w.DraftID).Int64("edit_id", w.editID).Msg("ad submitted")
	return nil
}

// uploadLocalImages uploads every locally-referenced image (fire all,
// await all) and returns the image list with successful uploads replaced
// in-order. Failed uploads keep the local reference.
func (w *AdWizard) uploadLocalImages(ctx context.Context) []string {
	out := make([]string, len(w.images))
	copy(out, w.images)

	var wg sync.WaitGroup
	for i, img := range out {
		if !isLocalImage(img) {
			continue
		}
		wg.Add(1)
		go func(i int, uri string) {
			defer wg.Done()
			url, err := w.uploadOne(ctx, uri)
			if err != nil {
				w.logger.Error().Err(err).Str("image", uri).Msg("image upload failed, keeping local reference")
				return
			}
			out[i] = url
		}(i, img)
	}
	wg.Wait()
	return out
}

func (w *AdWizard) uploadOne(ctx context.Context, uri string) (string, error) {
	reader, err := openLocalImage(uri)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	filename := uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		filename = uri[idx+1:]
	}
	if filename == "" {
		filename = "image.jpg"
	}
	return w.client.UploadFile(ctx, filename, reader)
}

func isLocalImage(uri string) bool {
	return strings.HasPrefix(uri, "file://") || strings.HasPrefix(uri, "content://")
}

func openLocalImage(uri string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(uri, "file://")
	return os.Open(path)
}

func (w *AdWizard) buildPayload(imageURLs []string) (tokotitoh.AdPayload, error) {
	price, err := format.ParsePrice(w.draft.Price)
	if err != nil {
		return tokotitoh.AdPayload{}, apperrors.NewValidationError("Harga tidak valid!")
	}

	expiredOn := w.now().AddDate(0, 0, adLifetimeDays).Format("2006-01-02")

	ownership := w.draft.Ownership
	if ownership == "" {
		ownership = "individual"
	}

	var km *int64
	if w.draft.KM != "" {
		if v, err := strconv.ParseInt(w.draft.KM, 10, 64); err == nil {
			km = &v
		}
	}

	return tokotitoh.AdPayload{
		Title:           w.draft.Title,
		UserID:          w.userID,
		UserName:        w.userName,
		BrandID:         optionalID(w.draft.BrandID),
		BrandName:       optionalString(w.draft.BrandName),
		TypeID:          optionalID(w.draft.TypeID),
		TypeName:        optionalString(w.draft.TypeName),
		CategoryID:      w.draft.CategoryID,
		CategoryName:    w.draft.CategoryName,
		SubcategoryID:   w.draft.SubcategoryID,
		SubcategoryName: w.draft.SubcategoryName,
		Price:           price,
		Description:     w.draft.Description,
		ProvinceID:      w.draft.ProvinceID,
		ProvinceName:    w.draft.ProvinceName,
		CityID:          w.draft.CityID,
		CityName:        w.draft.CityName,
		DistrictID:      w.draft.DistrictID,
		DistrictName:    w.draft.DistrictName,
		KM:              km,
		Images:          imageURLs,
		Transmission:    optionalString(w.draft.Transmission),
		Year:            optionalString(w.draft.Year),
		PlatNo:          optionalString(w.draft.PlatNo),
		Color:           optionalString(w.draft.Color),
		Ownership:       ownership,
		FuelType:        optionalString(w.draft.FuelType),
		Condition:       optionalString(w.draft.Condition),
		LandArea:        optionalString(w.draft.LandArea),
		BuildingArea:    optionalString(w.draft.BuildingArea),
		Area:            optionalString(w.draft.Area),
		Certificates:    optionalString(w.draft.Certificates),
		WA:              optionalString(w.draft.WA),
		ExpiredOn:       expiredOn,
		Status:          entities.AdStatusPending,
	}, nil
}

// optionalID maps an unset id to an explicit null in the payload
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// optionalString maps an empty field to an explicit null in the payload
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// syncLocation copies the cascade's selections into the draft, leaving
// prefilled edit-mode values in place when the cascade is untouched
func (w *AdWizard) syncLocation() {
	province, city, district := w.cascade.Selected()
	if province.ID != "" {
		w.draft.ProvinceID = province.ID
		w.draft.ProvinceName = province.Name
	}
	if city.ID != "" {
		w.draft.CityID = city.ID
		w.draft.CityName = city.Name
	}
	if district.ID != "" {
		w.draft.DistrictID = district.ID
		w.draft.DistrictName = district.Name
	}
}

func (w *AdWizard) validateForm() error {
	missing := w.draft.Title == "" || w.draft.Price == "" ||
		w.draft.Description == "" || w.draft.WA == ""

	if w.isVehicleCategory() {
		missing = missing || w.draft.BrandID == 0 || w.draft.TypeID == 0 ||
			w.draft.FuelType == "" || w.draft.Transmission == "" || w.draft.Year == ""
	}
	if w.isPropertyCategory() {
		missing = missing || w.draft.LandArea == "" || w.draft.BuildingArea == ""
	}
	if w.needsConditionField() {
		missing = missing || w.draft.Condition == ""
	}

	if missing {
		return apperrors.NewValidationError("Harap lengkapi semua kolom yang wajib diisi!")
	}
	return nil
}

// Category classification mirrors the category/subcategory naming the
// backend uses; there is no structured flag for it in the API.

func (w *AdWizard) isVehicleCategory() bool {
	cat := strings.ToLower(w.draft.CategoryName)
	sub := strings.ToLower(w.draft.SubcategoryName)
	return (strings.Contains(cat, "mobil") || strings.Contains(cat, "motor")) &&
		(strings.Contains(sub, "dijual") || strings.Contains(sub, "mobil") || strings.Contains(sub, "motor"))
}

func (w *AdWizard) isPropertyCategory() bool {
	return strings.Contains(strings.ToLower(w.draft.CategoryName), "properti")
}

func (w *AdWizard) needsConditionField() bool {
	cat := strings.ToLower(w.draft.CategoryName)
	sub := strings.ToLower(w.draft.SubcategoryName)
	for _, s := range []string{"sparepart", "aksesoris", "bengkel", "velg"} {
		if strings.Contains(sub, s) {
			return true
		}
	}
	for _, s := range []string{"elektronik", "hp", "hobi", "keperluan pribadi", "perlengkapan rumah"} {
		if strings.Contains(cat, s) {
			return true
		}
	}
	return false
}

// CurrentStep returns the wizard position
func (w *AdWizard) CurrentStep() WizardStep { return w.currentStep }

// CompletedSteps returns the 1-based completion markers shown by the step
// indicator
func (w *AdWizard) CompletedSteps() []int {
	out := make([]int, 0, len(w.completed))
	for s := range w.completed {
		out = append(out, s)
	}
	return out
}

// Draft exposes the mutable draft for form field input
func (w *AdWizard) Draft() *entities.AdDraft { return &w.draft }

// Images returns the attached image references in order
func (w *AdWizard) Images() []string { return w.images }

// Categories returns the fetched category options
func (w *AdWizard) Categories() []entities.Category { return w.categories }

// Subcategories returns the options for the selected category
func (w *AdWizard) Subcategories() []entities.Subcategory { return w.subcategories }

// Brands returns the brand options for the selected category
func (w *AdWizard) Brands() []entities.Brand { return w.brands }

// Types returns the type options for the selected brand
func (w *AdWizard) Types() []entities.VehicleType { return w.types }

// Location exposes the embedded location cascade for the final step
func (w *AdWizard) Location() *LocationCascade { return w.cascade }

// Submitting reports whether a submission is in flight
func (w *AdWizard) Submitting() bool { return w.submitting }
