package entities

import "strconv"

// AdDraft is the in-progress ad accumulated across the sell wizard steps
// before submission. Form fields hold raw user input (price may carry
// grouping separators) until the payload is built.
type AdDraft struct {
	CategoryID      int64
	CategoryName    string
	SubcategoryID   int64
	SubcategoryName string

	Title       string
	Price       string
	Description string
	WA          string

	BrandID      int64
	BrandName    string
	TypeID       int64
	TypeName     string
	FuelType     string
	Transmission string
	Year         string
	PlatNo       string
	Color        string
	Ownership    string
	Condition    string
	KM           string

	LandArea     string
	BuildingArea string
	Area         string
	Certificates string

	ProvinceID   string
	ProvinceName string
	CityID       string
	CityName     string
	DistrictID   string
	DistrictName string
}

// DraftFromAd prefills a draft from an existing ad for the edit flow
func DraftFromAd(ad *Ad) AdDraft {
	d := AdDraft{
		CategoryID:      ad.CategoryID,
		CategoryName:    ad.CategoryName,
		SubcategoryID:   ad.SubcategoryID,
		SubcategoryName: ad.SubcategoryName,
		Title:           ad.Title,
		Price:           strconv.FormatInt(ad.Price, 10),
		Description:     ad.Description,
		WA:              ad.WA,
		BrandID:         ad.BrandID,
		BrandName:       ad.BrandName,
		TypeID:          ad.TypeID,
		TypeName:        ad.TypeName,
		FuelType:        ad.FuelType,
		Transmission:    ad.Transmission,
		Year:            ad.Year,
		PlatNo:          ad.PlatNo,
		Color:           ad.Color,
		Ownership:       ad.Ownership,
		Condition:       ad.Condition,
		LandArea:        ad.LandArea,
		BuildingArea:    ad.BuildingArea,
		Area:            ad.Area,
		Certificates:    ad.Certificates,
		ProvinceID:      ad.ProvinceID,
		ProvinceName:    ad.ProvinceName,
		CityID:          ad.CityID,
		CityName:        ad.CityName,
		DistrictID:      ad.DistrictID,
		DistrictName:    ad.DistrictName,
	}
	if ad.KM != 0 {
		d.KM = strconv.FormatInt(ad.KM, 10)
	}
	return d
}
