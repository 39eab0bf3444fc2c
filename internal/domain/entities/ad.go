package entities

import (
	"encoding/json"
	"strings"
)

// Ad statuses as used by the backend and the my-ads tabs
const (
	AdStatusPending  = 0
	AdStatusActive   = 1
	AdStatusInactive = 2
	AdStatusRejected = 3
)

// Ad represents a marketplace listing. The same shape is returned by the
// listing endpoint (summary rows) and the single-ad endpoint (full detail);
// fields absent from a summary row are simply zero.
type Ad struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Price           int64  `json:"price"`
	Description     string `json:"description"`
	UserID          int64  `json:"user_id"`
	UserName        string `json:"user_name"`
	CategoryID      int64  `json:"category_id"`
	CategoryName    string `json:"category_name"`
	SubcategoryID   int64  `json:"subcategory_id"`
	SubcategoryName string `json:"subcategory_name"`
	BrandID         int64  `json:"brand_id"`
	BrandName       string `json:"brand_name"`
	TypeID          int64  `json:"type_id"`
	TypeName        string `json:"type_name"`
	ProvinceID      string `json:"province_id"`
	ProvinceName    string `json:"province_name"`
	CityID          string `json:"city_id"`
	CityName        string `json:"city_name"`
	DistrictID      string `json:"district_id"`
	DistrictName    string `json:"district_name"`
	KM              int64  `json:"km"`
	Transmission    string `json:"transmission"`
	FuelType        string `json:"fuel_type"`
	Year            string `json:"year"`
	Color           string `json:"color"`
	Ownership       string `json:"ownership"`
	Condition       string `json:"condition"`
	PlatNo          string `json:"plat_no"`
	LandArea        string `json:"land_area"`
	BuildingArea    string `json:"building_area"`
	Area            string `json:"area"`
	Certificates    string `json:"certificates"`
	WA              string `json:"wa"`
	Status          int    `json:"status"`
	CreatedOn       string `json:"created_on"`
	ExpiredOn       string `json:"expired_on"`

	// Images is the raw value as stored by the backend: usually a JSON
	// array of URLs encoded as a string, occasionally a bare URL.
	Images string `json:"images"`
}

// ImageURLs parses the raw Images value defensively. A well-formed value
// is a JSON array of URL strings; a bare URL string is accepted as a
// single-image list; anything else yields an empty slice.
func (a *Ad) ImageURLs() []string {
	raw := strings.TrimSpace(a.Images)
	if raw == "" {
		return nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err == nil {
		out := urls[:0]
		for _, u := range urls {
			if strings.TrimSpace(u) != "" {
				out = append(out, u)
			}
		}
		return out
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "file://") || strings.HasPrefix(raw, "content://") {
		return []string{raw}
	}

	return nil
}

// FirstImageURL returns the cover image, or empty when none parse.
func (a *Ad) FirstImageURL() string {
	if urls := a.ImageURLs(); len(urls) > 0 {
		return urls[0]
	}
	return ""
}
