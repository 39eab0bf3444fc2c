package tokotitoh

// AdPayload is the body of POST /ads and PATCH /ads. Optional fields are
// pointers so that unset values serialize as explicit nulls, matching what
// the backend expects from the mobile clients.
type AdPayload struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	UserID          int64   `json:"user_id"`
	UserName        string  `json:"user_name"`
	BrandID         *int64  `json:"brand_id"`
	BrandName       *string `json:"brand_name"`
	TypeID          *int64  `json:"type_id"`
	TypeName        *string `json:"type_name"`
	CategoryID      int64   `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	SubcategoryID   int64   `json:"subcategory_id"`
	SubcategoryName string  `json:"subcategory_name"`
	Price           int64   `json:"price"`
	Description     string  `json:"description"`
	ProvinceID      string  `json:"province_id"`
	ProvinceName    string  `json:"province_name"`
	CityID          string  `json:"city_id"`
	CityName        string  `json:"city_name"`
	DistrictID      string  `json:"district_id"`
	DistrictName    string  `json:"district_name"`
	KM              *int64  `json:"km"`
	Images          []string `json:"images"`
	Transmission    *string `json:"transmission"`
	Year            *string `json:"year"`
	PlatNo          *string `json:"plat_no"`
	Color           *string `json:"color"`
	Ownership       string  `json:"ownership"`
	FuelType        *string `json:"fuel_type"`
	Condition       *string `json:"condition"`
	LandArea        *string `json:"land_area"`
	BuildingArea    *string `json:"building_area"`
	Area            *string `json:"area"`
	Certificates    *string `json:"certificates"`
	WA              *string `json:"wa"`
	ExpiredOn       string  `json:"expired_on"`
	Status          int     `json:"status"`
}
