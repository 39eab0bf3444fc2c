package entities

// Category is a top-level ad category (Mobil, Motor, Properti, ...)
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Subcategory belongs to exactly one category
type Subcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// Brand is a vehicle brand scoped to a category
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VehicleType is a model/type scoped to a brand
type VehicleType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
