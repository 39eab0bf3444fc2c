package entities

// The backend serves location ids as strings.

// Province is the root of the location cascade
type Province struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City is scoped to a province
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// District is scoped to a city; terminal level of the cascade
type District struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
