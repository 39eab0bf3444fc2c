package tokotitoh

import "net/url"

// Filter keys accepted by the listing endpoint
const (
	FilterBrand        = "brand_id"
	FilterType         = "type_id"
	FilterProvince     = "province_id"
	FilterCity         = "city_id"
	FilterDistrict     = "district_id"
	FilterKM           = "km"
	FilterTransmission = "transmission"
	FilterYear         = "year"
	FilterColor        = "color"
	FilterOwnership    = "ownership"
	FilterStatus       = "status"
	FilterMinPrice     = "min_price"
	FilterMaxPrice     = "max_price"
	FilterMinArea      = "min_area"
	FilterMaxArea      = "max_area"
)

// FilterSet maps filter keys to values; empty values are not sent.
// All keys are optional.
type FilterSet map[string]string

// Merge copies every non-empty entry of other into the set, returning the
// receiver for chaining. A nil receiver allocates.
func (f FilterSet) Merge(other FilterSet) FilterSet {
	if f == nil {
		f = FilterSet{}
	}
	for k, v := range other {
		f[k] = v
	}
	return f
}

// Clone returns an independent copy
func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f FilterSet) apply(q url.Values) {
	for k, v := range f {
		if v != "" {
			q.Set(k, v)
		}
	}
}
