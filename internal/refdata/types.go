package refdata

import "encoding/json"

// Cache key namespace. The prefix keeps reference data from colliding
// with unrelated entries in a shared cache store.
const (
	countriesCacheKey    = "notewell:refdata:countries"
	frameworkCachePrefix = "notewell:refdata:framework:"
)

// Country is a reference record describing a selectable country. The
// schema is owned by the remote backend; only the fields the application
// reads are named here.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// EducationFramework describes the education system of one country. The
// level structure is kept opaque: its schema belongs to the backend and
// is passed through to consumers untouched.
type EducationFramework struct {
	CountryCode string          `json:"country_code"`
	Name        string          `json:"name"`
	Levels      json.RawMessage `json:"levels,omitempty"`
}

// IsEmpty reports whether the framework carries no usable content. The
// backend can legitimately return an empty record for countries it has
// no framework for.
func (f *EducationFramework) IsEmpty() bool {
	return f == nil || (f.Name == "" && len(f.Levels) == 0)
}

func frameworkCacheKey(countryCode string) string {
	return frameworkCachePrefix + countryCode
}
