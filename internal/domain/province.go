package domain

// AllProvinces is the selection wildcard offered first in the province picker.
const AllProvinces = "Semua Provinsi"

// Boundary source spelling -> record spelling.
var provinceCorrections = map[string]string{
	"DI. ACEH":                   "ACEH",
	"DAERAH ISTIMEWA YOGYAKARTA": "DI YOGYAKARTA",
	"BANGKA BELITUNG":            "KEP. BANGKA BELITUNG",
	"NUSATENGGARA BARAT":         "NUSA TENGGARA BARAT",
	"NUSA TENGGARA TIMUR":        "NUSA TENGGARA TIMUR",
	"PAPUA BARAT":                "PAPUA BARAT",
}

// CanonicalProvince maps a boundary province name onto the name used by records.
// Names outside the correction table pass through untouched.
func CanonicalProvince(name string) string {
	if corrected, ok := provinceCorrections[name]; ok {
		return corrected
	}
	return name
}

func ProvinceCorrections() map[string]string {
	out := make(map[string]string, len(provinceCorrections))
	for k, v := range provinceCorrections {
		out[k] = v
	}
	return out
}

// IsAllProvinces reports whether a selection contains the wildcard.
func IsAllProvinces(selection []string) bool {
	for _, p := range selection {
		if p == AllProvinces {
			return true
		}
	}
	return false
}
