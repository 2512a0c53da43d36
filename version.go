package skema

// SupportedVersions lists the schema-language versions this engine
// implements.
var SupportedVersions = map[string]struct{}{
	"0.14.2": {},
}

// Supports reports whether version is one this engine implements.
func Supports(version string) bool {
	_, ok := SupportedVersions[version]
	return ok
}
