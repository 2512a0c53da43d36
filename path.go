package skema

import "strconv"

// Path renders a human-readable location: "$" for root, ".field" for record
// field access, "[index]" for array items, ".{key:<k>}" for dictionary keys
// being validated against keyType.
type Path string

// RootPath is the path at the start of validation.
const RootPath Path = "$"

// Field derives a child path for a record field access.
func (p Path) Field(name string) Path {
	return Path(string(p) + "." + name)
}

// Index derives a child path for an array item access.
func (p Path) Index(i int) Path {
	return Path(string(p) + "[" + strconv.Itoa(i) + "]")
}

// DictKey derives the path used while validating a dictionary key against
// its keyType.
func (p Path) DictKey(key string) Path {
	return Path(string(p) + ".{key:" + key + "}")
}

// String returns the rendered path.
func (p Path) String() string {
	return string(p)
}
