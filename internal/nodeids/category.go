// Package nodeids reads the node identifier registry (NodeIds.csv) into an
// ordered set of alias records.
//
// A registry row has three positional fields: alias, numeric node id and the
// category of the node (TypeOfData). Field names are imposed by position and
// never read from the source.
package nodeids

// Category classifies a registry record.
type Category int

const (
	// Other covers every category that is not emitted into a lookup table
	// (Object, Variable, Method, ...).
	Other Category = iota
	// DataType marks a data type node.
	DataType
	// ReferenceType marks a reference type node.
	ReferenceType
)

// Category names as they appear in the registry.
const (
	DataTypeName      = "DataType"
	ReferenceTypeName = "ReferenceType"
)

// ParseCategory maps registry text to a Category. Matching is exact and
// case-sensitive; anything unrecognized is Other.
func ParseCategory(s string) Category {
	switch s {
	case DataTypeName:
		return DataType
	case ReferenceTypeName:
		return ReferenceType
	default:
		return Other
	}
}

// String returns the registry name of the category.
func (c Category) String() string {
	switch c {
	case DataType:
		return DataTypeName
	case ReferenceType:
		return ReferenceTypeName
	default:
		return "Other"
	}
}

// Tabled reports whether records of this category end up in a lookup table.
func (c Category) Tabled() bool {
	return c == DataType || c == ReferenceType
}
