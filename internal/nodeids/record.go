package nodeids

// Record is one parsed registry row.
type Record struct {
	Alias      string
	NodeID     string // verbatim text of the numeric identifier
	TypeOfData string // raw category text
	Category   Category
	Line       int // 1-based source line
}

// RecordSet is the registry in source order. It is not deduplicated.
type RecordSet []Record

// Filter returns the records of the given category in source order.
// The receiver is never modified.
func (rs RecordSet) Filter(c Category) RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// DataTypes returns the DataType projection.
func (rs RecordSet) DataTypes() RecordSet {
	return rs.Filter(DataType)
}

// ReferenceTypes returns the ReferenceType projection.
func (rs RecordSet) ReferenceTypes() RecordSet {
	return rs.Filter(ReferenceType)
}

// Preview returns the records shown in the diagnostic preview: every
// DataType and ReferenceType record, in source order.
func (rs RecordSet) Preview() RecordSet {
	out := make(RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.Category.Tabled() {
			out = append(out, r)
		}
	}
	return out
}

// Counts summarizes a record set by category.
type Counts struct {
	Total          int
	DataTypes      int
	ReferenceTypes int
	Other          int
}

// Count tallies the records by category.
func (rs RecordSet) Count() Counts {
	c := Counts{Total: len(rs)}
	for _, r := range rs {
		switch r.Category {
		case DataType:
			c.DataTypes++
		case ReferenceType:
			c.ReferenceTypes++
		default:
			c.Other++
		}
	}
	return c
}
