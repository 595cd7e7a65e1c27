package header

import "github.com/nodesetexporter/aliasmap/internal/nodeids"

// Entry is one row of a lookup table.
type Entry struct {
	NodeID     string
	Alias      string
	TypeOfData string
}

// Artifact is everything the header is rendered from.
type Artifact struct {
	Naming         Naming
	DataTypes      []Entry
	ReferenceTypes []Entry
}

// Build partitions records into the two lookup tables, keeping source order.
// Records of any other category are left out.
func Build(records nodeids.RecordSet, naming Naming) *Artifact {
	return &Artifact{
		Naming:         naming,
		DataTypes:      entries(records.DataTypes()),
		ReferenceTypes: entries(records.ReferenceTypes()),
	}
}

func entries(records nodeids.RecordSet) []Entry {
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		out = append(out, Entry{NodeID: r.NodeID, Alias: r.Alias, TypeOfData: r.TypeOfData})
	}
	return out
}
