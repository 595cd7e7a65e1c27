package nodeids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() RecordSet {
	return RecordSet{
		{Alias: "Boolean", NodeID: "1", TypeOfData: "DataType", Category: DataType, Line: 1},
		{Alias: "References", NodeID: "31", TypeOfData: "ReferenceType", Category: ReferenceType, Line: 2},
		{Alias: "SomeFolder", NodeID: "61", TypeOfData: "Object", Category: Other, Line: 3},
		{Alias: "Byte", NodeID: "3", TypeOfData: "DataType", Category: DataType, Line: 4},
		{Alias: "HasComponent", NodeID: "47", TypeOfData: "ReferenceType", Category: ReferenceType, Line: 5},
	}
}

func aliases(rs RecordSet) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Alias)
	}
	return out
}

func TestRecordSet_Projections(t *testing.T) {
	rs := sampleRecords()
	before := append(RecordSet(nil), rs...)

	assert.Equal(t, []string{"Boolean", "Byte"}, aliases(rs.DataTypes()))
	assert.Equal(t, []string{"References", "HasComponent"}, aliases(rs.ReferenceTypes()))
	assert.Equal(t, []string{"Boolean", "References", "Byte", "HasComponent"}, aliases(rs.Preview()))
	assert.Equal(t, []string{"SomeFolder"}, aliases(rs.Filter(Other)))

	// Views never alter the source set.
	assert.Equal(t, before, rs)
}

func TestRecordSet_PartitionCoversTabledRecords(t *testing.T) {
	rs := sampleRecords()

	union := map[string]bool{}
	for _, r := range append(rs.DataTypes(), rs.ReferenceTypes()...) {
		union[r.NodeID+"/"+r.Alias] = true
	}

	want := map[string]bool{}
	for _, r := range rs {
		if r.Category.Tabled() {
			want[r.NodeID+"/"+r.Alias] = true
		}
	}
	assert.Equal(t, want, union)
	assert.NotContains(t, union, "61/SomeFolder")
}

func TestRecordSet_Count(t *testing.T) {
	c := sampleRecords().Count()
	assert.Equal(t, Counts{Total: 5, DataTypes: 2, ReferenceTypes: 2, Other: 1}, c)

	assert.Equal(t, Counts{}, RecordSet(nil).Count())
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, DataType, ParseCategory("DataType"))
	assert.Equal(t, ReferenceType, ParseCategory("ReferenceType"))
	assert.Equal(t, Other, ParseCategory("Variable"))
	assert.Equal(t, Other, ParseCategory(""))
	assert.Equal(t, "DataType", DataType.String())
	assert.Equal(t, "Other", Other.String())
	assert.False(t, Other.Tabled())
}

func TestHeaderMode_Text(t *testing.T) {
	for _, name := range []string{"none", "skip", "detect"} {
		var m HeaderMode
		require.NoError(t, m.UnmarshalText([]byte(name)))
		text, err := m.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))
	}

	var m HeaderMode
	err := m.UnmarshalText([]byte("sometimes"))
	require.ErrorIs(t, err, ErrUnknownHeaderMode)

	parsed, err := ParseHeaderMode(" SKIP ")
	require.NoError(t, err)
	assert.Equal(t, HeaderSkip, parsed)
}
