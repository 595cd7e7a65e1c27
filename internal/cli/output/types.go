package output

// PreviewEntry is one row of the diagnostic preview.
type PreviewEntry struct {
	Alias      string `json:"alias" yaml:"alias"`
	NodeID     string `json:"node_id" yaml:"node_id"`
	TypeOfData string `json:"type_of_data" yaml:"type_of_data"`
	Line       int    `json:"line" yaml:"line"`
}

// PreviewSummary counts the parsed records by category.
type PreviewSummary struct {
	Records        int `json:"records" yaml:"records"`
	DataTypes      int `json:"data_types" yaml:"data_types"`
	ReferenceTypes int `json:"reference_types" yaml:"reference_types"`
	Other          int `json:"other" yaml:"other"`
}

// PreviewOutput is the structured form of the preview command.
type PreviewOutput struct {
	Source  string         `json:"source" yaml:"source"`
	Entries []PreviewEntry `json:"entries" yaml:"entries"`
	Summary PreviewSummary `json:"summary" yaml:"summary"`
}

// HeaderInfo describes a rendered header file.
type HeaderInfo struct {
	Path      string `json:"path" yaml:"path"`
	Guard     string `json:"guard" yaml:"guard"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Bytes     int    `json:"bytes" yaml:"bytes"`
	Changed   bool   `json:"changed" yaml:"changed"`
}

// GenerateOutput is the structured form of the generate command.
type GenerateOutput struct {
	Source  string         `json:"source" yaml:"source"`
	Header  HeaderInfo     `json:"header" yaml:"header"`
	Entries []PreviewEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
	Summary PreviewSummary `json:"summary" yaml:"summary"`
}

// CheckOutput is the structured form of the check command.
type CheckOutput struct {
	Source   string `json:"source" yaml:"source"`
	Header   string `json:"header" yaml:"header"`
	UpToDate bool   `json:"up_to_date" yaml:"up_to_date"`
}
