// Package header renders the alias lookup tables into a C++ header.
package header

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	guardPrefix     = "NODESETEXPORTER_COMMON_"
	namespacePrefix = "nodesetexporter::"
)

// Naming holds the identifiers derived from the output path.
type Naming struct {
	BaseName  string
	Guard     string // include guard token, without the trailing _H
	Namespace string
}

// DeriveNaming computes the guard and namespace for outputPath. The base
// name is the last path element up to its first dot, so "a.gen.h" yields "a".
func DeriveNaming(outputPath string) Naming {
	base := filepath.Base(outputPath)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}

	upper := cases.Upper(language.Und).String(base)
	lower := cases.Lower(language.Und).String(base)

	return Naming{
		BaseName:  base,
		Guard:     guardPrefix + upper,
		Namespace: namespacePrefix + strings.ReplaceAll(lower, "_", ""),
	}
}
