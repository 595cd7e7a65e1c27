package header

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// banner precedes the include guard. Several lines carry trailing spaces;
// they are kept so regenerated headers diff cleanly against existing ones.
var banner = strings.Join([]string{
	"//",
	"// This Source Code Form is subject to the terms of the Mozilla Public",
	"// License, v. 2.0. If a copy of the MPL was not distributed with this",
	"// file, You can obtain one at http://mozilla.org/MPL/2.0/.",
	"//",
	"//  Copyright 2024 (c) Aleksander Rozhkov <aleksprog@hotmail.com>",
	"//  ",
	"",
	"//********************************************",
	"//* Auto Generation - Do Not Manually Change *",
	"//********************************************",
	"",
}, "\n") + "\n"

const (
	mapType = "const std::map<std::uint32_t, std::string>"

	dataTypeTable      = "data_type_aliases"
	referenceTypeTable = "reference_type_aliases"

	dataTypeBrief      = "Associative container with aliased data types  "
	referenceTypeBrief = "Associative container with alias types of references  "
)

// Render writes the header for a to w.
func Render(w io.Writer, a *Artifact) error {
	_, err := w.Write(Bytes(a))
	return err
}

// Bytes returns the rendered header. Output depends only on a.
func Bytes(a *Artifact) []byte {
	var buf bytes.Buffer
	guard := a.Naming.Guard + "_H"

	buf.WriteString(banner)
	fmt.Fprintf(&buf, "#ifndef %s\n", guard)
	fmt.Fprintf(&buf, "#define %s\n\n", guard)
	buf.WriteString("#include <map>\n")
	buf.WriteString("#include <string>\n\n")
	fmt.Fprintf(&buf, "namespace %s\n{\n", a.Naming.Namespace)

	writeTable(&buf, dataTypeBrief, dataTypeTable, a.DataTypes)
	buf.WriteString("\n")
	writeTable(&buf, referenceTypeBrief, referenceTypeTable, a.ReferenceTypes)

	fmt.Fprintf(&buf, "} // namespace %s\n", a.Naming.Namespace)
	fmt.Fprintf(&buf, "#endif // %s\n", guard)

	return buf.Bytes()
}

func writeTable(buf *bytes.Buffer, brief, name string, entries []Entry) {
	buf.WriteString("/**\n")
	fmt.Fprintf(buf, " * @brief %s\n", brief)
	buf.WriteString(" */\n")
	fmt.Fprintf(buf, "%s %s{\n", mapType, name)
	for _, e := range entries {
		fmt.Fprintf(buf, "\t{%s, \"%s\"}, // %s\n", e.NodeID, escapeString(e.Alias), e.TypeOfData)
	}
	buf.WriteString("};\n")
}

// escapeString escapes characters that would end a C string literal early.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
