package io

import (
	"fmt"
	"strings"
)

// FormatHex renders bytecode as upper-case hex. A positive group inserts a
// space every group bytes.
func FormatHex(data []byte, group int) string {
	var sb strings.Builder
	for n, b := range data {
		if group > 0 && n > 0 && n%group == 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// GO_LINE_BYTES is the number of bytes per line of FormatGo.
const GO_LINE_BYTES = 12

// FormatGo renders bytecode as a Go byte slice literal.
func FormatGo(data []byte) string {
	if len(data) == 0 {
		return "[]byte{}"
	}

	var sb strings.Builder
	sb.WriteString("[]byte{\n")
	for n := 0; n < len(data); n += GO_LINE_BYTES {
		line := data[n:min(n+GO_LINE_BYTES, len(data))]
		sb.WriteString("\t")
		for i, b := range line {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "0x%02x,", b)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}
