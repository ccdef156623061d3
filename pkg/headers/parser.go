package headers

import (
	"strings"
)

// ParseLine splits a header line on its first colon. Name and value are
// trimmed. ok is false when the line has no colon or the name is empty.
func ParseLine(line string) (name, value string, ok bool) {
	colonPos := strings.Index(line, ":")
	if colonPos == -1 {
		return "", "", false
	}

	name = strings.TrimSpace(line[:colonPos])
	value = strings.TrimSpace(line[colonPos+1:])
	if name == "" {
		return "", "", false
	}
	return name, value, true
}

// Build renders headers as "Name: Value" lines joined by lineSep.
// No separator follows the last header.
func (h *OrderedHeaders) Build(lineSep string) string {
	var b strings.Builder
	for i, e := range h.entries {
		if i > 0 {
			b.WriteString(lineSep)
		}
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(e.Value)
	}
	return b.String()
}
