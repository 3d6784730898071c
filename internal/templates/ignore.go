package templates

import "strings"

// AppendIgnoreEntries returns content with each entry appended on its own
// line. Entries already present (ignoring surrounding whitespace) and blank
// entries are skipped. A missing final newline is added before appending.
func AppendIgnoreEntries(content []byte, entries ...string) []byte {
	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	out := append([]byte(nil), content...)
	for _, e := range entries {
		line := strings.TrimSpace(e)
		if line == "" || present[line] {
			continue
		}
		present[line] = true
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}
