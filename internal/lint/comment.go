package lint

import "strings"

// NormalizeComment strips comment syntax from analyzer comment text and
// re-indents multi-line comments into a plain string. It is total: empty
// input comes back unchanged, and already-normalized text is a fixed
// point, so normalizing twice is safe.
func NormalizeComment(comment string) string {
	text := strings.TrimSpace(comment)
	if text == "" {
		return text
	}

	switch {
	case strings.HasPrefix(text, "//"):
		return strings.TrimSpace(strings.TrimPrefix(text, "//"))

	case strings.HasPrefix(text, "/*"):
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")

		// Block comments commonly carry a leading * on continuation
		// lines; strip it and drop lines left empty.
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
			if line != "" {
				lines = append(lines, line)
			}
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}

	return text
}
