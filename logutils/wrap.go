package logutils

// WrapLine splits s into lines of at most maxLen runes. Lines after the
// first start with prefix, which counts toward their length. maxLines
// caps the number of lines returned; zero or less means no cap.
func WrapLine(s string, maxLines, maxLen int, prefix string) []string {
	r := []rune(s)
	if len(r) <= maxLen {
		return []string{s}
	}

	lines := []string{string(r[:maxLen])}
	step := max(maxLen-len([]rune(prefix)), 1)
	for i := maxLen; i < len(r); i += step {
		if maxLines > 0 && len(lines) >= maxLines {
			break
		}
		lines = append(lines, prefix+string(r[i:min(i+step, len(r))]))
	}
	return lines
}
