package lint

// mapSpan converts a raw one-based, end-inclusive line/column pair into a
// zero-based Range. The end character is deliberately not decremented,
// which turns the inclusive raw end column into the exclusive end of a
// half-open range; the end line is decremented like the start line.
// Returns ok=false when either array does not hold exactly two values,
// in which case the record carries no usable position.
func mapSpan(line, column []int) (Range, bool) {
	if len(line) != 2 || len(column) != 2 {
		return Range{}, false
	}

	return Range{
		Start: Position{Line: line[0] - 1, Character: column[0] - 1},
		End:   Position{Line: line[1] - 1, Character: column[1]},
	}, true
}

// mapSpans maps a sequence of raw spans, preserving source order and
// dropping entries without usable positions
func mapSpans(spans []rawSpan) []Range {
	ranges := make([]Range, 0, len(spans))
	for _, s := range spans {
		if r, ok := mapSpan(s.Line, s.Column); ok {
			ranges = append(ranges, r)
		}
	}
	return ranges
}
