package textarea

// Wrap exposes soft wrapping as strings and per-rune byte offsets.
func Wrap(line string, width int) ([]string, [][]int) {
	var (
		rows    []string
		offsets [][]int
	)
	for _, seg := range wrap([]rune(line), width) {
		rows = append(rows, string(seg.runes))
		offsets = append(offsets, seg.offsets)
	}
	return rows, offsets
}
