package mdedit

import "sort"

// RegionKind is the decoration a region carries.
type RegionKind int

const (
	CodeBlockLine   RegionKind = iota // line of a fenced code block
	CodeBlockInline                   // inline code span
	BlockquoteLine                    // line of a blockquote
	AutolinkSpan                      // bare URL or e-mail address
)

// String implements fmt.Stringer.
func (k RegionKind) String() string {
	switch k {
	case CodeBlockLine:
		return "codeblock-line"
	case CodeBlockInline:
		return "codeblock-inline"
	case BlockquoteLine:
		return "blockquote-line"
	case AutolinkSpan:
		return "autolink"
	default:
		return "unknown"
	}
}

// Class returns the presentation class for regions of this kind.
func (k RegionKind) Class() string {
	switch k {
	case CodeBlockLine, CodeBlockInline:
		return "cm-codeblock"
	case BlockquoteLine:
		return "cm-blockquote"
	case AutolinkSpan:
		return "cm-url"
	default:
		return ""
	}
}

// IsLine reports whether regions of this kind decorate a whole line.
func (k RegionKind) IsLine() bool {
	return k == CodeBlockLine || k == BlockquoteLine
}

// Region is one decoration. Line kinds have From == To and denote the line
// starting at From; span kinds cover [From, To).
type Region struct {
	From int
	To   int
	Kind RegionKind
}

// RegionSet is an immutable, ordered and deduplicated set of regions.
type RegionSet struct {
	regions []Region
}

// NewRegionSet sorts regions by From (stable, so traversal order breaks
// ties) and drops exact duplicates.
func NewRegionSet(regions []Region) RegionSet {
	if len(regions) == 0 {
		return RegionSet{}
	}
	sorted := append([]Region(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})
	out := sorted[:0]
	seen := make(map[Region]struct{}, len(sorted))
	for _, r := range sorted {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return RegionSet{regions: out}
}

// Regions returns a copy of the regions in order.
func (s RegionSet) Regions() []Region {
	return append([]Region(nil), s.regions...)
}

// Len returns the number of regions.
func (s RegionSet) Len() int { return len(s.regions) }

// Lines returns the starting offsets of lines carrying a region of kind.
func (s RegionSet) Lines(kind RegionKind) []int {
	var out []int
	for _, r := range s.regions {
		if r.Kind == kind {
			out = append(out, r.From)
		}
	}
	return out
}

// At returns the regions whose span contains offset, plus line regions
// anchored exactly at offset.
func (s RegionSet) At(offset int) []Region {
	var out []Region
	for _, r := range s.regions {
		if r.From > offset {
			break
		}
		if r.Kind.IsLine() {
			if r.From == offset {
				out = append(out, r)
			}
			continue
		}
		if offset < r.To {
			out = append(out, r)
		}
	}
	return out
}

// Map moves every region through cs. Span regions whose content is deleted
// entirely are dropped, as are line regions whose anchor was deleted.
func (s RegionSet) Map(cs ChangeSet) RegionSet {
	if cs.Empty() || len(s.regions) == 0 {
		return s
	}
	out := make([]Region, 0, len(s.regions))
	for _, r := range s.regions {
		if r.Kind.IsLine() {
			pos, ok := cs.MapPos(r.From, -1)
			if !ok {
				continue
			}
			out = append(out, Region{From: pos, To: pos, Kind: r.Kind})
			continue
		}
		from, _ := cs.MapPos(r.From, 1)
		to, _ := cs.MapPos(r.To, -1)
		if to <= from {
			continue
		}
		out = append(out, Region{From: from, To: to, Kind: r.Kind})
	}
	return NewRegionSet(out)
}
