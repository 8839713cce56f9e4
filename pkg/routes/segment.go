package routes

import "strings"

// SegmentKind is the shape of a path segment.
type SegmentKind int

const (
	// SegmentLiteral is a static path segment (e.g., "users")
	SegmentLiteral SegmentKind = iota
	// SegmentIndex is an "index" segment, which adds nothing to the URL
	SegmentIndex
	// SegmentGroup is a route group that doesn't affect the URL (e.g., (admin))
	SegmentGroup
	// SegmentRequired is a dynamic parameter (e.g., [id])
	SegmentRequired
	// SegmentOptional is an optional dynamic parameter (e.g., [[id]])
	SegmentOptional
	// SegmentCatchAll is a catch-all parameter (e.g., [...slug])
	SegmentCatchAll
	// SegmentOptionalCatchAll is an optional catch-all (e.g., [[...slug]])
	SegmentOptionalCatchAll
)

var segmentKindNames = map[SegmentKind]string{
	SegmentLiteral:  "literal",
	SegmentIndex:    "index",
	SegmentGroup:    "group",
	SegmentRequired: "required",
	SegmentOptional: "optional",
	SegmentCatchAll: "catch-all",

	SegmentOptionalCatchAll: "optional catch-all",
}

func (k SegmentKind) String() string {
	if name, ok := segmentKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Segment is a parsed path segment.
type Segment struct {
	// Raw is the segment as written on disk (e.g., "[id]", "(admin)")
	Raw string
	// Name is the extracted name (e.g., "id" from "[id]")
	Name string
	// Kind is the segment shape
	Kind SegmentKind
}

// ParseSegment classifies a single path segment.
//
// Bracket shapes are only recognized when they wrap the whole segment, so
// "a[b]" stays literal.
func ParseSegment(raw string) Segment {
	seg := Segment{Raw: raw, Name: raw, Kind: SegmentLiteral}

	switch {
	case raw == "index":
		seg.Kind = SegmentIndex
		seg.Name = ""
	case isWrapped(raw, "[[...", "]]") && len(raw) > 7:
		seg.Kind = SegmentOptionalCatchAll
		seg.Name = raw[5 : len(raw)-2]
	case isWrapped(raw, "[[", "]]") && len(raw) > 4:
		seg.Kind = SegmentOptional
		seg.Name = raw[2 : len(raw)-2]
	case isWrapped(raw, "[...", "]") && len(raw) > 5:
		seg.Kind = SegmentCatchAll
		seg.Name = raw[4 : len(raw)-1]
	case isWrapped(raw, "[", "]") && len(raw) > 2:
		seg.Kind = SegmentRequired
		seg.Name = raw[1 : len(raw)-1]
	case isWrapped(raw, "(", ")") && len(raw) > 2:
		seg.Kind = SegmentGroup
		seg.Name = raw[1 : len(raw)-1]
	}

	return seg
}

func isWrapped(s, open, close string) bool {
	return strings.HasPrefix(s, open) && strings.HasSuffix(s, close)
}

// PatternPart returns the segment as it appears in a URL pattern. Groups and
// index segments return "".
func (s Segment) PatternPart() string {
	switch s.Kind {
	case SegmentGroup, SegmentIndex:
		return ""
	case SegmentRequired:
		return ":" + s.Name
	case SegmentOptional:
		return ":" + s.Name + "?"
	case SegmentCatchAll, SegmentOptionalCatchAll:
		// catch-alls already match an empty remainder
		return "*" + s.Name
	default:
		return s.Raw
	}
}

// IsParam reports whether the segment captures a URL component.
func (s Segment) IsParam() bool {
	switch s.Kind {
	case SegmentRequired, SegmentOptional, SegmentCatchAll, SegmentOptionalCatchAll:
		return true
	}
	return false
}

// ParseSegments splits a "/" separated path and parses every non-empty part.
func ParseSegments(path string) []Segment {
	parts := strings.Split(path, "/")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, ParseSegment(part))
	}
	return segments
}
