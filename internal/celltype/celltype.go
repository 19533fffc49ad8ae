// Package celltype implements the cell-type lattice described in spec.md §4.1:
// int < numeric, float < numeric, currency < float, percentage < float, and a
// disjoint string leaf. It detects a single cell's type from raw text and
// computes lowest-common-ancestors across the lattice.
package celltype

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Type is a node in the small cell-type lattice.
type Type int

const (
	// Unknown is never assigned to a parsed cell; it is the zero value used
	// as a sentinel for "no type" contexts (e.g. an empty domain fold).
	Unknown Type = iota
	String
	Numeric
	Int
	Float
	Currency
	Percentage
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Numeric:
		return "numeric"
	case Int:
		return "int"
	case Float:
		return "float"
	case Currency:
		return "currency"
	case Percentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// parent maps each node to its immediate ancestor in the lattice. The root
// (Numeric and String are themselves roots with no shared ancestor besides
// Unknown) has no parent.
var parent = map[Type]Type{
	Int:        Numeric,
	Float:      Numeric,
	Currency:   Float,
	Percentage: Float,
}

// depth is the distance from each node to the lattice root. LCA does not
// use it; it compares ancestor sets instead.
func depth(t Type) int {
	d := 0
	for {
		p, ok := parent[t]
		if !ok {
			return d
		}
		d++
		t = p
	}
}

// ancestors returns t and all of its ancestors, root last.
func ancestors(t Type) []Type {
	path := []Type{t}
	for {
		p, ok := parent[t]
		if !ok {
			return path
		}
		path = append(path, p)
		t = p
	}
}

// LCA returns the lowest common ancestor of a and b by walking both paths to
// the root and returning the deepest node present in both. Unknown combined
// with anything yields Unknown (no information).
func LCA(a, b Type) Type {
	if a == Unknown || b == Unknown {
		return Unknown
	}
	if a == b {
		return a
	}
	pathA := ancestors(a)
	pathB := ancestors(b)
	inB := make(map[Type]bool, len(pathB))
	for _, t := range pathB {
		inB[t] = true
	}
	for _, t := range pathA {
		if inB[t] {
			return t
		}
	}
	return Unknown
}

// Max folds LCA across a list of types; an empty list returns Unknown.
func Max(types []Type) Type {
	if len(types) == 0 {
		return Unknown
	}
	acc := types[0]
	for _, t := range types[1:] {
		acc = LCA(acc, t)
	}
	return acc
}

// LessEq reports whether t lies at or below bound in the lattice, i.e.
// whether a block of dominant type t is admissible where bound is required.
func LessEq(t, bound Type) bool {
	if bound == Unknown {
		return t == Unknown
	}
	for _, a := range ancestors(t) {
		if a == bound {
			return true
		}
	}
	return false
}

// AdmitsAny reports whether t lies at or below any of the given bounds.
func AdmitsAny(t Type, bounds []Type) bool {
	for _, b := range bounds {
		if LessEq(t, b) {
			return true
		}
	}
	return false
}

var (
	intRe     = regexp.MustCompile(`^[+-]?\d+$`)
	currencyRe = regexp.MustCompile(`^[+-]?[$€£¥]\s?\d[\d,]*(\.\d+)?$|^[+-]?\d[\d,]*(\.\d+)?\s?[$€£¥]$`)
	percentRe = regexp.MustCompile(`^[+-]?\d[\d,]*(\.\d+)?\s?%$`)
)

// Detect classifies a single raw cell string by trying, in order: integer
// cast, percentage/currency pattern, float cast (with thousands-separator
// stripping), else string. Blank cells are reported as Unknown; callers
// decide blank handling via Blank/IsBlank.
func Detect(raw string) Type {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown
	}
	if intRe.MatchString(s) {
		return Int
	}
	if percentRe.MatchString(s) {
		return Percentage
	}
	if currencyRe.MatchString(s) {
		return Currency
	}
	stripped := strings.ReplaceAll(s, ",", "")
	if _, err := strconv.ParseFloat(stripped, 64); err == nil {
		return Float
	}
	return String
}

// Blank returns the sentinel "empty" value for a type: NaN for anything
// under Numeric, empty string otherwise.
func Blank(t Type) any {
	if LessEq(t, Numeric) {
		return math.NaN()
	}
	return ""
}

// IsBlank tests whether value is the blank sentinel for t.
func IsBlank(t Type, value any) bool {
	if LessEq(t, Numeric) {
		f, ok := value.(float64)
		return ok && math.IsNaN(f)
	}
	s, ok := value.(string)
	return ok && s == ""
}

// ParseNumeric parses raw text into a float64 the way Detect's float branch
// does (comma stripping, percent-to-fraction, currency-symbol stripping). It
// returns (NaN, false) for blank or unparsable input, never an error: numeric
// parsing is a validator-internal concern per spec.md §7, not a fatal path.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), false
	}
	switch Detect(s) {
	case Int, Float:
		stripped := strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	case Percentage:
		stripped := strings.TrimSpace(strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%"))
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f / 100.0, true
	case Currency:
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '$', '€', '£', '¥', ',':
				return -1
			default:
				return r
			}
		}, s)
		f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return math.NaN(), false
	}
}
