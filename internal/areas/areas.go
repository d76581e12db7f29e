// Package areas holds the closed department taxonomy used to classify candidates.
package areas

import "strings"

// Area is one of the fixed organizational departments a candidate can fit.
type Area string

const (
	Ministerio      Area = "Ministerio"
	EmbaixadaDoAmor Area = "Embaixada do Amor"
	ValeDoSilicio   Area = "Vale do Silicio"
	TimeSquare      Area = "Time Square"
	Hogwarts        Area = "Hogwarts"
	Docencia        Area = "Docencia"
)

// MaxPerAnalysis bounds how many areas a single analysis may carry.
const MaxPerAnalysis = 3

var all = []Area{Ministerio, EmbaixadaDoAmor, ValeDoSilicio, TimeSquare, Hogwarts, Docencia}

// synonym groups are checked in order; the first group with a matching keyword wins.
var synonyms = []struct {
	area     Area
	keywords []string
}{
	{Ministerio, []string{"finance", "jur"}},
	{EmbaixadaDoAmor, []string{"pessoas", "gest"}},
	{ValeDoSilicio, []string{"tec", "inova", "dev", "ti"}},
	{TimeSquare, []string{"marketing", "capta"}},
	{Hogwarts, []string{"ensino", "academ"}},
	{Docencia, []string{"docen", "prof", "monitor"}},
}

// All returns every area in canonical order.
func All() []Area {
	return append([]Area(nil), all...)
}

// Valid reports whether a belongs to the taxonomy.
func (a Area) Valid() bool {
	for _, known := range all {
		if a == known {
			return true
		}
	}
	return false
}

// Normalize maps free text onto the taxonomy. Keyword groups take precedence over
// exact label matches, so "Time Square" itself resolves through the "ti" keyword.
func Normalize(text string) (Area, bool) {
	key := strings.ToLower(text)
	for _, group := range synonyms {
		for _, kw := range group.keywords {
			if strings.Contains(key, kw) {
				return group.area, true
			}
		}
	}
	for _, a := range all {
		if strings.ToLower(string(a)) == key {
			return a, true
		}
	}
	return "", false
}

// NormalizeAll normalizes each entry, dropping blanks, unknowns and duplicates while
// keeping first-seen order, and truncates the result to MaxPerAnalysis.
func NormalizeAll(texts []string) []Area {
	out := make([]Area, 0, MaxPerAnalysis)
	seen := make(map[Area]struct{}, MaxPerAnalysis)
	for _, raw := range texts {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		a, ok := Normalize(trimmed)
		if !ok {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
		if len(out) == MaxPerAnalysis {
			break
		}
	}
	return out
}

// EducationAreas are the areas that mark an analysis as education-aligned.
func EducationAreas() []Area {
	return []Area{Docencia, Hogwarts}
}

// IsEducationAligned reports whether the set intersects the education areas.
func IsEducationAligned(set []Area) bool {
	for _, a := range set {
		if a == Docencia || a == Hogwarts {
			return true
		}
	}
	return false
}

// Strings converts areas to their labels.
func Strings(set []Area) []string {
	out := make([]string, len(set))
	for i, a := range set {
		out[i] = string(a)
	}
	return out
}

// FromStrings converts stored labels back to areas, skipping anything unknown.
func FromStrings(labels []string) []Area {
	out := make([]Area, 0, len(labels))
	for _, l := range labels {
		if a := Area(l); a.Valid() {
			out = append(out, a)
		}
	}
	return out
}
