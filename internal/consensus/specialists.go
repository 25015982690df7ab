package consensus

import (
	"regexp"
	"strings"
)

// Specialist sections are free text delimited by "Expert ...:" headers; the
// name is whatever follows on the header line.
var expertHeader = regexp.MustCompile(`Expert[^:\n]*:[ \t]*`)

type specialistSection struct {
	Name string
	Text string
}

// splitSpecialists slices the opinions text into per-specialist sections in
// document order.
func splitSpecialists(opinions string) []specialistSection {
	locs := expertHeader.FindAllStringIndex(opinions, -1)
	sections := make([]specialistSection, 0, len(locs))
	for i, loc := range locs {
		start := loc[1]
		end := len(opinions)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		text := strings.TrimSpace(opinions[start:end])
		if text == "" {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
		sections = append(sections, specialistSection{Name: name, Text: text})
	}
	return sections
}

// containsName reports whether the feedback slice names the specialist
// verbatim.
func containsName(feedback, name string) bool {
	return strings.Contains(feedback, name)
}

func joinSections(sections []string) string {
	return strings.Join(sections, "\n\n")
}
