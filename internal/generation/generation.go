// Package generation maps birth years to named generational cohorts.
package generation

import (
	"fmt"

	"github.com/tartampluch/go-lifespan/internal/calendar"
)

// Generation is a named, closed interval of birth years.
type Generation struct {
	Name            string   `json:"name"`
	StartYear       int      `json:"start_year"`
	EndYear         int      `json:"end_year"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	DefiningEvents  []string `json:"defining_events"`
}

// Contains reports whether year lies in [StartYear, EndYear].
func (g Generation) Contains(year int) bool {
	return year >= g.StartYear && year <= g.EndYear
}

// table is ordered and contiguous: each StartYear is the previous EndYear + 1.
var table = [...]Generation{
	{
		Name:            "Silent Generation",
		StartYear:       1928,
		EndYear:         1945,
		Description:     "Raised through the Great Depression and the Second World War.",
		Characteristics: []string{"disciplined", "loyal", "thrifty", "respectful of authority"},
		DefiningEvents:  []string{"Great Depression", "Second World War"},
	},
	{
		Name:            "Baby Boomers",
		StartYear:       1946,
		EndYear:         1964,
		Description:     "Born during the post-war birth surge and economic expansion.",
		Characteristics: []string{"optimistic", "competitive", "work-centric", "goal-oriented"},
		DefiningEvents:  []string{"Post-war boom", "Space race", "Civil rights movement"},
	},
	{
		Name:            "Generation X",
		StartYear:       1965,
		EndYear:         1980,
		Description:     "Came of age with personal computers and a changing family structure.",
		Characteristics: []string{"independent", "resourceful", "skeptical", "adaptable"},
		DefiningEvents:  []string{"End of the Cold War", "Rise of personal computing"},
	},
	{
		Name:            "Millennials",
		StartYear:       1981,
		EndYear:         1996,
		Description:     "Grew up alongside the internet and entered adulthood around the millennium.",
		Characteristics: []string{"tech-savvy", "collaborative", "purpose-driven", "flexible"},
		DefiningEvents:  []string{"Rise of the internet", "2008 financial crisis"},
	},
	{
		Name:            "Generation Z",
		StartYear:       1997,
		EndYear:         2012,
		Description:     "Digital natives raised with smartphones and social media.",
		Characteristics: []string{"digital native", "pragmatic", "entrepreneurial", "socially aware"},
		DefiningEvents:  []string{"Smartphones", "Social media", "COVID-19 pandemic"},
	},
	{
		Name:            "Generation Alpha",
		StartYear:       2013,
		EndYear:         2025,
		Description:     "Born entirely in the 21st century into a world of ubiquitous connected devices.",
		Characteristics: []string{"screen-native", "visual learners", "globally connected"},
		DefiningEvents:  []string{"Voice assistants", "COVID-19 pandemic", "Generative AI"},
	},
}

// Of returns the generation whose interval contains year.
// Years outside the table fail with ErrOutOfRange.
func Of(year int) (Generation, error) {
	first, last := Range()
	if year < first || year > last {
		return Generation{}, fmt.Errorf("%w: generation for year %d (supported %d-%d)", calendar.ErrOutOfRange, year, first, last)
	}
	for _, g := range table {
		if g.Contains(year) {
			return clone(g), nil
		}
	}
	return Generation{}, fmt.Errorf("%w: generation for year %d", calendar.ErrUnclassified, year)
}

// Range returns the first and last supported birth years.
func Range() (first, last int) {
	return table[0].StartYear, table[len(table)-1].EndYear
}

// All returns copies of every generation in chronological order.
func All() []Generation {
	out := make([]Generation, 0, len(table))
	for _, g := range table {
		out = append(out, clone(g))
	}
	return out
}

func clone(g Generation) Generation {
	g.Characteristics = append([]string(nil), g.Characteristics...)
	g.DefiningEvents = append([]string(nil), g.DefiningEvents...)
	return g
}
