// Package nfl holds the static conference/division alignment so filters
// and standings work without upstream enrichment.
package nfl

import (
	"slices"
	"sort"
	"strings"
)

// TeamInfo is one franchise in the current alignment.
type TeamInfo struct {
	Abbr       string `json:"abbr"`
	Name       string `json:"name"`
	Conference string `json:"conference"` // AFC or NFC
	Division   string `json:"division"`   // e.g. "AFC East"
}

// Teams is the canonical 32-team alignment, in division order.
var Teams = []TeamInfo{
	{"BUF", "Buffalo Bills", "AFC", "AFC East"},
	{"MIA", "Miami Dolphins", "AFC", "AFC East"},
	{"NE", "New England Patriots", "AFC", "AFC East"},
	{"NYJ", "New York Jets", "AFC", "AFC East"},

	{"BAL", "Baltimore Ravens", "AFC", "AFC North"},
	{"CIN", "Cincinnati Bengals", "AFC", "AFC North"},
	{"CLE", "Cleveland Browns", "AFC", "AFC North"},
	{"PIT", "Pittsburgh Steelers", "AFC", "AFC North"},

	{"HOU", "Houston Texans", "AFC", "AFC South"},
	{"IND", "Indianapolis Colts", "AFC", "AFC South"},
	{"JAX", "Jacksonville Jaguars", "AFC", "AFC South"},
	{"TEN", "Tennessee Titans", "AFC", "AFC South"},

	{"DEN", "Denver Broncos", "AFC", "AFC West"},
	{"KC", "Kansas City Chiefs", "AFC", "AFC West"},
	{"LAC", "Los Angeles Chargers", "AFC", "AFC West"},
	{"LV", "Las Vegas Raiders", "AFC", "AFC West"},

	{"DAL", "Dallas Cowboys", "NFC", "NFC East"},
	{"NYG", "New York Giants", "NFC", "NFC East"},
	{"PHI", "Philadelphia Eagles", "NFC", "NFC East"},
	{"WAS", "Washington Commanders", "NFC", "NFC East"},

	{"CHI", "Chicago Bears", "NFC", "NFC North"},
	{"DET", "Detroit Lions", "NFC", "NFC North"},
	{"GB", "Green Bay Packers", "NFC", "NFC North"},
	{"MIN", "Minnesota Vikings", "NFC", "NFC North"},

	{"ATL", "Atlanta Falcons", "NFC", "NFC South"},
	{"CAR", "Carolina Panthers", "NFC", "NFC South"},
	{"NO", "New Orleans Saints", "NFC", "NFC South"},
	{"TB", "Tampa Bay Buccaneers", "NFC", "NFC South"},

	{"ARI", "Arizona Cardinals", "NFC", "NFC West"},
	{"LAR", "Los Angeles Rams", "NFC", "NFC West"},
	{"SEA", "Seattle Seahawks", "NFC", "NFC West"},
	{"SF", "San Francisco 49ers", "NFC", "NFC West"},
}

var (
	byAbbr = make(map[string]TeamInfo, len(Teams))
	byName = make(map[string]TeamInfo, len(Teams))
)

func init() {
	for _, t := range Teams {
		byAbbr[t.Abbr] = t
		byName[strings.ToLower(t.Name)] = t
	}
}

// ByAbbr looks up a team by abbreviation, ignoring case and whitespace.
func ByAbbr(abbr string) (TeamInfo, bool) {
	key := strings.ToUpper(strings.TrimSpace(abbr))
	if key == "" {
		return TeamInfo{}, false
	}
	t, ok := byAbbr[key]
	return t, ok
}

// ByName looks up a team by full name, ignoring case.
func ByName(name string) (TeamInfo, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return TeamInfo{}, false
	}
	t, ok := byName[key]
	return t, ok
}

// NameFor returns the full name for abbr, or abbr itself when unknown.
func NameFor(abbr string) string {
	if t, ok := ByAbbr(abbr); ok {
		return t.Name
	}
	return abbr
}

// Conferences lists the two conferences.
func Conferences() []string {
	return []string{"AFC", "NFC"}
}

// Divisions lists divisions sorted by name, optionally limited to one
// conference ("" means all).
func Divisions(conference string) []string {
	conf := strings.ToUpper(strings.TrimSpace(conference))
	var divs []string
	for _, t := range Teams {
		if conf != "" && t.Conference != conf {
			continue
		}
		if !slices.Contains(divs, t.Division) {
			divs = append(divs, t.Division)
		}
	}
	sort.Strings(divs)
	return divs
}

// Filter lists teams sorted by name, optionally limited by conference and
// division ("" means any).
func Filter(conference, division string) []TeamInfo {
	conf := strings.ToUpper(strings.TrimSpace(conference))
	div := strings.TrimSpace(division)

	var out []TeamInfo
	for _, t := range Teams {
		if conf != "" && t.Conference != conf {
			continue
		}
		if div != "" && t.Division != div {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
