package export

import "fmt"

// Result tracks counts and errors from a sync run.
type Result struct {
	PlayersUpserted int
	TeamsUpserted   int
	CoachesUpserted int
	GamesUpserted   int
	Errors          []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.PlayersUpserted += other.PlayersUpserted
	r.TeamsUpserted += other.TeamsUpserted
	r.CoachesUpserted += other.CoachesUpserted
	r.GamesUpserted += other.GamesUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Total is the number of rows written across all tables.
func (r *Result) Total() int {
	return r.PlayersUpserted + r.TeamsUpserted + r.CoachesUpserted + r.GamesUpserted
}

// Summary returns a human-readable summary of the sync.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"players=%d teams=%d coaches=%d games=%d errors=%d",
		r.PlayersUpserted, r.TeamsUpserted, r.CoachesUpserted, r.GamesUpserted,
		len(r.Errors),
	)
}
