package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/service"
)

// output prints v as JSON when --json is set, otherwise through table.
func output(w io.Writer, v any, table func(io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func opt(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func renderEntities(list []model.EntitySummary) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tTEAM\tPOSITION\tERA\tOVERALL")
		for _, e := range list {
			var overall *float64
			if e.Ratings != nil {
				overall = e.Ratings.Overall
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Name, opt(e.Team), opt(e.Position), opt(e.Era), optFloat(overall))
		}
	}
}

func renderEntity(e model.EntitySummary) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", e.ID)
		fmt.Fprintf(w, "Name\t%s\n", e.Name)
		fmt.Fprintf(w, "Type\t%s\n", e.EntityType)
		fmt.Fprintf(w, "Team\t%s\n", opt(e.Team))
		fmt.Fprintf(w, "Position\t%s\n", opt(e.Position))
		fmt.Fprintf(w, "Era\t%s\n", opt(e.Era))
		if r := e.Ratings; r != nil {
			fmt.Fprintf(w, "Ratings\toverall=%s athleticism=%s technical=%s intangibles=%s potential=%s\n",
				optFloat(r.Overall), optFloat(r.Athleticism), optFloat(r.Technical),
				optFloat(r.Intangibles), optFloat(r.Potential))
		}
		keys := make([]string, 0, len(e.Stats))
		for k := range e.Stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s\t%s\n", k, strconv.FormatFloat(e.Stats[k], 'f', -1, 64))
		}
		fmt.Fprintf(w, "Source\t%s\n", opt(e.Source))
		if e.UpdatedAt != nil {
			fmt.Fprintf(w, "Updated\t%s\n", e.UpdatedAt.Format("2006-01-02"))
		}
	}
}

func gameLine(g model.GameSummary) string {
	score := ""
	if g.HomeScore != nil && g.AwayScore != nil {
		score = fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
	}
	return fmt.Sprintf("%s\t%s\t%s @ %s\t%s\t%s\t%s",
		g.ID, g.StartTime.UTC().Format("Mon Jan 2 15:04"), g.AwayTeam, g.HomeTeam,
		g.Status, score, g.Location)
}

func renderGames(games []model.GameSummary) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ID\tKICKOFF (UTC)\tMATCHUP\tSTATUS\tSCORE\tLOCATION")
		for _, g := range games {
			fmt.Fprintln(w, gameLine(g))
		}
	}
}

func renderSchedule(s service.Schedule) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "Season %d\n", s.Season)
		for _, group := range s.Groups {
			fmt.Fprintf(w, "\n%s\n", group.Label)
			for _, g := range group.Games {
				fmt.Fprintln(w, gameLine(g))
			}
		}
	}
}

func renderStandings(s service.Standings) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "Season %d\n", s.Season)
		for _, d := range s.Divisions {
			fmt.Fprintf(w, "\n%s\tW-L-T\tPCT\tGB\n", d.Division)
			for _, row := range d.Teams {
				fmt.Fprintf(w, "%d. %s\t%s\t%.3f\t%s\n", row.Place, row.Name, row.Record(), row.Pct, gamesBack(row.GamesBack))
			}
		}
	}
}

func gamesBack(gb float64) string {
	if gb == 0 {
		return "-"
	}
	return strconv.FormatFloat(gb, 'f', 1, 64)
}

func renderLeaders(lb service.Leaderboard) func(io.Writer) {
	return func(w io.Writer) {
		if lb.SeasonLabel != "" {
			fmt.Fprintf(w, "Leaders: %s\n", lb.SeasonLabel)
		}
		for _, group := range lb.Groups {
			fmt.Fprintf(w, "\n%s\n", strings.ToUpper(group.Title))
			for _, stat := range group.Stats {
				fmt.Fprintf(w, "%s\t\t\n", stat.Label)
				for i, e := range stat.Entries {
					fmt.Fprintf(w, "  %d. %s\t%s\t%s\n", i+1, e.Name, e.Team, strconv.FormatFloat(e.Value, 'f', -1, 64))
				}
			}
		}
	}
}

func renderSearch(results []model.SearchResult) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "TYPE\tID\tNAME\tTEAM\tPOSITION")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.EntityType, r.ID, r.Label, r.Context["team"], r.Context["position"])
		}
	}
}

func renderComparison(v model.ComparisonView) func(io.Writer) {
	return func(w io.Writer) {
		header := []string{"METRIC"}
		for _, e := range v.Entities {
			header = append(header, e.Name)
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, key := range v.MetricKeys {
			row := []string{key}
			for _, e := range v.Entities {
				if n, ok := e.Stat(key); ok {
					row = append(row, strconv.FormatFloat(n, 'f', -1, 64))
				} else {
					row = append(row, "-")
				}
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}
}

func renderOverview(o service.Overview) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "Players\t%d\n", o.Players)
		fmt.Fprintf(w, "Teams\t%d\n", o.Teams)
		fmt.Fprintf(w, "Coaches\t%d\n", o.Coaches)
		fmt.Fprintf(w, "Seasons\t%s\n", o.SeasonSpan)
	}
}
