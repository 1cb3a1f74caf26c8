package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/service"
)

// --------------------------------------------------------------------------
// status / validate
// --------------------------------------------------------------------------

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the data bootstrap status and overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Data directory: %s (schema %s)\n", a.cfg.Paths.DataProcessed, a.repo.SchemaVersion())
				for _, table := range config.Tables {
					state := "present"
					if !a.repo.Exists(table) {
						state = "missing"
					}
					fmt.Fprintf(w, "  %-8s %s\n", table, state)
				}

				overview, err := a.league.Overview()
				if err != nil {
					// Bootstrap boundary: report and keep going
					fmt.Fprintln(w, banner(err))
					return nil
				}
				fmt.Fprintf(w, "Loaded NFL data: %d players, %d teams, %d coaches; seasons: %s\n",
					overview.Players, overview.Teams, overview.Coaches, overview.SeasonSpan)
				return nil
			})
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every table and report schema problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				if err := a.repo.ValidateSchema(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All tables valid")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// players / teams / coaches
// --------------------------------------------------------------------------

func entityCmd(table, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   table,
		Short: short,
	}

	var (
		filter service.EntityFilter
		limit  int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List rows in file order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				all, err := listTable(a, table)
				if err != nil {
					return err
				}
				rows := service.FilterEntities(all, filter)
				if limit > 0 && len(rows) > limit {
					rows = rows[:limit]
				}
				return output(cmd.OutOrStdout(), rows, renderEntities(rows))
			})
		},
	}
	list.Flags().StringVar(&filter.Team, "team", "", "Filter by team abbreviation")
	list.Flags().StringVar(&filter.Position, "position", "", "Filter by position")
	list.Flags().StringVar(&filter.Era, "era", "", "Filter by era or season")
	list.Flags().IntVar(&limit, "limit", 0, "Maximum rows (0 for all)")

	t, _ := model.ParseEntityType(table)
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEntity(cmd, t, args[0])
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func listTable(a *app, table string) ([]model.EntitySummary, error) {
	switch table {
	case config.PlayersTable:
		return a.repo.Players()
	case config.TeamsTable:
		return a.repo.Teams()
	default:
		return a.repo.Coaches()
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <player|team|coach> <id>",
		Short: "Show one entity summary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := model.ParseEntityType(args[0])
			if !ok {
				return fmt.Errorf("unknown entity type %q (want player, team or coach)", args[0])
			}
			return showEntity(cmd, t, args[1])
		},
	}
}

func showEntity(cmd *cobra.Command, t model.EntityType, id string) error {
	return withApp(false, func(a *app) error {
		e, err := a.summary.Entity(t, id)
		if err != nil {
			return err
		}
		return output(cmd.OutOrStdout(), e, renderEntity(e))
	})
}

// --------------------------------------------------------------------------
// league views
// --------------------------------------------------------------------------

func gamesCmd() *cobra.Command {
	var (
		season, week int
		team         string
	)
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				games, err := a.repo.Games()
				if err != nil {
					return err
				}
				f := service.GameFilter{Team: team}
				if cmd.Flags().Changed("season") {
					f.Season = &season
				}
				if cmd.Flags().Changed("week") {
					f.Week = &week
				}
				games = service.FilterGames(games, f)
				return output(cmd.OutOrStdout(), games, renderGames(games))
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season")
	cmd.Flags().IntVar(&week, "week", 0, "Week (<= 0 for preseason)")
	cmd.Flags().StringVar(&team, "team", "", "Team abbreviation (home or away)")
	return cmd
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the latest season grouped by week",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				s, err := a.league.Schedule()
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), s, renderSchedule(s))
			})
		},
	}
}

func standingsCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show division standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				s, err := a.league.Standings(season)
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), s, renderStandings(s))
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season (latest when omitted)")
	return cmd
}

func leadersCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaders",
		Short: "Show stat leaders for the latest season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				lb, err := a.league.Leaders(limit)
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), lb, renderLeaders(lb))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", service.DefaultLeaderLimit, "Entries per stat")
	return cmd
}

func matchupsNow(a *app) ([]string, error) {
	return a.league.UpcomingMatchups(time.Now())
}

// --------------------------------------------------------------------------
// search / compare
// --------------------------------------------------------------------------

func searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search players, teams and coaches by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				results, err := a.search.Search(args[0], limit)
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), results, renderSearch(results))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", service.DefaultSearchLimit, "Maximum results")
	return cmd
}

func compareCmd() *cobra.Command {
	var advanced bool
	cmd := &cobra.Command{
		Use:   "compare <player-id>...",
		Short: "Compare players side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				view := a.summary.Compare(args, advanced)
				return output(cmd.OutOrStdout(), view, renderComparison(view))
			})
		},
	}
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Enable advanced metrics")
	return cmd
}
