package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/nav"
	"github.com/zackmeach/gridironlabs/internal/service"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive line-oriented browser with back/forward history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				prompt := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
				return newBrowser(a, cmd.OutOrStdout()).Run(cmd.InOrStdin(), prompt)
			})
		},
	}
}

const browseHelp = `Commands:
  go <section>         open a section (home, seasons, teams, players, drafts, history)
  open <type> <id>     open a player, team or coach summary
  search <query>       search by name
  back | forward       move through history
  where                show the current location
  help                 show this help
  quit                 leave`

// browser renders pages for routes and tracks navigation history.
type browser struct {
	a       *app
	out     io.Writer
	history *nav.History
}

func newBrowser(a *app, out io.Writer) *browser {
	return &browser{a: a, out: out, history: nav.NewHistory()}
}

// Run reads commands until quit or EOF. Page errors are shown as banners
// and never end the session.
func (b *browser) Run(in io.Reader, prompt bool) error {
	b.navigate("home")

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(b.out, "[%s]> ", b.history.Current())
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := b.exec(strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
	}
}

func (b *browser) exec(line string) (quit bool) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
	case "where":
		fmt.Fprintln(b.out, b.history.Current())
	case "go":
		if !slices.Contains(nav.Sections, rest) {
			fmt.Fprintf(b.out, "Unknown section %q. Sections: %s\n", rest, strings.Join(nav.Sections, ", "))
			return false
		}
		b.navigate(rest)
	case "open":
		typ, id, _ := strings.Cut(rest, " ")
		t, ok := model.ParseEntityType(typ)
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			fmt.Fprintln(b.out, "Usage: open <player|team|coach> <id>")
			return false
		}
		route := model.Route{Page: string(t), Entity: &model.EntityRef{EntityType: t, ID: id}}
		b.navigate(route.String())
	case "search":
		b.showSearch(rest)
	case "back":
		if key, ok := b.history.Back(); ok {
			b.render(key)
		} else {
			fmt.Fprintln(b.out, "Already at the oldest page")
		}
	case "forward":
		if key, ok := b.history.Forward(); ok {
			b.render(key)
		} else {
			fmt.Fprintln(b.out, "Already at the newest page")
		}
	default:
		fmt.Fprintf(b.out, "Unknown command %q (try help)\n", verb)
	}
	return false
}

func (b *browser) navigate(key string) {
	b.history.Visit(key)
	b.render(key)
}

func (b *browser) render(key string) {
	route, err := nav.ParseRoute(key)
	if err != nil {
		fmt.Fprintln(b.out, banner(err))
		return
	}
	page, _ := nav.PageKey(route.Page)
	fmt.Fprintf(b.out, "== %s ==\n", page)

	if err := b.renderRoute(route); err != nil {
		fmt.Fprintln(b.out, banner(err))
	}
}

func (b *browser) renderRoute(route model.Route) error {
	a := b.a
	if route.Entity != nil {
		e, err := a.summary.Entity(route.Entity.EntityType, route.Entity.ID)
		if err != nil {
			return err
		}
		return output(b.out, e, renderEntity(e))
	}

	switch route.Page {
	case "home":
		overview, err := a.league.Overview()
		if err != nil {
			return err
		}
		if err := output(b.out, overview, renderOverview(overview)); err != nil {
			return err
		}
		if items, err := matchupsNow(a); err == nil && len(items) > 0 {
			fmt.Fprintln(b.out, "\nUpcoming:")
			for _, m := range items {
				fmt.Fprintf(b.out, "  %s\n", m)
			}
		}
		lb, err := a.league.Leaders(service.DefaultLeaderLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(b.out)
		return output(b.out, lb, renderLeaders(lb))
	case "seasons":
		s, err := a.league.Schedule()
		if err != nil {
			return err
		}
		return output(b.out, s, renderSchedule(s))
	case "teams":
		teams, err := a.repo.Teams()
		if err != nil {
			return err
		}
		return output(b.out, teams, renderEntities(teams))
	case "players":
		players, err := a.repo.Players()
		if err != nil {
			return err
		}
		return output(b.out, players, renderEntities(players))
	default:
		fmt.Fprintf(b.out, "Nothing to show for %s yet.\n", route.Page)
		return nil
	}
}

func (b *browser) showSearch(query string) {
	results, err := b.a.search.Search(query, service.DefaultSearchLimit)
	if err != nil {
		fmt.Fprintln(b.out, banner(err))
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(b.out, "No matches for %q\n", query)
		return
	}
	_ = output(b.out, results, renderSearch(results))
}
