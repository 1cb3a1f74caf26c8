package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/settings"
)

func tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Read or write persisted table layout state",
	}

	var (
		version     string
		columns     int
		stretchLast bool
	)
	cmd.PersistentFlags().StringVar(&version, "version", settings.DefaultTableVersion, "Table layout version")
	cmd.PersistentFlags().IntVar(&columns, "columns", 0, "Column count (trims persisted widths)")
	cmd.PersistentFlags().BoolVar(&stretchLast, "stretch-last", false, "Last column stretches and is not persisted")

	get := &cobra.Command{
		Use:   "get <page> <table>",
		Short: "Show persisted widths and sort state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(func(a *app, store *settings.Store) error {
				key := settings.TableKey{PageID: args[0], TableID: args[1], Version: version}
				state, err := store.LoadTableState(cmd.Context(), key, settings.PersistCount(columns, stretchLast))
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), state, func(w io.Writer) {
					fmt.Fprintf(w, "Key\t%s\n", store.TablePrefix(key))
					fmt.Fprintf(w, "Widths\t%s\n", joinWidths(state.Widths))
					if state.SortColumn != nil && state.SortOrder != nil {
						fmt.Fprintf(w, "Sort\tcolumn %d %s\n", *state.SortColumn, state.SortOrder)
					} else {
						fmt.Fprintf(w, "Sort\t-\n")
					}
				})
			})
		},
	}

	var (
		widths string
		sortBy string
	)
	set := &cobra.Command{
		Use:   "set <page> <table>",
		Short: "Persist widths and/or sort state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := settings.TableKey{PageID: args[0], TableID: args[1], Version: version}
			return withSettings(func(a *app, store *settings.Store) error {
				ctx := cmd.Context()
				if widths != "" {
					ws, err := parseInts(widths)
					if err != nil {
						return err
					}
					if err := store.SaveColumnWidths(ctx, key, ws, settings.PersistCount(columns, stretchLast)); err != nil {
						return err
					}
				}
				if sortBy != "" {
					col, order, err := parseSort(sortBy)
					if err != nil {
						return err
					}
					if err := store.SaveSort(ctx, key, col, order); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", store.TablePrefix(key))
				return nil
			})
		},
	}
	set.Flags().StringVar(&widths, "widths", "", "Comma-separated column widths")
	set.Flags().StringVar(&sortBy, "sort", "", "Sort as <column>:<asc|desc>")

	cmd.AddCommand(get, set)
	return cmd
}

func withSettings(fn func(a *app, store *settings.Store) error) error {
	return withApp(false, func(a *app) error {
		store, err := settings.Open(a.cfg.SettingsPath)
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(a, store)
	})
}

func parseInts(raw string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseSort(raw string) (int, settings.SortOrder, error) {
	colText, orderText, _ := strings.Cut(raw, ":")
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil || col < 0 {
		return 0, 0, fmt.Errorf("invalid sort column %q", colText)
	}
	if orderText == "" {
		orderText = "asc"
	}
	order, ok := settings.ParseSortOrder(orderText)
	if !ok {
		return 0, 0, fmt.Errorf("invalid sort order %q", orderText)
	}
	return col, order, nil
}

// joinWidths renders unset columns as "-".
func joinWidths(ws []*int) string {
	if len(ws) == 0 {
		return "-"
	}
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = "-"
		if w != nil {
			parts[i] = strconv.Itoa(*w)
		}
	}
	return strings.Join(parts, ",")
}
