package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/router"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	blockedStyle = cellStyle.Foreground(lipgloss.Color("#f87171"))
)

func (a *app) routesCmd() *cobra.Command {
	var width, height float64
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes and their blocked segments under the consent policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := a.buildGraph(width, height)
			if err != nil {
				return err
			}
			routes := router.BuildRoutes(g, a.cfg.Policy(), router.WithLogger(a.logger))
			fmt.Fprintln(a.stdout, routeTable(g, routes))
			fmt.Fprintln(a.stdout, summaryLine(a.cfg.Policy(), router.Summarize(routes)))

			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height in pixels")

	return cmd
}

func routeTable(g *core.Graph, routes []router.Route) string {
	rows := make([][]string, 0, len(routes))
	blocked := make(map[int]bool)
	for i := range routes {
		r := &routes[i]
		if r.Blocked() {
			blocked[i] = true
		}
		rows = append(rows, []string{
			r.Key,
			strconv.Itoa(r.SourceID),
			strconv.Itoa(r.DestinationID),
			r.DestinationCategory.String(),
			strconv.Itoa(len(r.Segments)),
			strconv.FormatFloat(r.Length(g), 'f', 1, 64),
			yesNo(r.Blocked()),
			yesNo(r.Fallback),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("key", "source", "dest", "category", "hops", "length", "blocked", "fallback").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			// Data rows follow the header row.
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case blocked[row-table.HeaderRow-1]:
				return blockedStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

func summaryLine(p core.Policy, s router.Summary) string {
	line := fmt.Sprintf("policy %s: %d routes, %d blocked, %d fallback", p, s.Total, s.Blocked, s.Fallback)
	for _, c := range core.Categories {
		if t, ok := s.ByCategory[c]; ok {
			line += fmt.Sprintf("; %s %d/%d", c, t.Blocked, t.Total)
		}
	}

	return line
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
