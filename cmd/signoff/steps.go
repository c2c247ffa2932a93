package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kingrea/signoff/internal/config"
	"github.com/kingrea/signoff/internal/stepper"
)

var (
	headerCell = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
	oddCell    = bodyCell.Foreground(lipgloss.Color("#888888"))
)

func newStepsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "Print the step catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(opts.projectDir)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(opts, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalogTable(catalog))
			return nil
		},
	}
}

func catalogTable(c stepper.Catalog) string {
	rows := make([][]string, 0, c.Len())
	for _, step := range c.Steps() {
		rows = append(rows, []string{
			strconv.Itoa(step.Number),
			step.Title,
			step.Subtitle,
			step.RequiredRole,
			step.DownloadURL,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCell
			case row%2 == 0:
				return bodyCell
			default:
				return oddCell
			}
		}).
		Headers("#", "Title", "Subtitle", "Role", "Resources").
		Rows(rows...).
		String()
}

func newValidateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog PATH",
		Short: "Check a YAML step catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := stepper.LoadCatalogFile(args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Invalid: %s\n", args[0])
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d steps)\n", args[0], catalog.Len())
			return nil
		},
	}
}
