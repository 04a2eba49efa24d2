package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "milscope",
		Short: "Military strength analytics and forward power projections",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(rankCmd())
	root.AddCommand(projectCmd())
	root.AddCommand(growthCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(serveCmd())

	return root
}

func rankCmd() *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show the current composite strength ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(jsonOutput, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "max countries to show (0 = all)")
	return cmd
}

func projectCmd() *cobra.Command {
	var (
		jsonOutput bool
		year       int
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show the projected future ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(jsonOutput, year, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&year, "year", 0, "target year (default: from config)")
	cmd.Flags().IntVar(&limit, "limit", 10, "max countries to show (0 = all)")
	return cmd
}

func growthCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Show expenditure growth scores and degraded rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func compareCmd() *cobra.Command {
	var (
		countries []string
		category  string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare countries across a metric set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(countries, category)
		},
	}

	cmd.Flags().StringSliceVar(&countries, "countries", nil, "2-5 countries to compare")
	cmd.Flags().StringVar(&category, "category", "", "metric category: air, land, naval, economic")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Import a dataset snapshot into the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	}
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		out  string
		year int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ranking report as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(out, year)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (default: from config)")
	cmd.Flags().IntVar(&year, "year", 0, "target year (default: from config)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
