// Pulse CLI - workforce employment analytics
//
// Usage:
//   pulse summary [--companies Meta,Google] [--years 2022,2023]
//   pulse insights
//   pulse fuse --format json
//   pulse serve --port 8080
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"workforce-pulse/api"
	"workforce-pulse/datasource"
	"workforce-pulse/decision/aggregation"
	"workforce-pulse/decision/filter"
	"workforce-pulse/decision/fusion"
	"workforce-pulse/decision/insight"
	"workforce-pulse/pkg/employment"
	"workforce-pulse/pkg/platform"
	"workforce-pulse/pkg/util"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "pulse",
		Usage:   "Workforce Pulse - layoff and hiring analytics over fused employment data",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PULSE_LOG_LEVEL"},
			},
			&cli.Int64Flag{
				Name:    "seed",
				Value:   datasource.DefaultSeed,
				Usage:   "Seed for the sample data generator",
				EnvVars: []string{"PULSE_SEED"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format (text, json)",
				EnvVars: []string{"PULSE_FORMAT"},
			},
		},

		Commands: []*cli.Command{
			summaryCommand(),
			insightsCommand(),
			fuseCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "companies",
			Usage: "Restrict to these companies (repeatable or comma-separated)",
		},
		&cli.IntSliceFlag{
			Name:  "years",
			Usage: "Restrict to these years",
		},
		&cli.IntSliceFlag{
			Name:  "months",
			Usage: "Restrict to these calendar months (1-12)",
		},
		&cli.StringSliceFlag{
			Name:  "industries",
			Usage: "Restrict to these industries",
		},
	}
}

// selectionFromFlags builds the filter selection from CLI flags. A flag that
// was never supplied leaves its dimension unconstrained.
func selectionFromFlags(c *cli.Context) filter.Selection {
	var sel filter.Selection
	if c.IsSet("companies") {
		sel.Companies = filter.Only(c.StringSlice("companies")...)
	}
	if c.IsSet("years") {
		sel.Years = filter.Only(c.IntSlice("years")...)
	}
	if c.IsSet("months") {
		sel.Months = filter.Only(c.IntSlice("months")...)
	}
	if c.IsSet("industries") {
		sel.Industries = filter.Only(c.StringSlice("industries")...)
	}
	return sel
}

// load generates the dataset and applies any filter flags.
func load(c *cli.Context) (reductions, hires []employment.Event) {
	ds := datasource.Generate(c.Int64("seed"))
	sel := selectionFromFlags(c)
	return filter.Apply(ds.Reductions, sel), filter.Apply(ds.Hires, sel)
}

// =============================================================================
// SUMMARY COMMAND
// =============================================================================

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print summary statistics over the (optionally filtered) data",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			reductions, hires := load(c)
			fused := fusion.Fuse(reductions, hires)
			bundle := aggregation.Summarize(reductions, hires, fused)

			if c.String("format") == "json" {
				return printJSON(bundle)
			}

			fmt.Printf("Total layoffs:  %s\n", util.FormatCount(bundle.TotalLayoffs))
			fmt.Printf("Total hires:    %s\n", util.FormatCount(bundle.TotalHires))
			fmt.Printf("Net change:     %s\n", util.FormatCount(bundle.NetEmploymentChange))
			fmt.Printf("Fused rows:     %d\n", len(fused))

			fmt.Println("\nTop layoff companies:")
			for _, g := range bundle.TopLayoffCompanies {
				fmt.Printf("  %-14s %s\n", g.Key, util.FormatCount(g.Total))
			}
			fmt.Println("\nTop hiring companies:")
			for _, g := range bundle.TopHiringCompanies {
				fmt.Printf("  %-14s %s\n", g.Key, util.FormatCount(g.Total))
			}
			fmt.Println("\nIndustry impact (layoffs):")
			for _, g := range bundle.IndustryImpact {
				fmt.Printf("  %-20s %s\n", g.Key, util.FormatCount(g.Total))
			}
			return nil
		},
	}
}

// =============================================================================
// INSIGHTS COMMAND
// =============================================================================

func insightsCommand() *cli.Command {
	return &cli.Command{
		Name:  "insights",
		Usage: "Print narrative insights, trend predictions, and recommendations",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			reductions, hires := load(c)
			fused := fusion.Fuse(reductions, hires)

			out := struct {
				Insights        []string `json:"insights"`
				Predictions     []string `json:"predictions"`
				Recommendations []string `json:"recommendations"`
			}{
				Insights:        insight.Generate(reductions, hires, fused),
				Predictions:     insight.PredictTrends(fused),
				Recommendations: insight.Recommendations(),
			}

			if c.String("format") == "json" {
				return printJSON(out)
			}

			for _, section := range []struct {
				title string
				lines []string
			}{
				{"Insights", out.Insights},
				{"Predictions", out.Predictions},
				{"Recommendations", out.Recommendations},
			} {
				fmt.Printf("%s\n", section.title)
				for _, line := range section.lines {
					fmt.Printf("  %s\n", line)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// =============================================================================
// FUSE COMMAND
// =============================================================================

func fuseCommand() *cli.Command {
	return &cli.Command{
		Name:  "fuse",
		Usage: "Print the fused monthly per-company table",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			reductions, hires := load(c)
			fused := fusion.Fuse(reductions, hires)

			if c.String("format") == "json" {
				return printJSON(fused)
			}

			fmt.Printf("%-14s %-8s %9s %9s %10s %10s\n",
				"COMPANY", "MONTH", "LAYOFFS", "HIRES", "NET", "RATIO")
			for _, f := range fused {
				fmt.Printf("%-14s %04d-%02d %9s %9s %10s %10s\n",
					f.Company, f.Year, f.Month,
					util.FormatCount(f.Layoffs),
					util.FormatCount(f.Hires),
					util.FormatCount(f.NetChange),
					f.EmploymentRatio.StringFixed(3))
			}
			fmt.Printf("%d rows\n", len(fused))
			return nil
		},
	}
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the analytics API over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Listen port",
				EnvVars: []string{"PULSE_PORT"},
			},
		},
		Action: func(c *cli.Context) error {
			logger := platform.NewLogger(c.String("log-level"), true)

			cfg := api.DefaultConfig()
			cfg.Port = c.Int("port")
			cfg.DataSeed = c.Int64("seed")

			server := api.NewServer(datasource.Generate(cfg.DataSeed), cfg, logger)
			return server.StartWithGracefulShutdown()
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
