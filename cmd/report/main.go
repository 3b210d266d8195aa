// cmd/report/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/storeops/salesdash/internal/analytics"
	"github.com/storeops/salesdash/internal/domain"
	"github.com/storeops/salesdash/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "salesdash-report",
		Usage: "generate sales analytics reports from an article sale export",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the full pipeline on one export and print the report bundle as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "path to the csv/xlsx export", Required: true},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write JSON to this file instead of stdout"},
					&cli.StringFlag{Name: "category", Value: analytics.FilterAll, Usage: "category filter for the category rollup"},
					&cli.StringFlag{Name: "sub-category", Value: analytics.FilterAll, Usage: "sub-category filter for the category rollup"},
					&cli.StringFlag{Name: "week-scheme", Value: "retail", Usage: "week bucketing scheme (retail or iso)"},
					&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level"},
				},
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runReport(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	scheme := domain.ParseWeekScheme(c.String("week-scheme"))
	processor := analytics.NewProcessor(scheme)

	bundle, err := processor.ProcessFile(c.String("input"))
	if err != nil {
		return err
	}

	category := c.String("category")
	subCategory := c.String("sub-category")
	if category != analytics.FilterAll || subCategory != analytics.FilterAll {
		bundle.Category = analytics.ComputeCategoryReport(bundle.SalesStream, category, subCategory)
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if path := c.String("out"); path != "" {
		return os.WriteFile(path, append(out, '\n'), 0644)
	}
	fmt.Println(string(out))
	return nil
}
