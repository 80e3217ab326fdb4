package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/url-metadata-extractor/internal/extract"
	"github.com/dtnitsch/url-metadata-extractor/internal/history"
	"github.com/dtnitsch/url-metadata-extractor/internal/serve"
	"github.com/dtnitsch/url-metadata-extractor/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "url-metadata",
		Usage: "extract business metadata (name, description, industry, address, logo) from websites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the YAML config file (a missing file means defaults)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port (overrides config and PORT)"},
				},
			},
			{
				Name:      "extract",
				Usage:     "extract metadata for one or more URLs",
				UsageText: `url-metadata extract --urls "https://example.com,https://example.org" [--format yaml]`,
				Action:    extract.ExtractAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "urls", Aliases: []string{"u"}, Usage: "comma-separated URLs"},
					&cli.StringFlag{Name: "urls-file", Usage: "file with one URL per line ('#' comments allowed)"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 4, Usage: "concurrent lookups"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "output format: json or yaml"},
					&cli.StringFlag{Name: "fields", Usage: "comma-separated record fields to keep, e.g. businessName,industry"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write results to this file instead of stdout"},
					&cli.StringFlag{Name: "cache-dir", Usage: "cache fetched pages in this directory"},
					&cli.StringFlag{Name: "max-age", Value: "1h", Usage: "cache entry lifetime (with --cache-dir)"},
					&cli.BoolFlag{Name: "save", Usage: "record results in the history database"},
					&cli.StringFlag{Name: "db", Usage: "history database path (overrides config)"},
				},
			},
			{
				Name:   "history",
				Usage:  "list recorded extractions",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "number of rows"},
					&cli.StringFlag{Name: "db", Usage: "history database path (overrides config)"},
				},
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "print one recorded extraction",
						ArgsUsage: "<id>",
						Action:    history.ShowAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "history database path (overrides config)"},
						},
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
