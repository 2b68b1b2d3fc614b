package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	catalogFlag := &cli.StringSliceFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "YAML catalog file to load (repeatable, added to catalog.files)",
	}

	return &cli.App{
		Name:  "omnisearch",
		Usage: "Keyboard-driven command palette",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the TOML config file",
				EnvVars: []string{"OMNISEARCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write the log",
				Value: "omnisearch.log",
			},
		},
		Before: setupLogging,
		After:  closeLog,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Open the palette in the terminal",
				Action: runCommand,
				Flags:  []cli.Flag{catalogFlag},
			},
			{
				Name:      "query",
				Usage:     "Print the ranked results for a query",
				ArgsUsage: "[query]",
				Action:    queryCommand,
				Flags: []cli.Flag{
					catalogFlag,
					&cli.BoolFlag{
						Name:  "regex",
						Usage: "Match the query as a regular expression",
					},
					&cli.StringFlag{
						Name:  "group",
						Usage: "Only show items of this group",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Only show items of this type",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to print (0 for all)",
						Value: 20,
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Write the default configuration",
						Action: configInitCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing file",
							},
						},
					},
					{
						Name:   "path",
						Usage:  "Print the configuration file location",
						Action: configPathCommand,
					},
				},
			},
		},
	}
}
