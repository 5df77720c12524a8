package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dtnitsch/feeday/internal/analyze"
	"github.com/dtnitsch/feeday/internal/compare"
	"github.com/dtnitsch/feeday/internal/students"
	"github.com/dtnitsch/feeday/pkg/help"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// cli.Exit errors already printed and exited; anything else lands here.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "feeday",
		Usage: "Find the day of the month each student most often pays fees",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file with FEEDAY_* variables (ignored if missing)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.StringFlag{Name: "format", Usage: "output format: text, json or yaml"},
			&cli.StringFlag{Name: "source", Usage: "input kind: csv, xlsx or sqlite"},
			&cli.StringFlag{Name: "fees", Usage: "fee records file (or database for sqlite)"},
			&cli.StringFlag{Name: "students", Usage: "student names file"},
			&cli.StringFlag{Name: "sheet", Usage: "worksheet name for xlsx input"},
			&cli.IntFlag{Name: "chunks", Usage: "number of partitions for the parallel run"},
			&cli.IntFlag{Name: "workers", Usage: "worker pool size (0 = one per partition)"},
			&cli.StringFlag{Name: "partition", Usage: "partition strategy: key or range"},
			&cli.IntFlag{Name: "sample", Usage: "students shown in the comparison sample (0 = all)"},
		},
		Before: loadEnvFile,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Sequential analysis of every student",
				Action: analyze.AnalyzeAction,
			},
			{
				Name:   "compare",
				Usage:  "Time sequential against parallel analysis and check they agree",
				Action: compare.CompareAction,
			},
			{
				Name:      "students",
				Usage:     "Show the day histogram for specific students",
				ArgsUsage: "<student_id> [<student_id>...]",
				Action:    students.StudentsAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick reference",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}

func loadEnvFile(c *cli.Context) error {
	err := godotenv.Load(c.String("env-file"))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return cli.Exit(fmt.Sprintf("failed to load %s: %v", c.String("env-file"), err), 1)
}
