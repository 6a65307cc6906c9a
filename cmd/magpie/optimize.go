package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

var cmdOptimizeCosts = &cli.Command{
	Name:  "optimize-costs",
	Usage: "analyze compute spending and print optimization recommendations",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the report as JSON instead of a tree",
		},
	}, hyperbolicFlags...),
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		client, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}
		report, err := client.CostReport(cctx.Context)
		if err != nil {
			return err
		}
		if cctx.Bool("json") {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(report.RenderTree())
		return nil
	},
}
