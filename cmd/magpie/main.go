// Command magpie runs an autonomous social posting and engagement agent:
// scheduled posts on a timer, replies to mentions and direct messages, and
// one-shot actions against the platform and the compute marketplace.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "magpie",
		Usage:   "autonomous posting and engagement agent",
		Version: versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"MAGPIE_LOG_LEVEL", "LOG_LEVEL"},
		},
	}
	app.Commands = []*cli.Command{
		cmdRun,
		cmdPost,
		cmdReply,
		cmdDM,
		cmdEngage,
		cmdTimeline,
		cmdStatus,
		cmdOptimizeCosts,
		cmdGenerate,
		cmdGPU,
		cmdBearerToken,
	}
	return app.Run(args)
}
