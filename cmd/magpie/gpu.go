package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hyperfeather/magpie/hyperbolic"
	"github.com/hyperfeather/magpie/persona"
)

var cmdGPU = &cli.Command{
	Name:  "gpu",
	Usage: "manage marketplace GPU rentals",
	Subcommands: []*cli.Command{
		cmdGPURent,
		cmdGPUStatus,
		cmdGPURelease,
	},
}

var cmdGPURent = &cli.Command{
	Name:  "rent",
	Usage: "rent an instance sized for the configured model",
	Flags: append([]cli.Flag{
		&cli.Float64Flag{
			Name:  "max-price",
			Usage: "maximum hourly price in USD",
			Value: 0.50,
		},
		&cli.BoolFlag{
			Name:  "wait",
			Usage: "poll until the instance reports ready",
		},
	}, hyperbolicFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		client, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}
		gpuID, err := client.RentGPU(cctx.Context, cctx.String("hyperbolic-model"), cctx.Float64("max-price"))
		if err != nil {
			return err
		}
		logger.Info("rented instance", "gpu", gpuID, "model", cctx.String("hyperbolic-model"))
		if cctx.Bool("wait") {
			if err := client.WaitReady(cctx.Context, gpuID); err != nil {
				return err
			}
			logger.Info("instance ready", "gpu", gpuID)
		}
		fmt.Println(gpuID)
		return nil
	},
}

var cmdGPUStatus = &cli.Command{
	Name:      "status",
	Usage:     "print the current status of a rented instance",
	ArgsUsage: `<gpu-id>`,
	Flags:     hyperbolicFlags,
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		if cctx.Args().Len() != 1 {
			return fmt.Errorf("expected GPU ID as argument")
		}
		client, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}
		status, err := client.GPUStatus(cctx.Context, cctx.Args().First())
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

var cmdGPURelease = &cli.Command{
	Name:      "release",
	Usage:     "release a rented instance",
	ArgsUsage: `<gpu-id>`,
	Flags:     hyperbolicFlags,
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		if cctx.Args().Len() != 1 {
			return fmt.Errorf("expected GPU ID as argument")
		}
		client, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}
		if err := client.ReleaseGPU(cctx.Context, cctx.Args().First()); err != nil {
			return err
		}
		logger.Info("released instance", "gpu", cctx.Args().First())
		return nil
	},
}

var cmdGenerate = &cli.Command{
	Name:  "generate",
	Usage: "run one content generation and print the result",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "prompt",
			Usage: "prompt text; empty renders the character's scheduled-post prompt",
		},
		&cli.StringFlag{
			Name:    "character",
			Usage:   "path to a character JSON file; empty uses the built-in character",
			EnvVars: []string{"MAGPIE_CHARACTER"},
		},
		&cli.StringFlag{
			Name:  "gpu-id",
			Usage: "pin generation to an already-rented instance",
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Value: 100,
		},
	}, hyperbolicFlags...),
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		client, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}

		prompt := cctx.String("prompt")
		if prompt == "" {
			character := persona.Default()
			if path := cctx.String("character"); path != "" {
				character, err = persona.LoadCharacter(path)
				if err != nil {
					return err
				}
			}
			prompt = character.PostPrompt()
		}

		text, err := client.Generate(cctx.Context, hyperbolic.GenerateRequest{
			Prompt:    prompt,
			Model:     cctx.String("hyperbolic-model"),
			GPUID:     cctx.String("gpu-id"),
			MaxTokens: cctx.Int("max-tokens"),
		})
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}
