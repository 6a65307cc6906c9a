package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/agent/cursor"
	"github.com/hyperfeather/magpie/agent/gate"
	"github.com/hyperfeather/magpie/fakedata"
	"github.com/hyperfeather/magpie/history"
	"github.com/hyperfeather/magpie/persona"
)

var dbURLFlag = &cli.StringFlag{
	Name:    "db-url",
	Usage:   "database for the action history, eg sqlite://data/magpie/history.sqlite; empty disables",
	EnvVars: []string{"MAGPIE_DB_URL", "DATABASE_URL"},
}

// oneshotAgent assembles an agent in manual mode for a single dispatched
// action. When the action never generates content (plain posts, replies,
// DMs with explicit text) the content provider is a local stub.
func oneshotAgent(cctx *cli.Context, logger *slog.Logger, needContent bool) (*agent.Agent, error) {
	tc, err := twitterClient(cctx)
	if err != nil {
		return nil, err
	}
	platform := newTwitterPlatform(tc)

	var content agent.ContentProvider
	if needContent && !cctx.Bool("offline") {
		hyp, err := hyperbolicClient(cctx)
		if err != nil {
			return nil, err
		}
		character := persona.Default()
		if path := cctx.String("character"); path != "" {
			character, err = persona.LoadCharacter(path)
			if err != nil {
				return nil, err
			}
		}
		gen, err := persona.NewGenerator(hyp, character, cctx.String("hyperbolic-model"))
		if err != nil {
			return nil, err
		}
		content = gen
	} else {
		content = fakedata.NewSource("", time.Now().UnixNano())
	}

	var recorder *history.Recorder
	if dburl := cctx.String("db-url"); dburl != "" {
		db, err := history.SetupDatabase(dburl, 10)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		recorder, err = history.NewRecorder(db)
		if err != nil {
			return nil, err
		}
	}

	g := gate.New(gate.NewMemCountStore(), "posts", 0)
	return agent.New(content, platform, g, cursor.NewMemStore(), recorder, agent.Config{
		Mode:          agent.ModeManual,
		EngagePerHour: cctx.Int("engage-per-hour"),
		ReplyPace:     2 * time.Second,
		Logger:        logger,
	})
}

func argText(cctx *cli.Context, from int) string {
	return strings.TrimSpace(strings.Join(cctx.Args().Slice()[from:], " "))
}

var cmdPost = &cli.Command{
	Name:      "post",
	Usage:     "publish a single post",
	ArgsUsage: `<text>`,
	Flags:     append([]cli.Flag{dbURLFlag}, twitterFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		if cctx.Args().Len() < 1 {
			return fmt.Errorf("expected post text as argument")
		}
		ag, err := oneshotAgent(cctx, logger, false)
		if err != nil {
			return err
		}
		id, err := ag.PostSingle(cctx.Context, argText(cctx, 0))
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var cmdReply = &cli.Command{
	Name:      "reply",
	Usage:     "reply to an existing post",
	ArgsUsage: `<post-id> <text>`,
	Flags:     append([]cli.Flag{dbURLFlag}, twitterFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		if cctx.Args().Len() < 2 {
			return fmt.Errorf("expected post ID and reply text as arguments")
		}
		ag, err := oneshotAgent(cctx, logger, false)
		if err != nil {
			return err
		}
		id, err := ag.ReplySingle(cctx.Context, cctx.Args().First(), argText(cctx, 1))
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var cmdDM = &cli.Command{
	Name:      "dm",
	Usage:     "send a direct message",
	ArgsUsage: `<recipient-id> <text>`,
	Flags:     append([]cli.Flag{dbURLFlag}, twitterFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		if cctx.Args().Len() < 2 {
			return fmt.Errorf("expected recipient ID and message text as arguments")
		}
		ag, err := oneshotAgent(cctx, logger, false)
		if err != nil {
			return err
		}
		id, err := ag.SendDirectMessage(cctx.Context, cctx.Args().First(), argText(cctx, 1))
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var cmdEngage = &cli.Command{
	Name:  "engage",
	Usage: "search recent posts and engage with the results",
	Flags: append(append([]cli.Flag{
		&cli.StringFlag{
			Name:     "query",
			Usage:    "search query for posts to engage with",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "what to do with each match: reply, retweet, like, or all",
			Value: "all",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "maximum number of posts to engage with",
			Value: 10,
		},
		&cli.IntFlag{
			Name:    "engage-per-hour",
			Usage:   "sliding-hour cap on engagement writes, 0 disables the cap",
			Value:   30,
			EnvVars: []string{"MAGPIE_ENGAGE_PER_HOUR"},
		},
		&cli.BoolFlag{
			Name:    "offline",
			Usage:   "generate reply content locally instead of renting marketplace compute",
			EnvVars: []string{"MAGPIE_OFFLINE"},
		},
		&cli.StringFlag{
			Name:    "character",
			Usage:   "path to a character JSON file; empty uses the built-in character",
			EnvVars: []string{"MAGPIE_CHARACTER"},
		},
		dbURLFlag,
	}, twitterFlags...), hyperbolicFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)

		action, err := agent.ParseEngageAction(cctx.String("action"))
		if err != nil {
			return err
		}
		needContent := action == agent.ActionReply || action == agent.ActionAll
		ag, err := oneshotAgent(cctx, logger, needContent)
		if err != nil {
			return err
		}

		report, err := ag.SearchAndEngage(cctx.Context, agent.EngageRequest{
			Query:  cctx.String("query"),
			Action: action,
			Limit:  cctx.Int("limit"),
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
