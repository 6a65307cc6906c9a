package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/errgroup"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/agent/cursor"
	"github.com/hyperfeather/magpie/agent/gate"
	"github.com/hyperfeather/magpie/fakedata"
	"github.com/hyperfeather/magpie/history"
	"github.com/hyperfeather/magpie/persona"
)

var cmdRun = &cli.Command{
	Name:  "run",
	Usage: "run the agent loops until interrupted",
	Flags: append(append([]cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "autonomous runs the timed loops, manual only serves the admin endpoints",
			Value:   agent.ModeAutonomous,
			EnvVars: []string{"MAGPIE_MODE"},
		},
		&cli.IntFlag{
			Name:    "posting-interval",
			Usage:   "seconds between scheduled posts",
			Value:   7200,
			EnvVars: []string{"MAGPIE_POSTING_INTERVAL"},
		},
		&cli.IntFlag{
			Name:    "mention-interval",
			Usage:   "seconds between mention checks",
			Value:   300,
			EnvVars: []string{"MAGPIE_MENTION_INTERVAL"},
		},
		&cli.IntFlag{
			Name:    "dm-interval",
			Usage:   "seconds between direct-message checks, 0 disables the loop",
			Value:   300,
			EnvVars: []string{"MAGPIE_DM_INTERVAL"},
		},
		&cli.IntFlag{
			Name:    "max-tweets",
			Usage:   "maximum scheduled posts per UTC day",
			Value:   12,
			EnvVars: []string{"MAGPIE_MAX_TWEETS"},
		},
		&cli.IntFlag{
			Name:    "engage-per-hour",
			Usage:   "sliding-hour cap on engagement writes, 0 disables the cap",
			Value:   30,
			EnvVars: []string{"MAGPIE_ENGAGE_PER_HOUR"},
		},
		&cli.StringFlag{
			Name:    "character",
			Usage:   "path to a character JSON file; empty uses the built-in character",
			EnvVars: []string{"MAGPIE_CHARACTER"},
		},
		&cli.BoolFlag{
			Name:    "offline",
			Usage:   "generate content locally instead of renting marketplace compute",
			EnvVars: []string{"MAGPIE_OFFLINE"},
		},
		&cli.StringFlag{
			Name:    "cursor-file",
			Usage:   "path for cursor persistence; empty uses the XDG state directory",
			EnvVars: []string{"MAGPIE_CURSOR_FILE"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection for counters and cursors, eg redis://localhost:6379/0",
			EnvVars: []string{"MAGPIE_REDIS_URL"},
		},
		dbURLFlag,
		&cli.StringFlag{
			Name:    "admin-bind",
			Usage:   "IP or address, and port, to listen on for admin endpoints",
			Value:   ":2510",
			EnvVars: []string{"MAGPIE_ADMIN_BIND"},
		},
	}, twitterFlags...), hyperbolicFlags...),
	Action: runRun,
}

func runRun(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stdout)

	// enable OTLP trace export when the endpoint is configured, eg
	// OTEL_EXPORTER_OTLP_ENDPOINT=http://localhost:4318
	tracingEnabled := false
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		logger.Info("setting up trace exporter", "endpoint", ep)
		exp, err := otlptracehttp.New(context.Background())
		if err != nil {
			return fmt.Errorf("creating trace exporter: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := exp.Shutdown(sctx); err != nil {
				logger.Error("failed to shutdown trace exporter", "err", err)
			}
		}()
		tp := tracesdk.NewTracerProvider(
			tracesdk.WithBatcher(exp),
			tracesdk.WithResource(resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String("magpie"),
				attribute.String("env", os.Getenv("ENVIRONMENT")),         // DataDog
				attribute.String("environment", os.Getenv("ENVIRONMENT")), // Others
				attribute.Int64("ID", 1),
			)),
		)
		otel.SetTracerProvider(tp)
		tracingEnabled = true
	}

	character := persona.Default()
	if path := cctx.String("character"); path != "" {
		var err error
		character, err = persona.LoadCharacter(path)
		if err != nil {
			return err
		}
	}
	logger.Info("loaded character", "name", character.Name)

	var content agent.ContentProvider
	if cctx.Bool("offline") {
		logger.Info("offline mode: generating content locally")
		content = fakedata.NewSource(character.Name, time.Now().UnixNano())
	} else {
		hyp, err := hyperbolicClient(cctx)
		if err != nil {
			return err
		}
		gen, err := persona.NewGenerator(hyp, character, cctx.String("hyperbolic-model"))
		if err != nil {
			return err
		}
		content = gen
	}

	tc, err := twitterClient(cctx)
	if err != nil {
		return err
	}
	platform := newTwitterPlatform(tc)

	var counts gate.CountStore
	var cursors cursor.Store
	if redisURL := cctx.String("redis-url"); redisURL != "" {
		counts, err = gate.NewRedisCountStore(redisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		cursors, err = cursor.NewRedisStore(redisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
	} else {
		logger.Info("no redis configured; the daily post counter resets on restart")
		counts = gate.NewMemCountStore()
		cursors, err = cursor.NewFileStore(cctx.String("cursor-file"))
		if err != nil {
			return fmt.Errorf("opening cursor file: %w", err)
		}
	}
	postGate := gate.New(counts, "posts", cctx.Int("max-tweets"))

	var recorder *history.Recorder
	if dburl := cctx.String("db-url"); dburl != "" {
		db, err := history.SetupDatabase(dburl, 40)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		if tracingEnabled {
			if err := db.Use(tracing.NewPlugin()); err != nil {
				return err
			}
		}
		recorder, err = history.NewRecorder(db)
		if err != nil {
			return err
		}
	}

	ag, err := agent.New(content, platform, postGate, cursors, recorder, agent.Config{
		Mode:            cctx.String("mode"),
		PostingInterval: time.Duration(cctx.Int("posting-interval")) * time.Second,
		MentionInterval: time.Duration(cctx.Int("mention-interval")) * time.Second,
		DMInterval:      time.Duration(cctx.Int("dm-interval")) * time.Second,
		EngagePerHour:   cctx.Int("engage-per-hour"),
		ReplyPace:       2 * time.Second,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// fail fast on bad platform credentials
	self, err := platform.Self(ctx)
	if err != nil {
		return fmt.Errorf("verifying platform credentials: %w", err)
	}
	logger.Info("authenticated", "username", self.Username, "id", self.ID)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return ag.Run(ctx) })
	eg.Go(func() error { return ag.RunAdmin(ctx, cctx.String("admin-bind")) })
	eg.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			logger.Info("received OS exit signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("graceful shutdown complete")
	return nil
}
