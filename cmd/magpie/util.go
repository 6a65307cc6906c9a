package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hyperfeather/magpie/hyperbolic"
	"github.com/hyperfeather/magpie/twitter"
)

var twitterFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "twitter-api-key",
		Usage:   "OAuth 1.0a consumer key",
		EnvVars: []string{"TWITTER_API_KEY"},
	},
	&cli.StringFlag{
		Name:    "twitter-api-secret",
		Usage:   "OAuth 1.0a consumer secret",
		EnvVars: []string{"TWITTER_API_SECRET"},
	},
	&cli.StringFlag{
		Name:    "twitter-access-token",
		Usage:   "OAuth 1.0a user access token",
		EnvVars: []string{"TWITTER_ACCESS_TOKEN"},
	},
	&cli.StringFlag{
		Name:    "twitter-access-secret",
		Usage:   "OAuth 1.0a user access token secret",
		EnvVars: []string{"TWITTER_ACCESS_SECRET"},
	},
	&cli.StringFlag{
		Name:    "twitter-bearer-token",
		Usage:   "app-only bearer token for read endpoints",
		EnvVars: []string{"TWITTER_BEARER_TOKEN"},
	},
}

var hyperbolicFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "hyperbolic-api-key",
		Usage:   "API key for the compute marketplace",
		EnvVars: []string{"HYPERBOLIC_API_KEY"},
	},
	&cli.StringFlag{
		Name:    "hyperbolic-model",
		Usage:   "model used for content generation",
		Value:   "meta-llama/Meta-Llama-3.1-70B-Instruct",
		EnvVars: []string{"HYPERBOLIC_MODEL"},
	},
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func twitterClient(cctx *cli.Context) (*twitter.Client, error) {
	auth := &twitter.UserAuth{
		ConsumerKey:    cctx.String("twitter-api-key"),
		ConsumerSecret: cctx.String("twitter-api-secret"),
		AccessToken:    cctx.String("twitter-access-token"),
		AccessSecret:   cctx.String("twitter-access-secret"),
	}
	if auth.ConsumerKey == "" || auth.ConsumerSecret == "" || auth.AccessToken == "" || auth.AccessSecret == "" {
		return nil, fmt.Errorf("twitter user credentials are not fully configured (set TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_SECRET)")
	}
	return twitter.NewClient(auth, cctx.String("twitter-bearer-token")), nil
}

// appOnlyTwitterClient builds a client for commands that work with just the
// consumer key pair, without a user context.
func appOnlyTwitterClient(cctx *cli.Context) (*twitter.Client, error) {
	auth := &twitter.UserAuth{
		ConsumerKey:    cctx.String("twitter-api-key"),
		ConsumerSecret: cctx.String("twitter-api-secret"),
	}
	if auth.ConsumerKey == "" || auth.ConsumerSecret == "" {
		return nil, fmt.Errorf("twitter consumer credentials are not configured (set TWITTER_API_KEY, TWITTER_API_SECRET)")
	}
	return twitter.NewClient(auth, cctx.String("twitter-bearer-token")), nil
}

func hyperbolicClient(cctx *cli.Context) (*hyperbolic.Client, error) {
	key := cctx.String("hyperbolic-api-key")
	if key == "" {
		return nil, fmt.Errorf("compute marketplace key is not configured (set HYPERBOLIC_API_KEY)")
	}
	return hyperbolic.NewClient(key), nil
}
