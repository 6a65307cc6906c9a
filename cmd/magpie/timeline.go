package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var cmdTimeline = &cli.Command{
	Name:  "timeline",
	Usage: "print recent posts from an account",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "user",
			Usage: "username to read; empty reads the authenticated account",
		},
		&cli.IntFlag{
			Name:  "limit",
			Value: 20,
		},
	}, twitterFlags...),
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		ctx := cctx.Context

		tc, err := twitterClient(cctx)
		if err != nil {
			return err
		}

		userID := ""
		if username := cctx.String("user"); username != "" {
			u, err := tc.UserByUsername(ctx, username)
			if err != nil {
				return err
			}
			userID = u.ID
		}

		page, err := tc.UserTimeline(ctx, userID, cctx.Int("limit"))
		if err != nil {
			return err
		}
		for i := range page.Tweets {
			t := &page.Tweets[i]
			author := t.AuthorID
			if u, ok := page.Author(t); ok {
				author = "@" + u.Username
			}
			fmt.Printf("%s  %s\n  %s\n", t.ID, author, t.Text)
		}
		return nil
	},
}

var cmdBearerToken = &cli.Command{
	Name:  "bearer-token",
	Usage: "fetch an app-only bearer token using the consumer key pair",
	Flags: twitterFlags,
	Action: func(cctx *cli.Context) error {
		tc, err := appOnlyTwitterClient(cctx)
		if err != nil {
			return err
		}
		token, err := tc.FetchBearerToken(cctx.Context)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}
