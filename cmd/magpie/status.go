package main

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/util"
)

var cmdStatus = &cli.Command{
	Name:  "status",
	Usage: "query a running agent's admin endpoint",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "admin-host",
			Usage:   "base URL of the agent's admin endpoints",
			Value:   "http://localhost:2510",
			EnvVars: []string{"MAGPIE_ADMIN_HOST"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the raw status JSON",
		},
	},
	Action: func(cctx *cli.Context) error {
		host := cctx.String("admin-host")

		req, err := http.NewRequestWithContext(cctx.Context, http.MethodGet, host+"/status", nil)
		if err != nil {
			return err
		}
		resp, err := util.RetryingHTTPClient("magpie").Do(req)
		if err != nil {
			return fmt.Errorf("could not reach agent at %s (is it running?): %w", host, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("agent returned HTTP %d", resp.StatusCode)
		}

		var st agent.Status
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return fmt.Errorf("decoding status: %w", err)
		}

		if cctx.Bool("json") {
			out, err := json.MarshalIndent(&st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("mode:        %s\n", st.Mode)
		fmt.Printf("uptime:      %s\n", (time.Duration(st.UptimeSeconds) * time.Second).String())
		fmt.Printf("posts today: %d / %d (%d remaining)\n", st.PostsToday, st.DailyBudget, st.PostsRemaining)
		if len(st.Cursors) > 0 {
			fmt.Println("cursors:")
			names := make([]string, 0, len(st.Cursors))
			for name := range st.Cursors {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %s: %s\n", name, st.Cursors[name])
			}
		}
		if len(st.ActionsLastDay) > 0 {
			fmt.Println("actions (last 24h):")
			kinds := make([]string, 0, len(st.ActionsLastDay))
			for kind := range st.ActionsLastDay {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Printf("  %s: %d\n", kind, st.ActionsLastDay[kind])
			}
		}
		return nil
	},
}
