package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erlandsona/elm-store-pattern/internal/config"
	"github.com/erlandsona/elm-store-pattern/pkg/api"
	"github.com/erlandsona/elm-store-pattern/pkg/live"
	"github.com/erlandsona/elm-store-pattern/pkg/metrics"
	"github.com/erlandsona/elm-store-pattern/pkg/program"
	"github.com/erlandsona/elm-store-pattern/pkg/store"
	"github.com/erlandsona/elm-store-pattern/pkg/toast"
)

func watchCmd() *cobra.Command {
	var (
		apiURL string
		noLive bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a store client against a content API",
		Long: `Fetch posts and users from a content API, keep the store cache
warm, and print notifications as the store changes. With the live feed
enabled, posts created elsewhere are merged into the cache as they
arrive.

Examples:
  elmstore watch
  elmstore watch --api=http://localhost:8080
  elmstore watch --no-live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(apiURL, noLive)
		},
	}

	cmd.Flags().StringVarP(&apiURL, "api", "a", "", "Content API base URL (default from elmstore.json)")
	cmd.Flags().BoolVar(&noLive, "no-live", false, "Disable the live event feed")

	return cmd
}

func runWatch(apiURL string, noLive bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
		cfg.Live.URL = ""
	}
	if noLive {
		cfg.Live.Enabled = false
	}

	client, err := api.New(cfg.API.BaseURL)
	if err != nil {
		return err
	}

	tray := toast.NewTray()
	prog := program.New(client,
		program.WithMetrics(metrics.New()),
		program.WithTray(tray),
		program.OnChange(printStore),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- prog.Run(ctx) }()

	if cfg.Live.Enabled {
		feed := live.New(cfg.LiveURL(), prog.Dispatch)
		go feed.Run(ctx)
	}

	info("Watching %s", cfg.API.BaseURL)
	prog.Dispatch(store.FetchPosts{})
	prog.Dispatch(store.FetchUsers{})

	// Surface toasts as they appear.
	go printToasts(ctx, tray)

	err = <-done
	if err == context.Canceled {
		return nil
	}
	return err
}

func printStore(s store.Store) {
	posts := s.Posts.State()
	users := s.Users.State()
	fmt.Printf("  posts: %-13s users: %-13s images: %d\n", posts, users, s.Images.Len())
}

func printToasts(ctx context.Context, tray *toast.Tray) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	seen := make(map[int]bool)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, tst := range tray.Active() {
				if seen[tst.ID] {
					continue
				}
				seen[tst.ID] = true
				switch tst.Level {
				case toast.LevelError:
					errorMsg("%s", tst.Message)
				case toast.LevelSuccess:
					success("%s", tst.Message)
				default:
					info("%s", tst.Message)
				}
			}
		}
	}
}
