package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/facebookgo/inject"
	"github.com/getsentry/raven-go"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/tryanzu/storyfeed/board/feed"
	"github.com/tryanzu/storyfeed/core/config"
	"github.com/tryanzu/storyfeed/core/paginate"
	"github.com/tryanzu/storyfeed/deps"
	"github.com/tryanzu/storyfeed/internal/dal"
	"github.com/tryanzu/storyfeed/modules/api"
	"github.com/tryanzu/storyfeed/modules/exceptions"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("storyfeed")

func main() {
	deps.Bootstrap()

	rulesFile := deps.Container.Config().UString("feed.rules", "./feed.toml")
	if err := config.Bootstrap(rulesFile); err != nil {
		log.Warningf("feed rules not loaded, using defaults	file=%s err=%v", rulesFile, err)
		config.C = config.New()
	}

	// Graph main object (used to inject dependencies)
	var g inject.Graph

	errorService, err := raven.NewClient(deps.Container.Config().UString("sentry.dsn"), map[string]string{"environment": deps.ENV})
	if err != nil {
		log.Warningf("sentry disabled	err=%v", err)
		errorService, _ = raven.NewClient("", nil)
	}
	store := feed.NewMongoStore(deps.Container)
	reporter := exceptions.ExceptionsModule{ErrorService: errorService}

	err = g.Provide(
		&inject.Object{Value: deps.Container.Config(), Complete: true},
		&inject.Object{Value: errorService, Complete: true},
		&inject.Object{Value: config.C, Complete: true},
		&inject.Object{Value: &store, Complete: true},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cmdAPI = &cobra.Command{
		Use:   "api [port]",
		Short: "Starts API web server",
		Long: `Starts API web server listening
in the specified port (default :3200)
`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			port := ":3200"
			if len(args) == 1 {
				port = args[0]
			}

			var module api.Module
			module.Populate(&g)
			module.Run(port)
		},
	}

	var (
		days     int
		page     int
		limit    int
		sort     string
		types    string
		contents string
	)
	var cmdFeed = &cobra.Command{
		Use:   "feed <viewer> <category>",
		Short: "Prints a viewer feed",
		Long: `Prints one page of a viewer feed as JSON.
Without --days the viewer watermark for the category is used.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer reporter.Recover(map[string]string{"command": "feed"})
			if !bson.IsObjectIdHex(args[0]) {
				return fmt.Errorf("invalid viewer id %q", args[0])
			}

			ctx := context.Background()
			viewer, err := store.Viewer(ctx, bson.ObjectIdHex(args[0]))
			if err != nil {
				return err
			}

			rules := config.C.Rules()
			engine := feed.New(store, feed.Options{Rules: rules})
			filters := feed.Filters{Types: split(types), Contents: split(contents)}

			var entries []feed.Entry
			if days > 0 {
				entries, err = engine.ActivitiesByDays(ctx, args[1], viewer, days, filters)
			} else {
				entries, err = engine.Activities(ctx, args[1], viewer, filters)
			}
			if err != nil {
				return err
			}

			if limit < 1 {
				limit = rules.PageLimit
			}
			result := paginate.Paginate(entries, paginate.Options{Page: page, Limit: limit, Sort: paginate.ParseSort(sort)})
			return printJSON(result)
		},
	}
	cmdFeed.Flags().IntVar(&days, "days", 0, "day window, watermark mode when zero")
	cmdFeed.Flags().IntVar(&page, "page", 1, "page number")
	cmdFeed.Flags().IntVar(&limit, "limit", 0, "page size, rules page_limit when zero")
	cmdFeed.Flags().StringVar(&sort, "sort", "", "sort as field[:order]")
	cmdFeed.Flags().StringVar(&types, "types", "", "comma separated activity tags")
	cmdFeed.Flags().StringVar(&contents, "contents", "", "comma separated content tags")

	var cmdSeed = &cobra.Command{
		Use:   "seed",
		Short: "Inserts demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer reporter.Recover(map[string]string{"command": "seed"})
			viewer, err := dal.Seed(deps.Container)
			if err != nil {
				return err
			}
			log.Infof("demo data inserted, try: feed %s collaboration --days 7", viewer.Hex())
			return nil
		},
	}

	var rootCmd = &cobra.Command{Use: "storyfeed"}
	rootCmd.AddCommand(cmdAPI)
	rootCmd.AddCommand(cmdFeed)
	rootCmd.AddCommand(cmdSeed)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func split(raw string) []string {
	list := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
