package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/config"
	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/tui"
)

type flags struct {
	apiURL   string
	locale   string
	pageSize string
	verbose  bool

	search    string
	merchType string
	sortBy    string
	sortOrder string
	view      string
	page      int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "explore",
		Short:         "Browse the merchant directory from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if f.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().StringVar(&f.apiURL, "api", "", "merchants API base URL (or set API_URL)")
	root.PersistentFlags().StringVar(&f.locale, "locale", i18n.Default, "UI language: en or id")
	root.PersistentFlags().StringVar(&f.pageSize, "page-size", "", "results per page (or set PAGE_SIZE)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&f.search, "search", "s", "", "search term")
	root.PersistentFlags().StringVarP(&f.merchType, "type", "t", "", "merchant type filter")
	root.PersistentFlags().StringVar(&f.sortBy, "sort-by", "", "sort by name or rating")
	root.PersistentFlags().StringVar(&f.sortOrder, "sort-order", "", "asc or desc")
	root.PersistentFlags().StringVar(&f.view, "view", "", "grid or list")
	root.PersistentFlags().IntVarP(&f.page, "page", "p", 1, "page number")

	root.AddCommand(&cobra.Command{
		Use:   "browse",
		Short: "Open the interactive explore screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, f)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print one page of merchants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, f)
		},
	})
	return root
}

func (f *flags) query() url.Values {
	values := url.Values{}
	for key, value := range map[string]string{
		querystate.KeySearch:    f.search,
		querystate.KeyType:      f.merchType,
		querystate.KeySortBy:    f.sortBy,
		querystate.KeySortOrder: f.sortOrder,
		querystate.KeyView:      f.view,
	} {
		if value = strings.TrimSpace(value); value != "" {
			values.Set(key, value)
		}
	}
	if f.page > 1 {
		values.Set(querystate.KeyPage, strconv.Itoa(f.page))
	}
	return values
}

func (f *flags) setup() (*config.Config, *service.ExploreService, error) {
	if !i18n.Supported(f.locale) {
		return nil, nil, fmt.Errorf("unsupported locale %q", f.locale)
	}
	cfg, err := config.LoadWith(map[string]string{"API_URL": f.apiURL, "PAGE_SIZE": f.pageSize})
	if err != nil {
		return nil, nil, err
	}
	api := apiclient.New(nil, cfg.APIURL, cfg.APIAudience, cfg.APITimeout)
	return cfg, service.NewExploreService(api), nil
}

func runBrowse(cmd *cobra.Command, f *flags) error {
	cfg, explore, err := f.setup()
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal
	log.Logger = zerolog.Nop()

	model := tui.New(explore, tui.Options{
		Locale:   f.locale,
		Defaults: querystate.Defaults{PageSize: cfg.PageSize},
		Query:    f.query(),
		Debounce: cfg.Debounce,
		Timeout:  cfg.APITimeout,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	model.Attach(program.Send)
	_, err = program.Run()
	return err
}

func runList(cmd *cobra.Command, f *flags) error {
	cfg, explore, err := f.setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	q := querystate.Decode(f.query(), querystate.Defaults{PageSize: cfg.PageSize})
	result, err := explore.Explore(ctx, q, f.locale)
	if err != nil {
		return fmt.Errorf("list merchants: %w", err)
	}
	return printResult(cmd.OutOrStdout(), i18n.MustLoad(), f.locale, result)
}

func printResult(w io.Writer, catalog *i18n.Catalog, locale string, result *service.ExploreResult) error {
	if result.Empty {
		_, err := fmt.Fprintln(w, catalog.T(locale, "explore.empty.title"))
		return err
	}
	fmt.Fprintln(w, catalog.T(locale, "explore.results", "total", result.Meta.Total))
	for _, item := range result.Items {
		kind := ""
		if item.PrimaryType != nil {
			kind = *item.PrimaryType
		}
		rating := "-"
		if item.Rating != nil {
			rating = strconv.FormatFloat(*item.Rating, 'f', 1, 64)
		}
		fmt.Fprintf(w, "%6d  %-40s  %-20s  %s\n", item.ID, item.Title(), kind, rating)
	}
	_, err := fmt.Fprintln(w, tui.RenderWindow(result.Window, result.Current))
	return err
}
