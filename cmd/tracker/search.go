package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"manga_tracker/internal/scanlator"
)

var flagAdapter string

func init() {
	searchCmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search a scanlation site for a series and print its URL",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().StringVar(&flagAdapter, "adapter", "", "adapter id (one of: "+strings.Join(scanlator.IDs(), ", ")+")")
	_ = searchCmd.MarkFlagRequired("adapter")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctor, ok := scanlator.Resolve(flagAdapter)
	if !ok {
		return fmt.Errorf("unknown adapter %q (available: %s)", flagAdapter, strings.Join(scanlator.IDs(), ", "))
	}

	ctx := context.Background()

	pg, err := newPageFactory(cfg, logger).NewPage(ctx)
	if err != nil {
		return fmt.Errorf("acquire page: %w", err)
	}
	defer pg.Close()

	adapter := ctor(pg, logger)
	title := strings.Join(args, " ")

	results, err := adapter.Search(ctx, title)
	if err != nil {
		return fmt.Errorf("search %s: %w", adapter.Name(), err)
	}
	if len(results) == 0 {
		fmt.Printf("No results for %q on %s\n", title, adapter.Name())
		return nil
	}

	items := make([]string, 0, len(results))
	for _, r := range results {
		items = append(items, r.Title)
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Results on %s", adapter.Name()),
		Items: items,
		Size:  10,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("selection cancelled")
	}

	picked := results[idx]
	fmt.Println(picked.Title)
	fmt.Println(picked.URL)
	if picked.CoverURL != "" {
		fmt.Println(picked.CoverURL)
	}
	return nil
}
