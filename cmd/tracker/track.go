package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/scheduler"
)

var (
	flagTargetID int64
	flagSiteID   int64
	flagNotify   bool
)

func init() {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Run one tracking pass and print what it found",
		RunE:  runTrack,
	}
	trackCmd.Flags().Int64Var(&flagTargetID, "target", 0, "limit the run to one target id")
	trackCmd.Flags().Int64Var(&flagSiteID, "site", 0, "limit the run to one site id")
	trackCmd.Flags().BoolVar(&flagNotify, "notify", false, "send notifications for new chapters")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connectDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	n, closeNotifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	tracker := buildTracker(cfg, db, n, logger)
	sched := scheduler.NewScheduler(tracker, cfg.Tracking.Interval, logger)

	var targetID, siteID *int64
	if flagTargetID > 0 {
		targetID = &flagTargetID
	}
	if flagSiteID > 0 {
		siteID = &flagSiteID
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	job, err := sched.RunOnce(ctx, targetID, siteID, flagNotify)
	if err != nil {
		return fmt.Errorf("tracking run interrupted: %w", err)
	}

	printJob(job)
	if job.Status == domain.JobFailed {
		os.Exit(1)
	}
	return nil
}

func printJob(job domain.TrackingJob) {
	fmt.Printf("Status:    %s\n", job.Status)
	fmt.Printf("Processed: %d/%d mappings\n", job.ProcessedMappings, job.TotalMappings)
	fmt.Printf("New:       %d chapter(s)\n", job.NewChapters)

	for _, c := range job.Found {
		title := ""
		if c.Title != nil {
			title = " " + *c.Title
		}
		fmt.Printf("  %s ch. %s%s (%s) %s\n", c.TargetTitle, c.Number, title, c.SiteName, c.URL)
	}

	if len(job.Errors) > 0 {
		fmt.Printf("Errors:    %d\n", len(job.Errors))
		for _, e := range job.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
}
