package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lecterndev/lectern/transcode"
)

var (
	waitForJob   bool
	pollInterval time.Duration
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a video for transcoding",
	Long: `Upload a local video file to the lecture service. The service queues a
transcoding job and returns its ID; with --wait the command polls the
job until it completes.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the status of a transcoding job",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(statusCmd)

	uploadCmd.Flags().BoolVarP(&waitForJob, "wait", "w", false, "wait for the transcoding job to finish")
	uploadCmd.Flags().DurationVar(&pollInterval, "interval", 0, "poll interval when waiting (default 2s)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resp, err := transcodeClient.Upload(ctx, args[0])
	if err != nil {
		if errors.Is(err, transcode.ErrNotAVideo) {
			return fmt.Errorf("%s was rejected: %w", args[0], err)
		}
		return err
	}

	fmt.Printf("✓ %s\n", resp.Message)
	fmt.Printf("Job ID: %s\n", resp.JobID)

	shouldWait := waitForJob || cfg.Upload.Wait
	if !shouldWait {
		return nil
	}

	interval := pollInterval
	if interval <= 0 {
		interval = cfg.Upload.PollInterval
	}

	fmt.Println("Waiting for transcoding to finish...")
	status, err := transcodeClient.Wait(ctx, resp.JobID, interval)
	if err != nil {
		return fmt.Errorf("failed waiting for job %s: %w", resp.JobID, err)
	}

	printJobStatus(status)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	status, err := transcodeClient.Status(ctx, args[0])
	if err != nil {
		return err
	}

	printJobStatus(status)
	return nil
}

func printJobStatus(status *transcode.JobStatus) {
	fmt.Printf("Job:      %s\n", status.ID)
	fmt.Printf("File:     %s\n", status.Filename)
	fmt.Printf("Status:   %s\n", status.Status)
	fmt.Printf("Progress: %.0f%%\n", status.Progress)
	if len(status.Formats) > 0 {
		fmt.Printf("Formats:  %s\n", strings.Join(status.Formats, ", "))
	}
}
