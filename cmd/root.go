package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lecterndev/lectern/catalog"
	"github.com/lecterndev/lectern/config"
	"github.com/lecterndev/lectern/filter"
	"github.com/lecterndev/lectern/transcode"
)

var (
	cfgFile         string
	cfg             *config.Config
	logger          zerolog.Logger
	catalogClient   *catalog.Client
	transcodeClient *transcode.Client

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "A client for browsing a lecture catalog and managing video uploads",
	Long: `lectern is a CLI for a remote lecture service. It lists the published
catalog, shows individual lecture details by slug, uploads videos for
transcoding and tracks transcoding jobs.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create catalog client
	catalogClient, err = catalog.NewClient(cfg.Server.URL, logger,
		catalog.WithTimeout(cfg.Server.Timeout),
		catalog.WithUserAgent("lectern/"+version))
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	// Create transcode client against the same service
	transcodeClient, err = transcode.NewClient(cfg.Server.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create transcode client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when the config allows it and stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published lectures",
	Long:  `List all lectures in the remote catalog, optionally narrowed by a filter expression.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runList(cmd *cobra.Command, args []string) error {
	// Determine filter expression
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	// Parse filter
	matchFunc, err := filter.ParseAndCreateFilter(expr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := context.Background()
	lectures, err := catalogClient.ListLectures(ctx)
	if err != nil {
		return err
	}

	if expr != "" {
		logger.Debug().Str("filter", expr).Msg("Applying filter to catalog")
		lectures = filter.Apply(lectures, matchFunc)
	}

	// Display results
	if len(lectures) == 0 {
		fmt.Println("No lectures found.")
		return nil
	}

	lectureText := "lecture"
	if len(lectures) != 1 {
		lectureText = "lectures"
	}
	fmt.Printf("\nFound %d %s:\n", len(lectures), lectureText)
	fmt.Println(strings.Repeat("-", 80))

	for _, lecture := range lectures {
		fmt.Printf("• %s [%s]\n", lecture.Title, lecture.Slug)
		fmt.Printf("  Duration: %s  Published: %s  Views: %s\n",
			lecture.Duration, lecture.PublishedDate, lecture.Views)
		if len(lecture.KeyConcepts) > 0 {
			fmt.Printf("  Key concepts: %d\n", len(lecture.KeyConcepts))
		}
	}

	return nil
}

// getFilterExpression resolves the filter from flags or config presets
func getFilterExpression() (string, error) {
	if filterExpr != "" && preset != "" {
		return "", fmt.Errorf("cannot use both --filter and --preset")
	}

	if preset != "" {
		expr, ok := cfg.Filter[preset]
		if !ok {
			return "", fmt.Errorf("preset %q not found in config", preset)
		}
		return expr, nil
	}

	return filterExpr, nil
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one lecture by slug",
	Long:  `Fetch and display a single lecture record, including its key-concept markers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lecture, err := catalogClient.GetLecture(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", lecture.Title)
	fmt.Println(strings.Repeat("=", len(lecture.Title)))
	fmt.Printf("Slug:       %s\n", lecture.Slug)
	fmt.Printf("Duration:   %s\n", lecture.Duration)
	fmt.Printf("Published:  %s\n", lecture.PublishedDate)
	fmt.Printf("Views:      %s\n", lecture.Views)
	fmt.Printf("Image:      %s\n", lecture.Image)
	fmt.Printf("\n%s\n", lecture.Description)

	if lecture.AISummary != "" {
		fmt.Printf("\nSummary:\n%s\n", lecture.AISummary)
	}

	if len(lecture.KeyConcepts) > 0 {
		fmt.Println("\nKey concepts:")
		for _, kc := range lecture.KeyConcepts {
			fmt.Printf("  %-8s %s\n", kc.Timestamp, kc.Title)
		}
	}

	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the lecture service",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Printf("Testing connection to %s... ", cfg.Server.URL)
	if err := catalogClient.TestConnection(ctx); err != nil {
		fmt.Println("✗ Failed")
		return err
	}
	fmt.Println("✓ OK")

	return nil
}
