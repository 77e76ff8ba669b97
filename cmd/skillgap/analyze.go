package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skillgap-ai/skillgap-api/internal/catalog"
	"github.com/skillgap-ai/skillgap-api/internal/config"
	"github.com/skillgap-ai/skillgap-api/internal/db"
	"github.com/skillgap-ai/skillgap-api/internal/ingest"
	"github.com/skillgap-ai/skillgap-api/internal/pipeline"
	"github.com/skillgap-ai/skillgap-api/internal/roles"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full gap analysis end-to-end",
	Long: `Orchestrates the entire analysis: ingestion -> extraction -> gap scoring -> course recommendation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeResume      string
	analyzeJobDesc     string
	analyzeJobURL      string
	analyzeRole        string
	analyzeBaseline    int
	analyzeVerbose     bool
	analyzeDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text file")
	analyzeCmd.Flags().StringVarP(&analyzeJobDesc, "job-description", "j", "", "Inline job description text (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job-description)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "t", "", "Target role ID from the role catalog")
	analyzeCmd.Flags().IntVar(&analyzeBaseline, "baseline", 0, "Assumed 0-100 level for extracted skills")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed output")

	// Database URL for course data and result persistence
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = analyzeResume
	}
	if cmd.Flags().Changed("job-description") {
		cfg.JobDescription = analyzeJobDesc
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("role") {
		cfg.TargetRole = analyzeRole
	}
	if cmd.Flags().Changed("baseline") {
		cfg.BaselineLevel = analyzeBaseline
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{})

	// Step 4: Validate required fields
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.ResumePath == "" && cfg.JobDescription == "" && cfg.JobURL == "" {
		return fmt.Errorf("at least one of --resume, --job-description or --job-url must be provided (via flag or config)")
	}

	// Step 5: Database URL handling (optional; without it results are not
	// persisted and courses come from the seed data)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	roleCatalog, err := roles.Load()
	if err != nil {
		return fmt.Errorf("failed to load role catalog: %w", err)
	}

	opts := pipeline.RunOptions{
		ResumePath:     cfg.ResumePath,
		JobDescription: cfg.JobDescription,
		JobURL:         cfg.JobURL,
		TargetRole:     cfg.TargetRole,
		BaselineLevel:  cfg.BaselineLevel,
		Roles:          roleCatalog,
		Fetcher:        ingest.NewFetcher(),
		Verbose:        cfg.Verbose,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		opts.Database = database
		opts.Repo = catalog.NewPostgresRepository(database.Pool())
	} else {
		opts.Repo = catalog.NewMemoryRepository(nil, nil)
	}

	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("Readiness score: %d/100 (%d skills, %d critical gaps)\n",
		result.Summary.ReadinessScore, result.Summary.TotalSkills, result.Summary.CriticalGaps)
	fmt.Printf("Recommended courses: %d\n", len(result.Recommendations))
	for i, c := range result.Recommendations {
		if i >= 5 {
			break
		}
		fmt.Printf("  %d. %s (%s)\n", i+1, c.Title, c.Provider)
	}

	return nil
}
