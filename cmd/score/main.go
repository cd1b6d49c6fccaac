// Package main provides the entry point for the race scoring service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/database"
	"github.com/yourusername/race-ranker/internal/fetch"
	"github.com/yourusername/race-ranker/internal/health"
	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/metrics"
	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/repository"
	"github.com/yourusername/race-ranker/internal/scheduler"
	"github.com/yourusername/race-ranker/internal/scoring"
	"github.com/yourusername/race-ranker/internal/service"
	"github.com/yourusername/race-ranker/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	inputPath  string
	daemonMode bool
	healthPort int

	cfg    *config.Config
	appLog *logrus.Logger
	svc    *service.RaceScorerService
	files  *store.JSONStore
	db     *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Race JSON file or directory of race JSON files")
	rootCmd.Flags().BoolVarP(&daemonMode, "daemon", "d", false, "Run on the configured cron schedule instead of once")
	rootCmd.Flags().IntVar(&healthPort, "health-port", 8080, "Port for health check endpoints in daemon mode")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "File to write the fetched page to (stdout when empty)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
}

var rootCmd = &cobra.Command{
	Use:   "score",
	Short: "Score racecards and rank runners",
	Long: `Scores every runner in a racecard on a 0-100 scale from market odds,
ratings, form, suitability, freshness, course/distance record, connections
and market expectation, then ranks the field and emits picks with a
confidence band.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if daemonMode {
			return runDaemon()
		}
		return runOnce()
	},
}

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a racecard page over the rate-limited transport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		client := fetch.NewClient(cfg.Fetch, appLog)
		html, err := client.FetchHTML(ctx, args[0])
		if err != nil {
			return err
		}

		if fetchOutput == "" {
			fmt.Print(html)
			return nil
		}
		if err := os.WriteFile(fetchOutput, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fetchOutput, err)
		}
		appLog.WithFields(logrus.Fields{
			"url":   args[0],
			"bytes": len(html),
			"file":  fetchOutput,
		}).Info("Page fetched")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("score %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	if cfg.IsProduction() {
		appLog.SetFormatter(&logrus.JSONFormatter{})
	}

	engine, err := scoring.NewEngine(cfg.Scoring, appLog)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	var resultStore service.ResultStore
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		repo := repository.NewPostgresScoredRaceRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
		resultStore = repo
	}

	cacheTTL := time.Duration(cfg.Scoring.ResultCacheTTL) * time.Second
	svc = service.NewRaceScorerService(engine, cacheTTL, resultStore, appLog)
	files = store.NewJSONStore(cfg.Output.ScoredDir, cfg.Output.WebDir, appLog)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		go serveMetrics()
	}

	return nil
}

func serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Metrics server stopped")
	}
}

func runOnce() error {
	if inputPath == "" {
		return fmt.Errorf("--input is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	defer closeDB()

	paths, err := collectInputFiles(inputPath)
	if err != nil {
		return err
	}

	var failed int
	for _, path := range paths {
		if err := scoreFile(ctx, path); err != nil {
			appLog.WithError(err).WithField("file", path).Error("Failed to score race")
			failed++
		}
	}

	appLog.WithFields(logrus.Fields{
		"races":  len(paths),
		"failed": failed,
	}).Info("Scoring run complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d races failed", failed, len(paths))
	}
	return nil
}

func runDaemon() error {
	if !cfg.Schedule.Enabled {
		return fmt.Errorf("daemon mode requires schedule.enabled in configuration")
	}
	if inputPath == "" {
		return fmt.Errorf("--input is required")
	}
	defer closeDB()

	sched := scheduler.NewScheduler(appLog)
	err := sched.ScheduleScoringRun(cfg.Schedule.Cron, func(ctx context.Context) error {
		paths, err := collectInputFiles(inputPath)
		if err != nil {
			return err
		}
		for _, path := range paths {
			if err := scoreFile(ctx, path); err != nil {
				appLog.WithError(err).WithField("file", path).Error("Failed to score race")
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to schedule scoring run: %w", err)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	appLog.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Running in daemon mode")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthSrv := health.NewServer(cfg.App.Name, Version, healthPort, appLog)
	if db != nil {
		healthSrv.AddCheck("database", db.Ping)
	}
	healthSrv.AddCheck("scheduler", func(context.Context) error {
		if !sched.IsRunning() {
			return fmt.Errorf("scheduler not running")
		}
		return nil
	})
	if err := healthSrv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	healthSrv.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down")
	healthSrv.SetReady(false)
	return sched.Stop()
}

func closeDB() {
	if db != nil {
		db.Close()
	}
}

// collectInputFiles accepts either a single JSON file or a directory and
// returns the race files to score.
func collectInputFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", path, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(path, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no race JSON files found in %s", path)
	}
	return paths, nil
}

func scoreFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read race file: %w", err)
	}

	var race models.RaceData
	if err := json.Unmarshal(data, &race); err != nil {
		return fmt.Errorf("failed to parse race file: %w", err)
	}

	result, err := svc.ScoreRace(ctx, &race)
	if err != nil {
		return fmt.Errorf("failed to score race: %w", err)
	}

	if _, err := files.SaveScored(result.RaceID, result); err != nil {
		return err
	}
	if _, err := files.SaveWeb(result.RaceID, svc.BuildWebPayload(result)); err != nil {
		return err
	}

	appLog.WithFields(logrus.Fields{
		"race_id":    result.RaceID,
		"top_pick":   topPickName(result),
		"confidence": result.Confidence.Band,
	}).Info("Race scored")
	return nil
}

func topPickName(result *models.RaceResult) string {
	if result.Picks.TopPick == nil {
		return ""
	}
	return result.Picks.TopPick.RunnerName
}
