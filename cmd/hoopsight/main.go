// Package main provides the entry point for the hoopsight prediction pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hoopsight/internal/config"
	"github.com/yourusername/hoopsight/internal/database"
	"github.com/yourusername/hoopsight/internal/datasource"
	"github.com/yourusername/hoopsight/internal/engine/prediction"
	"github.com/yourusername/hoopsight/internal/engine/props"
	"github.com/yourusername/hoopsight/internal/engine/rating"
	"github.com/yourusername/hoopsight/internal/health"
	"github.com/yourusername/hoopsight/internal/logger"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
	"github.com/yourusername/hoopsight/internal/scheduler"
	"github.com/yourusername/hoopsight/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	dateFlag   string
	seasonFlag int

	cfg    *config.Config
	appLog *logrus.Logger
	db     *database.DB
	repos  *repository.Repositories

	statsProvider datasource.StatsProvider
	oddsProvider  datasource.OddsProvider

	ingestionSvc  *service.IngestionService
	ratingSvc     *service.RatingService
	predictionSvc *service.PredictionService
	valueSvc      *service.ValueService
	propsSvc      *service.PropsService
	accuracySvc   *service.AccuracyService
)

var rootCmd = &cobra.Command{
	Use:   "hoopsight",
	Short: "Basketball game prediction and betting value pipeline",
	Long: `Hoopsight ingests game results and market odds, maintains Elo-style
team ratings, predicts upcoming games, and flags mispriced markets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	refreshCmd.Flags().IntVar(&refreshDays, "days", 7, "How many trailing days of games to refresh")
	refreshCmd.Flags().BoolVar(&refreshProps, "props", true, "Also refresh prop lines and player averages")

	predictCmd.Flags().StringVar(&dateFlag, "date", "", "Slate date (YYYY-MM-DD, defaults to today)")
	predictCmd.Flags().BoolVar(&predictValue, "value", true, "Scan markets for value after predicting")

	propsCmd.Flags().StringVar(&dateFlag, "date", "", "Slate date (YYYY-MM-DD, defaults to today)")

	valueCmd.Flags().StringVar(&dateFlag, "date", "", "Slate date (YYYY-MM-DD, defaults to today)")

	ratingsCmd.Flags().IntVar(&seasonFlag, "season", 0, "Season year (defaults to configured season)")
	ratingsCmd.Flags().BoolVar(&ratingsRegress, "regress", false, "Apply preseason regression toward the mean instead of rebuilding")

	accuracyCmd.Flags().IntVar(&accuracyDays, "days", 30, "How many trailing days of predictions to grade")

	rootCmd.AddCommand(refreshCmd, predictCmd, valueCmd, propsCmd, ratingsCmd, accuracyCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

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

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("Hoopsight starting")

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	dsLog := stdlog.New(os.Stdout, "datasource: ", stdlog.LstdFlags)
	factory := datasource.NewFactory(cfg, dsLog)

	statsProvider, err = factory.NewStatsProvider()
	if err != nil {
		return fmt.Errorf("failed to build stats provider: %w", err)
	}
	oddsProvider, err = factory.NewOddsProvider()
	if err != nil {
		return fmt.Errorf("failed to build odds provider: %w", err)
	}

	ingestionSvc = service.NewIngestionService(statsProvider, oddsProvider, repos, appLog)
	ratingSvc = service.NewRatingService(repos.Team, repos.Game, statsProvider, cfg.Prediction.HomeAdvantage, appLog)
	predictionSvc = service.NewPredictionService(repos.Team, repos.Game, repos.Prediction, repos.Prop, service.PredictionOptions{
		SeasonYear:        cfg.Prediction.SeasonYear,
		HomeAdvantage:     cfg.Prediction.HomeAdvantage,
		FormWindow:        cfg.Prediction.FormWindow,
		PersistBreakdowns: cfg.Prediction.PersistBreakdowns,
	}, appLog)
	valueSvc = service.NewValueService(repos.Team, repos.Odds, repos.ValueSignal, service.ValueOptions{
		Bankroll:               cfg.Betting.Bankroll,
		MaxStakePerBet:         cfg.Betting.MaxStakePerBet,
		MinConfidenceThreshold: cfg.Betting.MinConfidenceThreshold,
	}, appLog)
	propsSvc = service.NewPropsService(repos.Team, repos.Game, repos.Prop, appLog)
	accuracySvc = service.NewAccuracyService(repos.Game, repos.Prediction, repos.Odds, appLog)

	return nil
}

func slateDate() (time.Time, error) {
	if dateFlag == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", dateFlag)
}

var (
	refreshDays  int
	refreshProps bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch recent games, odds, and player averages into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		now := time.Now().UTC()
		start := now.AddDate(0, 0, -refreshDays)

		games, err := ingestionSvc.RefreshGames(ctx, start, now)
		if err != nil {
			return fmt.Errorf("game refresh failed: %w", err)
		}
		odds, err := ingestionSvc.RefreshOdds(ctx, now)
		if err != nil {
			return fmt.Errorf("odds refresh failed: %w", err)
		}

		propLines, averages := 0, 0
		if refreshProps {
			if propLines, err = ingestionSvc.RefreshPropLines(ctx, now); err != nil {
				return fmt.Errorf("prop lines refresh failed: %w", err)
			}
			if averages, err = ingestionSvc.RefreshPlayerAverages(ctx); err != nil {
				return fmt.Errorf("player averages refresh failed: %w", err)
			}
		}

		appLog.WithFields(logrus.Fields{
			"games":           games,
			"odds_lines":      odds,
			"prop_lines":      propLines,
			"player_averages": averages,
		}).Info("Refresh complete")
		return nil
	},
}

var predictValue bool

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict every scheduled game on a slate and scan for value",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		date, err := slateDate()
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		results, err := predictionSvc.PredictSlate(ctx, date)
		if err != nil {
			return fmt.Errorf("slate prediction failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Printf("No scheduled games on %s\n", date.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("\n=== Predictions for %s ===\n", date.Format("2006-01-02"))
		for _, r := range results {
			fmt.Printf("%s @ %s: %s wins %.1f%% (spread %+.1f, confidence %.2f)\n",
				r.AwayTeam.Code, r.HomeTeam.Code,
				winnerCode(r), r.Prediction.HomeWinProbability*100,
				r.Prediction.PredictedSpread, r.Prediction.Confidence)
			if r.HomeTeam.NetRating != 0 || r.AwayTeam.NetRating != 0 {
				margin := rating.NetRatingDifferential(r.HomeTeam.NetRating, r.AwayTeam.NetRating)
				fmt.Printf("  net ratings favor %s by %.1f\n", favoredCode(r, margin), math.Abs(margin))
			}
		}

		if !predictValue {
			return nil
		}

		signals, err := valueSvc.AnalyzeSlate(ctx, results)
		if err != nil {
			return fmt.Errorf("value analysis failed: %w", err)
		}
		if len(signals) == 0 {
			fmt.Println("\nNo value found on the board.")
			return nil
		}

		fmt.Printf("\n=== Value signals (%d) ===\n", len(signals))
		for _, sig := range signals {
			fmt.Printf("%s %s %+d at %s: EV %+.3f, edge %.1f%%, stake %s\n",
				sig.BetType, sig.LineDirection, sig.Odds, sig.Bookmaker,
				sig.ExpectedValue, sig.Edge*100, sig.Stake.StringFixed(2))
		}
		return nil
	},
}

func winnerCode(r service.GamePredictionResult) string {
	if r.Prediction.PredictedWinner == r.Prediction.HomeTeamID {
		return r.HomeTeam.Code
	}
	return r.AwayTeam.Code
}

func favoredCode(r service.GamePredictionResult, margin float64) string {
	if margin >= 0 {
		return r.HomeTeam.Code
	}
	return r.AwayTeam.Code
}

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Scan current market lines against stored predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		date, err := slateDate()
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		games, err := repos.Game.GetByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to load slate: %w", err)
		}

		var results []service.GamePredictionResult
		for _, game := range games {
			stored, err := repos.Prediction.GetByGameID(ctx, game.ID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					continue
				}
				return fmt.Errorf("failed to load prediction: %w", err)
			}

			home, err := repos.Team.GetByID(ctx, game.HomeTeamID)
			if err != nil {
				return fmt.Errorf("failed to load home team: %w", err)
			}
			away, err := repos.Team.GetByID(ctx, game.AwayTeamID)
			if err != nil {
				return fmt.Errorf("failed to load away team: %w", err)
			}

			winner := home.Code
			if stored.PredictedWinnerID == away.ID {
				winner = away.Code
			}

			results = append(results, service.GamePredictionResult{
				Game:     game,
				HomeTeam: home,
				AwayTeam: away,
				Prediction: prediction.GamePrediction{
					HomeTeamID:         home.Code,
					AwayTeamID:         away.Code,
					HomeWinProbability: stored.HomeWinProbability,
					AwayWinProbability: stored.AwayWinProbability,
					PredictedSpread:    stored.PredictedSpread,
					Confidence:         stored.Confidence,
					PredictedWinner:    winner,
				},
			})
		}

		if len(results) == 0 {
			fmt.Printf("No stored predictions for %s; run predict first\n", date.Format("2006-01-02"))
			return nil
		}

		signals, err := valueSvc.AnalyzeSlate(ctx, results)
		if err != nil {
			return fmt.Errorf("value analysis failed: %w", err)
		}
		if len(signals) == 0 {
			fmt.Println("No value found on the board.")
			return nil
		}

		fmt.Printf("\n=== Value signals (%d) ===\n", len(signals))
		for _, sig := range signals {
			fmt.Printf("%s %s %+d at %s: EV %+.3f, edge %.1f%%, stake %s\n",
				sig.BetType, sig.LineDirection, sig.Odds, sig.Bookmaker,
				sig.ExpectedValue, sig.Edge*100, sig.Stake.StringFixed(2))
		}
		return nil
	},
}

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Project player props against posted lines for a slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		date, err := slateDate()
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		games, err := repos.Game.GetByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to load slate: %w", err)
		}

		total := 0
		for _, game := range games {
			results, err := propsSvc.PredictGameProps(ctx, game)
			if err != nil {
				return fmt.Errorf("prop projection failed: %w", err)
			}
			for _, r := range results {
				p := r.Prediction
				if p.Recommendation == props.RecommendPass {
					continue
				}
				total++
				fmt.Printf("%s %s %.1f (%s): projected %.1f, %s %.1f%% (edge %.1f%%)\n",
					p.PlayerID, p.StatType, p.Line, r.Line.Bookmaker,
					p.PredictedValue, p.Recommendation,
					p.OverProbability*100, p.EdgePercent)
			}
		}

		if total == 0 {
			fmt.Printf("No actionable props on %s\n", date.Format("2006-01-02"))
		}
		return nil
	},
}

var ratingsRegress bool

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Rebuild season ratings from stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		season := seasonFlag
		if season == 0 {
			season = cfg.Prediction.SeasonYear
		}

		if ratingsRegress {
			if err := ratingSvc.ApplySeasonRegression(ctx); err != nil {
				return fmt.Errorf("season regression failed: %w", err)
			}
			appLog.Info("Season regression applied")
			return nil
		}

		if err := ratingSvc.RebuildSeason(ctx, season); err != nil {
			return fmt.Errorf("ratings rebuild failed: %w", err)
		}
		if err := ratingSvc.RefreshTeamProfiles(ctx, season); err != nil {
			return fmt.Errorf("team profile refresh failed: %w", err)
		}
		appLog.WithField("season", season).Info("Ratings rebuilt")
		return nil
	},
}

var accuracyDays int

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Grade past predictions against final scores and closing lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		end := time.Now().UTC()
		start := end.AddDate(0, 0, -accuracyDays)

		report, err := accuracySvc.EvaluateRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("accuracy evaluation failed: %w", err)
		}

		fmt.Printf("\n=== Accuracy report (%s to %s) ===\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Printf("Games evaluated:  %d\n", report.GamesEvaluated)
		fmt.Printf("Winner accuracy:  %.1f%% (%d correct)\n", report.WinnerAccuracy*100, report.WinnerCorrect)
		fmt.Printf("Spread record:    %d-%d-%d (%.1f%% ATS)\n",
			report.SpreadWins, report.SpreadLosses, report.SpreadPushes, report.SpreadAccuracy*100)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled pipeline with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		metrics.InitRegistry()
		metrics.UpdateBankroll(cfg.Betting.Bankroll)

		sched := scheduler.NewScheduler(ingestionSvc, predictionSvc, valueSvc, ratingSvc, cfg.Prediction.SeasonYear, appLog)

		if cfg.Scheduler.Enabled {
			if err := sched.ScheduleRefresh(cfg.Scheduler.RefreshCron); err != nil {
				return err
			}
			if err := sched.SchedulePredict(cfg.Scheduler.PredictCron); err != nil {
				return err
			}
			if err := sched.ScheduleRatingsRebuild(cfg.Scheduler.RatingsRebuildCron); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
		} else {
			appLog.Warn("Scheduler disabled; serving health endpoints only")
		}

		var metricsServer *http.Server
		if cfg.Metrics.Enabled {
			metricsServer = &http.Server{
				Addr:         cfg.Metrics.Address,
				Handler:      metrics.Handler(),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			go func() {
				appLog.WithField("address", cfg.Metrics.Address).Info("Metrics server starting")
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					appLog.WithError(err).Error("Metrics server error")
				}
			}()
		}

		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        cfg.Health.Port,
			Logger:      appLog,
			DB:          db,
			Scheduler:   sched,
		})
		if err := healthServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		healthServer.SetReady(true)

		appLog.WithFields(logrus.Fields{
			"scheduler": cfg.Scheduler.Enabled,
			"next_run":  sched.GetNextRun(),
		}).Info("Hoopsight pipeline running")

		<-ctx.Done()
		appLog.Info("Shutdown signal received")

		if sched.IsRunning() {
			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Error stopping scheduler")
			}
		}
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				appLog.WithError(err).Error("Error stopping metrics server")
			}
		}

		appLog.Info("Hoopsight shut down")
		return nil
	},
}
