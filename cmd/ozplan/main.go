package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ozplan/ozplan/internal/config"
	"github.com/ozplan/ozplan/internal/debtplan"
	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/forecast"
	"github.com/ozplan/ozplan/internal/output"
	"github.com/ozplan/ozplan/internal/storage"
	"github.com/ozplan/ozplan/internal/strategy"
	"github.com/ozplan/ozplan/internal/tax"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ozplan",
	Short: "Personal finance planning and advisory engine",
	Long:  "Debt repayment planning, multi-year forecasting and strategy recommendations over a financial snapshot",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "ozplan %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Println("plan file is valid")
	},
}

var debtplanCmd = &cobra.Command{
	Use:   "debtplan [plan-file]",
	Short: "Run the debt repayment planner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := mustLoad(args[0])
		if input.Planner == nil {
			log.Fatal("plan file has no planner section")
		}
		result, err := debtplan.RunDebtPlan(input.Snapshot.Loans, *input.Planner)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatDebtPlan(result))
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast [plan-file]",
	Short: "Project net worth under one scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := mustLoad(args[0])
		opts := forecastOptions(input)

		plan, err := blendedPlan(cmd, input)
		if err != nil {
			log.Fatal(err)
		}

		result, err := forecast.NewEngine().GenerateForecast(&input.Snapshot, opts.Overrides, opts.Scenario, opts.Horizon, plan)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatForecast(result))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare all three forecast scenarios",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := mustLoad(args[0])
		opts := forecastOptions(input)

		plan, err := blendedPlan(cmd, input)
		if err != nil {
			log.Fatal(err)
		}

		comparison, err := forecast.NewEngine().CompareScenarios(context.Background(), &input.Snapshot, opts.Overrides, opts.Horizon, plan)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatComparison(comparison))
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies [plan-file]",
	Short: "Generate strategy recommendations",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := mustLoad(args[0])

		var store strategy.RecommendationStore
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath != "" {
			sqliteStore, err := storage.NewSQLiteStore(dbPath)
			if err != nil {
				log.Fatal(err)
			}
			defer func() { _ = sqliteStore.Close() }()
			store = sqliteStore
		}

		forceRefresh, _ := cmd.Flags().GetBool("force-refresh")
		pipeline := strategy.NewPipeline(store, newLogger(cmd))
		result, err := pipeline.GenerateStrategies(context.Background(), &input.Snapshot, strategy.GenerateOptions{
			UserID:       input.Snapshot.UserID,
			ForceRefresh: forceRefresh,
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatRecommendations(result))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recommendations for a user",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore(cmd)
		defer func() { _ = store.Close() }()

		userID, _ := cmd.Flags().GetString("user")
		if userID == "" {
			log.Fatal("--user is required")
		}
		status, _ := cmd.Flags().GetString("status")
		withAlternatives, _ := cmd.Flags().GetBool("alternatives")

		recs, err := store.ListForUser(context.Background(), userID, domain.RecommendationStatus(status))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(output.FormatStoredRecommendations(recs, withAlternatives))
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept [recommendation-id]",
	Short: "Accept a pending recommendation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transitionRecommendation(cmd, args[0], true)
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss [recommendation-id]",
	Short: "Dismiss a pending recommendation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transitionRecommendation(cmd, args[0], false)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire stale pending recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustOpenStore(cmd)
		defer func() { _ = store.Close() }()

		daemon, _ := cmd.Flags().GetBool("daemon")
		if daemon {
			schedule, _ := cmd.Flags().GetString("schedule")
			sweeper := storage.NewExpirySweeper(store, newLogger(cmd))
			if err := sweeper.Start(schedule); err != nil {
				log.Fatal(err)
			}
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			sweeper.Stop()
			return
		}

		expired, err := store.ExpireStale(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("expired %d stale recommendations\n", expired)
	},
}

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Classify one income item under ATO taxability rules",
	Run: func(cmd *cobra.Command, args []string) {
		incomeType, _ := cmd.Flags().GetString("type")
		amountStr, _ := cmd.Flags().GetString("amount")
		frankingStr, _ := cmd.Flags().GetString("franking")
		subtype, _ := cmd.Flags().GetString("subtype")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			log.Fatalf("invalid amount %q: %v", amountStr, err)
		}
		franking := decimal.Zero
		if frankingStr != "" {
			if franking, err = decimal.NewFromString(frankingStr); err != nil {
				log.Fatalf("invalid franking percentage %q: %v", frankingStr, err)
			}
		}

		result := tax.DetermineTaxability(domain.IncomeContext{
			Type:              domain.IncomeType(incomeType),
			Amount:            amount,
			FrankingPercent:   franking,
			GovernmentSubtype: domain.GovernmentSubtype(subtype),
		})
		fmt.Print(output.FormatTaxability(result))
	},
}

func mustLoad(filename string) *config.PlanInput {
	input, err := config.NewInputParser().LoadFromFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	return input
}

func forecastOptions(input *config.PlanInput) config.ForecastOptions {
	if input.Forecast != nil {
		return *input.Forecast
	}
	return config.ForecastOptions{Scenario: domain.ScenarioDefault, Horizon: 30}
}

// blendedPlan runs the debt planner when --with-plan is set so strategic
// paydown flows into the projection.
func blendedPlan(cmd *cobra.Command, input *config.PlanInput) (*domain.DebtPlanResult, error) {
	withPlan, _ := cmd.Flags().GetBool("with-plan")
	if !withPlan {
		return nil, nil
	}
	if input.Planner == nil {
		return nil, fmt.Errorf("--with-plan requires a planner section in the plan file")
	}
	return debtplan.RunDebtPlan(input.Snapshot.Loans, *input.Planner)
}

func mustOpenStore(cmd *cobra.Command) *storage.SQLiteStore {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		log.Fatal("--db is required")
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	return store
}

func transitionRecommendation(cmd *cobra.Command, idArg string, accept bool) {
	store := mustOpenStore(cmd)
	defer func() { _ = store.Close() }()

	var id int64
	if _, err := fmt.Sscanf(idArg, "%d", &id); err != nil {
		log.Fatalf("invalid recommendation id %q", idArg)
	}

	if accept {
		notes, _ := cmd.Flags().GetString("notes")
		if err := store.Accept(context.Background(), id, notes); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("recommendation %d accepted\n", id)
		return
	}
	reason, _ := cmd.Flags().GetString("reason")
	if err := store.Dismiss(context.Background(), id, reason); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("recommendation %d dismissed\n", id)
}

func newLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func main() {
	forecastCmd.Flags().Bool("with-plan", false, "Blend the debt plan into the projection")
	compareCmd.Flags().Bool("with-plan", false, "Blend the debt plan into the projection")

	strategiesCmd.Flags().String("db", "", "SQLite database for persisting recommendations")
	strategiesCmd.Flags().Bool("force-refresh", false, "Supersede existing pending recommendations")
	strategiesCmd.Flags().Bool("verbose", false, "Verbose logging")

	listCmd.Flags().String("db", "", "SQLite database path")
	listCmd.Flags().String("user", "", "User id to list recommendations for")
	listCmd.Flags().String("status", "", "Filter by status (PENDING, ACCEPTED, DISMISSED, EXPIRED)")
	listCmd.Flags().Bool("alternatives", false, "Show alternative approaches for open recommendations")

	acceptCmd.Flags().String("db", "", "SQLite database path")
	acceptCmd.Flags().String("notes", "", "Optional notes to record")
	dismissCmd.Flags().String("db", "", "SQLite database path")
	dismissCmd.Flags().String("reason", "", "Optional dismissal reason")

	sweepCmd.Flags().String("db", "", "SQLite database path")
	sweepCmd.Flags().Bool("daemon", false, "Keep running and sweep on a schedule")
	sweepCmd.Flags().String("schedule", "@daily", "Cron schedule for daemon mode")
	sweepCmd.Flags().Bool("verbose", false, "Verbose logging")

	taxCmd.Flags().String("type", string(domain.IncomeOther), "Income type tag")
	taxCmd.Flags().String("amount", "0", "Income amount")
	taxCmd.Flags().String("franking", "", "Franking percentage (0-100)")
	taxCmd.Flags().String("subtype", "", "Government payment subtype (TAXABLE or EXEMPT)")

	strategiesCmd.AddCommand(listCmd, acceptCmd, dismissCmd)

	rootCmd.AddCommand(versionCmd(), validateCmd, debtplanCmd, forecastCmd, compareCmd, strategiesCmd, sweepCmd, taxCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
