package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/evengine/evi/internal/calculation"
	"github.com/evengine/evi/internal/config"
	"github.com/evengine/evi/internal/domain"
	"github.com/evengine/evi/internal/output"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologAdapter implements calculation.Logger on top of zerolog so engine
// diagnostics come out structured like the rest of the CLI's logging.
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func newCLILogger() zerologAdapter {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerologAdapter{log: zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()}
}

var rootCmd = &cobra.Command{
	Use:   "evi",
	Short: "Enterprise Value Index scoring engine",
	Long:  "Scores a capital investment across five value pillars against a discounted-cash-flow baseline",
}

var scoreCmd = &cobra.Command{
	Use:   "score [deal-file]",
	Short: "Compute the EVI for a deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noSensitivity, _ := cmd.Flags().GetBool("no-sensitivity")
		outputFormat, _ := cmd.Flags().GetString("format")
		debugMode, _ := cmd.Flags().GetBool("debug")

		formatter := output.GetFormatterByName(outputFormat)
		if formatter == nil {
			return fmt.Errorf("unsupported format %q (supported: %v)", outputFormat, output.FormatterNames())
		}

		deal, cfg, err := loadDeal(cmd, args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewScoringEngineWithConfig(cfg)
		if debugMode {
			engine.SetLogger(newCLILogger())
		}

		var result *domain.Result
		if noSensitivity {
			result, err = engine.ScoreWithoutSensitivity(deal)
		} else {
			result, err = engine.Score(deal)
		}
		if err != nil {
			return err
		}

		rendered, err := formatter.Format(&output.Report{Deal: deal, Result: result})
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [deal-file]",
	Short: "Rank the fixed perturbation scenarios by EVI impact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")

		deal, cfg, err := loadDeal(cmd, args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewScoringEngineWithConfig(cfg)
		if debugMode {
			engine.SetLogger(newCLILogger())
		}

		result, err := engine.Score(deal)
		if err != nil {
			return err
		}

		fmt.Printf("Base EVI: %s\n\n", result.EVI.StringFixed(1))
		fmt.Printf("%-20s %10s  %s\n", "Factor", "Delta EVI", "Scenario")
		for _, entry := range result.Sensitivities {
			fmt.Printf("%-20s %10s  %s\n", entry.Factor, entry.DeltaEVI.StringFixed(2), entry.Label)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [deal-file]",
	Short: "Validate a deal file without scoring it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, _, err := parser.LoadDealFromFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deal file %s is valid\n", args[0])
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "evi %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadDeal parses the deal file and applies any logistic parameter overrides
// given on the command line on top of the file's scoring section.
func loadDeal(cmd *cobra.Command, filename string) (*domain.Deal, *domain.ScoringConfig, error) {
	parser := config.NewInputParser()
	deal, cfg, err := parser.LoadDealFromFile(filename)
	if err != nil {
		return nil, nil, err
	}

	logisticA := cfg.LogisticA
	logisticB := cfg.LogisticB
	if cmd.Flags().Changed("logistic-a") {
		a, _ := cmd.Flags().GetFloat64("logistic-a")
		logisticA = decimal.NewFromFloat(a)
	}
	if cmd.Flags().Changed("logistic-b") {
		b, _ := cmd.Flags().GetFloat64("logistic-b")
		logisticB = decimal.NewFromFloat(b)
	}
	cfg, err = domain.NewScoringConfig(cfg.Weights, logisticA, logisticB)
	if err != nil {
		return nil, nil, err
	}

	return deal, cfg, nil
}

func init() {
	scoreCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	scoreCmd.Flags().Bool("no-sensitivity", false, "Skip the sensitivity analysis")
	scoreCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	scoreCmd.Flags().Float64("logistic-a", 6.0, "Logistic steepness override")
	scoreCmd.Flags().Float64("logistic-b", 0.10, "Logistic midpoint override")

	sensitivityCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	sensitivityCmd.Flags().Float64("logistic-a", 6.0, "Logistic steepness override")
	sensitivityCmd.Flags().Float64("logistic-b", 0.10, "Logistic midpoint override")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
