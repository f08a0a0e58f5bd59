// Command fairpay runs the salary estimation batch: load and join the three
// stat tables, compute leave-one-out salary estimates, and emit the
// over/underpaid report.
package main

import (
	"fmt"
	"os"

	fairpay "github.com/hoopstats/go-fairpay"
	"github.com/hoopstats/go-fairpay/loader"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	PerGamePath  string `envconfig:"FAIRPAY_PER_GAME_CSV" default:"data/per_game.csv"`
	AdvancedPath string `envconfig:"FAIRPAY_ADVANCED_CSV" default:"data/advanced.csv"`
	SalaryPath   string `envconfig:"FAIRPAY_SALARY_CSV" default:"data/salaries.csv"`
	Neighbors    int    `envconfig:"FAIRPAY_NEIGHBORS" default:"10"`
	TopN         int    `envconfig:"FAIRPAY_TOP_N" default:"10"`
	ReportPath   string `envconfig:"FAIRPAY_REPORT_JSON"`
	PlotPath     string `envconfig:"FAIRPAY_PLOT_HTML"`
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger.Sugar()); err != nil {
		logger.Sugar().Fatal(err)
	}
}

func run(logger *zap.SugaredLogger) error {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("unable to process config, %w", err)
	}

	loaded, err := loader.LoadFiles(config.PerGamePath, config.AdvancedPath, config.SalaryPath, nil)
	if err != nil {
		return fmt.Errorf("unable to load observation table, %w", err)
	}
	logger.Infow("loaded observation table",
		"players", loaded.Table.NumRows(),
		"features", loaded.Table.NumFeatures(),
		"dropped", loaded.Dropped,
		"excluded", loaded.Excluded,
	)

	est, err := fairpay.New(
		&fairpay.Options{
			Neighbors: config.Neighbors,
			TopN:      config.TopN,
		},
	)
	if err != nil {
		return fmt.Errorf("unable to initialize estimator, %w", err)
	}
	if err := est.Fit(loaded.Table); err != nil {
		return fmt.Errorf("unable to fit estimator, %w", err)
	}

	results, err := est.Results()
	if err != nil {
		return err
	}
	logger.Infow("fit complete",
		"neighbors", config.Neighbors,
		"mse", results.Scores.MSE,
		"mape", results.Scores.MAPE,
		"r2", results.Scores.R2,
	)

	if err := results.TablePrint(os.Stdout, config.TopN); err != nil {
		return fmt.Errorf("unable to print report, %w", err)
	}

	if config.ReportPath != "" {
		out, err := results.JSON()
		if err != nil {
			return fmt.Errorf("unable to serialize results, %w", err)
		}
		if err := os.WriteFile(config.ReportPath, out, 0o644); err != nil {
			return fmt.Errorf("unable to write json report, %w", err)
		}
		logger.Infow("wrote json report", "path", config.ReportPath)
	}

	if config.PlotPath != "" {
		if err := est.PlotResults(config.PlotPath); err != nil {
			return fmt.Errorf("unable to render chart page, %w", err)
		}
		logger.Infow("wrote chart page", "path", config.PlotPath)
	}

	return nil
}
