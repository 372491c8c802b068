package app

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mackushev/bustub/cardinality"
	"github.com/mackushev/bustub/internal/config"
	"github.com/mackushev/bustub/internal/telemetry"
)

func initEstimate() {
	var keysPath string
	var usePresto bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the number of distinct keys in a newline-delimited file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.Context(), rootCmd.Options.ConfigPath, keysPath, usePresto)
		},
	}
	cmd.Flags().StringVarP(&keysPath, "keys", "f", "", "Path to a newline-delimited file of keys")
	cmd.Flags().BoolVar(&usePresto, "presto", false, "Use the dense+sparse HyperLogLog-Presto representation instead of plain HyperLogLog")
	_ = cmd.MarkFlagRequired("keys")

	rootCmd.AddCommand(cmd)
}

func runEstimate(ctx context.Context, configPath, keysPath string, usePresto bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tel, err := telemetry.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("build telemetry: %w", err)
	}
	defer func() { _ = tel.Close(ctx) }()

	_, span := tel.Tracer.Start(ctx, "estimate")
	defer span.End()

	f, err := afero.NewOsFs().Open(keysPath)
	if err != nil {
		return fmt.Errorf("open keys file: %w", err)
	}
	defer f.Close()

	var count uint64
	var cardinalityValue uint64

	if usePresto {
		estimator := cardinality.NewPresto(cfg.HLLBits)
		n, err := feedKeys(f, estimator.Add)
		if err != nil {
			return err
		}
		count = n
		estimator.ComputeCardinality()
		cardinalityValue = estimator.Cardinality()
	} else {
		estimator := cardinality.New(cfg.HLLBits)
		n, err := feedKeys(f, estimator.Add)
		if err != nil {
			return err
		}
		count = n
		estimator.ComputeCardinality()
		cardinalityValue = estimator.Cardinality()
	}

	tel.Log.Infow("estimate complete",
		"presto", usePresto,
		"lines_read", count,
		"distinct_estimate", cardinalityValue,
	)

	return nil
}

func feedKeys(f afero.File, add func(cardinality.Key)) (uint64, error) {
	var n uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		add(cardinality.StringKey(line))
		n++
	}
	return n, scanner.Err()
}
