package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mackushev/bustub/internal/config"
	"github.com/mackushev/bustub/internal/loadgen"
	"github.com/mackushev/bustub/internal/telemetry"
	"github.com/mackushev/bustub/replacer"
)

func initReplay() {
	var tracePath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a CSV access trace through the LRU-K replacer under concurrent load",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd.Context(), rootCmd.Options.ConfigPath, tracePath)
		},
	}
	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Path to a frame_id,access_type CSV trace file")
	_ = cmd.MarkFlagRequired("trace")

	rootCmd.AddCommand(cmd)
}

func runReplay(ctx context.Context, configPath, tracePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tel, err := telemetry.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("build telemetry: %w", err)
	}
	defer func() { _ = tel.Close(ctx) }()

	events, err := loadgen.ReadTrace(afero.NewOsFs(), tracePath)
	if err != nil {
		return fmt.Errorf("read trace: %w", err)
	}

	r := replacer.New(cfg.NumFrames, cfg.K)

	result, err := loadgen.Run(ctx, events, r, cfg.Concurrency, tel)
	if err != nil {
		return fmt.Errorf("run load generator: %w", err)
	}

	tel.Log.Infow("replay complete",
		"run_id", result.RunID,
		"events", len(events),
		"evictions", result.EvictionCount,
		"distinct_frames_estimate", result.DistinctFramesEstimate,
		"frames_held", r.Size(),
	)

	return nil
}
