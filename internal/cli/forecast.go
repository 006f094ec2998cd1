package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"wallstonks/internal/store"
	"wallstonks/pkg/tracing"

	"github.com/spf13/cobra"
)

func newForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Run one aggregation pass and print the forecast as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Log.Level)

			ctx := cmd.Context()
			tp, tracer, err := tracing.InitTracer(ctx)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer func() { _ = tp.Shutdown(ctx) }()

			eng, err := buildEngine(cfg, tracer, log)
			if err != nil {
				return err
			}

			result, snap := eng.Run(ctx)

			if publish, _ := cmd.Flags().GetBool("publish"); publish {
				st, err := store.NewForecastStore(ctx, cfg.Redis.URL)
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer st.Close()
				if err := st.Publish(ctx, result); err != nil {
					return fmt.Errorf("publish forecast: %w", err)
				}
				log.Info().Msg("forecast published")
			}

			out := struct {
				Result   any `json:"result"`
				Snapshot any `json:"snapshot,omitempty"`
			}{Result: result}
			if withSnap, _ := cmd.Flags().GetBool("snapshot"); withSnap {
				out.Snapshot = snap
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().Bool("publish", false, "publish the forecast to redis")
	cmd.Flags().Bool("snapshot", false, "include the raw signal snapshot in the output")
	return cmd
}
