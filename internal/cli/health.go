package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wallstonks/pkg/tracing"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe every source and report which answered live",
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

			out := struct {
				CheckedAt time.Time `json:"checked_at"`
				Sources   any       `json:"sources"`
			}{
				CheckedAt: time.Now().UTC(),
				Sources:   eng.Health(ctx),
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
