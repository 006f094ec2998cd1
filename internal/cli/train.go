package cli

import (
	"fmt"

	"wallstonks/internal/model"

	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train <dataset.csv>",
		Short: "Fit a model artifact from a labelled dataset",
		Long:  "Fits the direction head with regularized logistic regression and the magnitude head with ridge regression, then writes a versioned JSON artifact.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Log.Level)

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				outPath = cfg.Model.ArtifactPath
			}

			rows, err := model.LoadCSV(args[0])
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			log.Info().Int("rows", len(rows)).Str("dataset", args[0]).Msg("dataset loaded")

			artifact, err := model.Train(rows, model.DefaultTrainOptions())
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			if err := artifact.Save(outPath); err != nil {
				return fmt.Errorf("save artifact: %w", err)
			}

			log.Info().Str("artifact", outPath).Msg("model artifact written")
			return nil
		},
	}

	cmd.Flags().String("out", "", "artifact output path (defaults to model.artifact_path)")
	return cmd
}
