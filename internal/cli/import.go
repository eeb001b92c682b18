package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"quiz-host/internal/domain"
	"quiz-host/internal/infra/postgres"
)

func newImportCmd(opts *rootOptions, v *viper.Viper) *cobra.Command {
	var snapshot string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a quiz JSON document as a Postgres snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			data, err := readQuizFile(args[0])
			if err != nil {
				return err
			}
			id := snapshot
			if id == "" {
				id = cfg.Quiz.Snapshot
			}

			db, err := openBunDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrateDB(cmd.Context(), db, logger); err != nil {
				return err
			}
			if err := postgres.NewSnapshotWriter(db).Save(cmd.Context(), id, data); err != nil {
				return err
			}
			logger.Info("quiz imported",
				zap.String("snapshot", id),
				zap.Int("rounds", len(data.Rounds)),
				zap.Int("teams", len(data.Teams)))
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "snapshot id, defaults to quiz.snapshot (env: QUIZHOST_SNAPSHOT)")
	bindEnv(v, cmd.Flags())
	return cmd
}

func readQuizFile(path string) (domain.QuizData, error) {
	var data domain.QuizData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(data.Rounds) == 0 {
		return data, fmt.Errorf("%s: no rounds", path)
	}
	return data, nil
}
