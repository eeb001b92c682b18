package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quiz-host/internal/console"
)

func newConsoleCmd(opts *rootOptions, v *viper.Viper) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Drive the quiz from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts, fresh)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved selection checkpoint (env: QUIZHOST_FRESH)")
	bindEnv(v, cmd.Flags())
	return cmd
}

func runConsole(cmd *cobra.Command, opts *rootOptions, fresh bool) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := buildRuntime(ctx, cfg, logger, fresh)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.ctrl.Start(ctx); err != nil {
		return err
	}
	frames, unsubscribe := rt.hub.Subscribe()
	defer unsubscribe()

	go rt.ctrl.Scoreboard().Run(ctx, rt.interval)

	return console.New(rt.ctrl, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx, frames)
}
