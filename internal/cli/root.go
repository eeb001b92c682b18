package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"quiz-host/internal/config"
	"quiz-host/internal/logging"
)

const Version = "1.0.0"

type rootOptions struct {
	configPath string
	logLevel   string
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	v := viper.New()
	v.SetEnvPrefix("QUIZHOST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quiz-host",
		Short:         "Quiz-night presentation controller for the host's screen",
		Version:       Version,
		SilenceUsage:  true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.configPath, "config", "config/config.yaml", "path to YAML config (env: QUIZHOST_CONFIG)")
	fs.StringVar(&opts.logLevel, "log-level", "", "overrides log.level (env: QUIZHOST_LOG_LEVEL)")
	bindEnv(v, fs)

	cmd.AddCommand(newServeCmd(opts, v))
	cmd.AddCommand(newConsoleCmd(opts, v))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newImportCmd(opts, v))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("quiz-host v{{.Version}}\n")
	return cmd
}

// bindEnv lets every flag in fs fall back to its QUIZHOST_* variable.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// setup loads the config file and builds the logger every command shares.
func setup(opts *rootOptions) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
