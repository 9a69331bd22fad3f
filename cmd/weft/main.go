// Command weft renders the demo component tree to an HTML snapshot or
// serves it live behind the inspector.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/vango-dev/weft/internal/config"
	werrors "github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/internal/logging"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/metrics"
	"github.com/vango-dev/weft/pkg/scheduler"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		werrors.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand gets after the root command loads the
// configuration.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
}

// runtime builds a scheduler wired to the configured logger and metrics.
func (e *env) runtime(extra ...scheduler.Option) *scheduler.Runtime {
	opts := []scheduler.Option{
		scheduler.WithLogger(e.logger),
		scheduler.WithFrameInterval(e.cfg.Runtime.FrameInterval),
		scheduler.WithMetrics(metrics.New(
			metrics.WithNamespace(e.cfg.Metrics.Namespace),
			metrics.WithRegistry(e.registry),
		)),
	}
	if !e.cfg.Runtime.Paint {
		opts = append(opts, scheduler.WithoutPaint())
	}
	return scheduler.New(append(opts, extra...)...)
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		noColor    bool
		e          = &env{}
	)

	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Render and inspect weft component trees",
		Long: `weft drives a hook-based component tree through the reconciler.

  weft render    settle the demo and write an HTML snapshot
  weft inspect   run the demo live behind the inspector server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				werrors.DisableColors()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			e.cfg = cfg
			e.logger = logging.New(cfg.Log, cmd.ErrOrStderr())
			e.registry = prometheus.NewRegistry()
			hooks.MaxContextDepth = cfg.Runtime.MaxContextDepth
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		renderCmd(e),
		inspectCmd(e),
		errorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
