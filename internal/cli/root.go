package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RMahshie/roommodes/internal/acoustics"
	"github.com/RMahshie/roommodes/internal/config"
	"github.com/RMahshie/roommodes/internal/logger"
)

// Exit codes follow sysexits.h
const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 78
)

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	code := exitCode(err)
	if code == exitConfig {
		fmt.Fprintln(stderr, "Found a config error:", err)
	} else {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return code
}

func exitCode(err error) int {
	var loadErr *configLoadError
	if errors.As(err, &loadErr) || errors.Is(err, acoustics.ErrInvalidConfiguration) {
		return exitConfig
	}
	return exitFailure
}

// configLoadError marks failures to read the configuration itself
type configLoadError struct {
	err error
}

func (e *configLoadError) Error() string { return e.err.Error() }
func (e *configLoadError) Unwrap() error { return e.err }

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "roommodes",
		Short: "Room mode and speaker placement analysis for rectangular rooms",
		Long: `roommodes computes the resonant modes of a rectangular room and how far
a speaker sits from the pressure nodes of each axial mode.

Settings come from roommodes.toml in the working directory (or --config),
ROOMMODES_* environment variables and flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "TOML config file")
	pf.String("loglevel", "info", "log level: trace, debug, info, warn, error")
	pf.String("logfile", "", "write logs to this file instead of stderr")
	pf.Bool("zap", false, "truncate the log file instead of appending")

	cmd.AddCommand(
		analyzeCmd(opts),
		speedCmd(opts),
		serveCmd(opts),
	)
	return cmd
}

// logFlags maps the persistent logging flags to their config keys
var logFlags = map[string]string{
	"loglevel": "loglevel",
	"logfile":  "logfile",
	"zap":      "zap",
}

// loadConfig binds the given flags, loads the configuration and sets up
// logging. The returned cleanup closes the log file.
func loadConfig(fs *pflag.FlagSet, opts *rootOptions, keys map[string]string) (*config.Config, func() error, error) {
	v := viper.New()
	for _, m := range []map[string]string{logFlags, keys} {
		for flag, key := range m {
			f := fs.Lookup(flag)
			if f == nil {
				return nil, nil, fmt.Errorf("unknown flag %q", flag)
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, err
			}
		}
	}

	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return nil, nil, &configLoadError{err: err}
	}

	cleanup, err := logger.Setup(logger.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Zap:   cfg.Log.Zap,
	})
	if err != nil {
		return nil, nil, &configLoadError{err: err}
	}
	return cfg, cleanup, nil
}

// logViolations records each configuration violation at error level
func logViolations(err error) {
	var cfgErr *acoustics.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return
	}
	for _, v := range cfgErr.Violations {
		log.Error().Str("field", v.Field).Float64("value", v.Value).Msg(v.Message)
	}
}
