package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Licredity/licredity-v1-oracle/internal/config"
	"github.com/Licredity/licredity-v1-oracle/internal/ema"
)

const (
	exitError = 1
	exitUsage = 2

	// Beyond this alpha exceeds e^100000 and squaring carries every integer digit.
	maxNegativeTimeDiff = 60_000_000
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(separatePositionals(args, root.Flags()))
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintln(stderr, "Error:", err)
	var argErr *ema.ArgError
	if errors.As(err, &argErr) {
		fmt.Fprint(stderr, root.UsageString())
		return exitUsage
	}
	return exitError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "emaupdate <last_price> <now_sqrt_price> <time_diff>",
		Short:         "Compute a single EMA oracle price update",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runUpdate,
	}

	root.Flags().String("config", "", "config file path")
	root.Flags().String("format", config.FormatInt, "output format (int, json)")
	root.Flags().Int("precision", ema.DefaultPlaces, "decimal places used for the decay factor (>= 100)")
	root.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ema.ArgError{Msg: err.Error()}
	})

	return root
}

func runUpdate(cmd *cobra.Command, args []string) error {
	input, err := ema.ParseInput(args)
	if err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if input.LastPrice.Sign() < 0 || input.NowSqrtPrice.Sign() < 0 || input.TimeDiff < 0 {
		logger.Warn("negative input, result is undefined",
			zap.String("last_price", input.LastPrice.String()),
			zap.String("now_sqrt_price", input.NowSqrtPrice.String()),
			zap.Int64("time_diff", input.TimeDiff),
		)
	}
	if input.TimeDiff < -maxNegativeTimeDiff {
		logger.Warn("large negative time_diff, alpha grows without bound and evaluation may be slow",
			zap.Int64("time_diff", input.TimeDiff),
		)
	}

	calc := ema.NewCalculator(ema.Config{Places: int32(cfg.Precision)}, logger)
	result, err := calc.Update(input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch cfg.Format {
	case config.FormatJSON:
		data, err := json.Marshal(result.Record(input))
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		_, err = fmt.Fprint(out, result.Value.String())
		return err
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
