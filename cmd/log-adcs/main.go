// SPDX-License-Identifier: EPL-2.0

// Command log-adcs records ADC channels to a CSV file until interrupted.
// A row is written each time every channel has reported since the last row.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/binp-dev/waveplay/adc"
	"github.com/binp-dev/waveplay/internal/config"
	"github.com/binp-dev/waveplay/internal/logging"
	"github.com/binp-dev/waveplay/pvgw"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "log-adcs:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("log-adcs", pflag.ContinueOnError)
	config.AddCommonFlags(fs)
	config.AddGatewayFlags(fs)
	fs.StringP("out-dir", "o", ".", "directory where the output file is created")
	fs.Int("channels", 6, "number of ADC channels")
	fs.String("pv-format", pvgw.DefaultADCFormat, "channel PV name format, given the channel index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	closer, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	client, err := pvgw.Dial(cfg.Gateway.PVGW())
	if err != nil {
		return err
	}
	defer client.Close()

	source := pvgw.NewADC(client, cfg.ADC.PVFormat, cfg.ADC.Channels)
	return record(ctx, source, cfg.ADC.Channels, cfg.ADC.OutDir, time.Now(), stdout)
}

// record logs events from source into a new CSV file under dir until ctx is
// done or the source ends.
func record(ctx context.Context, source adc.Source, channels int, dir string, start time.Time, stdout io.Writer) error {
	path := filepath.Join(dir, adc.FileName(start))
	fmt.Fprintf(stdout, "Logging to file '%s'\n", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	err = logTo(ctx, source, channels, start, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", path, cerr)
	}
	return err
}

func logTo(ctx context.Context, source adc.Source, channels int, start time.Time, w io.Writer) error {
	agg, err := adc.NewAggregator(channels, start, adc.NewCSVWriter(w))
	if err != nil {
		return err
	}

	slog.Info("logging adcs", "channels", channels)
	return adc.Run(ctx, source, agg)
}
