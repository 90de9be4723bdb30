// SPDX-License-Identifier: EPL-2.0

// Command play-sine loads one period-aligned sine pattern into the DAC and
// leaves it repeating in cyclic mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/binp-dev/waveplay"
	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/dac"
	"github.com/binp-dev/waveplay/dac/simdac"
	"github.com/binp-dev/waveplay/internal/config"
	"github.com/binp-dev/waveplay/internal/logging"
	"github.com/binp-dev/waveplay/pvgw"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "play-sine:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("play-sine", pflag.ContinueOnError)
	config.AddCommonFlags(fs)
	config.AddGatewayFlags(fs)
	fs.Float64("rate", waveplay.DefaultRate, "DAC rate in Hz")
	fs.Int("max-chunk", dac.DefaultMaxChunkLen, "DAC buffer size in points")
	fs.Bool("cyclic", true, "repeat the waveform")
	magnitude := fs.Float64("magnitude", 0.3, "peak amplitude")
	freq := fs.Float64("freq", 500, "periods per waveform")
	points := fs.Int("points", 10000, "waveform length in points")
	simulate := fs.Bool("simulate", false, "write to an in-process simulated DAC instead of the gateway")
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
	logger := slog.Default()

	sine, err := audio.NewSineSource(int(cfg.DAC.Rate), *magnitude, *freq, *points)
	if err != nil {
		return err
	}

	var dev dac.Device
	if *simulate {
		sim := simdac.New(simdac.WithLogger(logger))
		defer sim.Close()
		dev = sim
	} else {
		client, err := pvgw.Dial(cfg.Gateway.PVGW(), pvgw.WithLogger(logger))
		if err != nil {
			return err
		}
		defer client.Close()
		dev = pvgw.NewDAC(client, cfg.DAC.PV.Names()).WithLogger(logger)
	}

	err = waveplay.PlayWaveform(ctx, dev, sine.Waveform(), waveplay.Options{
		MaxChunkLen: cfg.DAC.MaxLen,
		Cyclic:      cfg.DAC.Cyclic,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Sent sine: %d points, magnitude %g, %g periods\n", *points, *magnitude, *freq)
	return nil
}
