// SPDX-License-Identifier: EPL-2.0

// Command play-wav streams an audio file to the DAC, resampled to the DAC
// rate and cut into buffer sized chunks.
//
//	play-wav [flags] FILE
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
		fmt.Fprintln(os.Stderr, "play-wav:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("play-wav", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: play-wav [flags] FILE")
		fs.PrintDefaults()
	}
	config.AddCommonFlags(fs)
	config.AddGatewayFlags(fs)
	fs.Float64("rate", waveplay.DefaultRate, "DAC rate in Hz")
	fs.Int("max-chunk", dac.DefaultMaxChunkLen, "DAC buffer size in points")
	fs.Bool("cyclic", true, "repeat each chunk until the next one arrives")
	simulate := fs.Bool("simulate", false, "play to an in-process simulated DAC instead of the gateway")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input file")
	}
	path := fs.Arg(0)

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
	logger := slog.Default().With("file", path)

	src, err := waveplay.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close()

	var dev dac.Device
	if *simulate {
		sim := simdac.New(simdac.WithRate(cfg.DAC.Rate), simdac.WithLogger(logger))
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

	stats, err := waveplay.Play(ctx, src, dev, waveplay.Options{
		Rate:        cfg.DAC.Rate,
		MaxChunkLen: cfg.DAC.MaxLen,
		Cyclic:      cfg.DAC.Cyclic,
		Logger:      logger,
		Progress: func(p dac.Progress) {
			fmt.Fprintf(stdout, "Sent waveform %d of %d points\n", p.Index, p.Len)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Done: %d waveforms, %d points\n", stats.Chunks, stats.Samples)
	return nil
}
