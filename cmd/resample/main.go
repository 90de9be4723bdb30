// SPDX-License-Identifier: EPL-2.0

// Command resample converts an audio file offline to the DAC rate.
//
//	resample [flags] <input.{wav|aiff|mp3|ogg}> <output.{wav|npy}>
//
// A .wav output holds mono 16-bit PCM. A .npy output holds the float64
// samples exactly as they would be sent to the DAC.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/binp-dev/waveplay"
	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/dac"
	"github.com/binp-dev/waveplay/formats/npy"
	"github.com/binp-dev/waveplay/formats/wav"
	"github.com/binp-dev/waveplay/internal/config"
	"github.com/binp-dev/waveplay/internal/logging"
)

var errOutputFormat = errors.New("output must be .wav or .npy")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "resample:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("resample", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: resample [flags] <input.{wav|aiff|mp3|ogg}> <output.{wav|npy}>")
		fs.PrintDefaults()
	}
	config.AddCommonFlags(fs)
	fs.Float64("rate", waveplay.DefaultRate, "output rate in Hz")
	fs.Int("max-chunk", dac.DefaultMaxChunkLen, "chunk size used while converting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("expected input and output paths")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	outExt := strings.ToLower(filepath.Ext(outPath))
	if outExt != ".wav" && outExt != ".npy" {
		return fmt.Errorf("%s: %w", outPath, errOutputFormat)
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

	src, err := waveplay.OpenFile(inPath)
	if err != nil {
		return err
	}
	defer src.Close()

	slog.Info("resampling", "in", inPath, "out", outPath, "src_rate", src.SampleRate(), "rate", cfg.DAC.Rate)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer out.Close()

	var n int
	switch outExt {
	case ".wav":
		var pcm16 []int16
		var rate int
		pcm16, rate, err = waveplay.ResampleToMono16(src, cfg.DAC.Rate, cfg.DAC.MaxLen)
		if err != nil {
			return err
		}
		n = len(pcm16)
		err = wav.WriteWAV16(out, rate, pcm16)
	case ".npy":
		var r *audio.Resampler
		r, err = audio.NewResampler(src, cfg.DAC.Rate, cfg.DAC.MaxLen)
		if err != nil {
			return err
		}
		n, err = npy.WriteChunks(out, r)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	fmt.Fprintf(stdout, "Wrote: %s (%d samples)\n", outPath, n)
	return nil
}
