// SPDX-License-Identifier: EPL-2.0

package waveplay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/dac"
)

// DefaultRate is the DAC output rate in Hz.
const DefaultRate = 10000

// Options for Play and PlayWaveform. Zero values select the defaults.
type Options struct {
	Rate        float64 // output rate in Hz, DefaultRate when 0
	MaxChunkLen int     // device buffer size, dac.DefaultMaxChunkLen when 0
	Cyclic      bool
	Logger      *slog.Logger
	Progress    func(dac.Progress)
}

func (o Options) withDefaults() Options {
	if o.Rate == 0 {
		o.Rate = DefaultRate
	}
	if o.MaxChunkLen == 0 {
		o.MaxChunkLen = dac.DefaultMaxChunkLen
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Play resamples src to opts.Rate and streams the chunks to dev, one per
// readiness signal. The caller keeps ownership of src.
func Play(ctx context.Context, src audio.Source, dev dac.Device, opts Options) (dac.Stats, error) {
	opts = opts.withDefaults()

	r, err := audio.NewResampler(src, opts.Rate, opts.MaxChunkLen)
	if err != nil {
		return dac.Stats{}, err
	}
	opts.Logger.Info("resampling",
		"src_rate", src.SampleRate(),
		"channels", src.Channels(),
		"dst_rate", opts.Rate,
		"ratio", r.Ratio(),
		"max_chunk", opts.MaxChunkLen,
	)

	sinkOpts := []dac.Option{
		dac.WithCyclic(opts.Cyclic),
		dac.WithMaxChunkLen(opts.MaxChunkLen),
		dac.WithLogger(opts.Logger),
	}
	if opts.Progress != nil {
		sinkOpts = append(sinkOpts, dac.WithProgress(opts.Progress))
	}

	return dac.NewSink(dev, sinkOpts...).Play(ctx, r)
}

// PlayWaveform sets the playback mode and writes a single waveform without
// waiting for readiness. It is meant for a cyclic pattern the device repeats
// on its own. opts.Rate and opts.Progress are ignored.
func PlayWaveform(ctx context.Context, dev dac.Device, wf audio.Chunk, opts Options) error {
	opts = opts.withDefaults()

	if len(wf) == 0 {
		return dac.ErrEmptyChunk
	}
	if len(wf) > opts.MaxChunkLen {
		return fmt.Errorf("waveform has %d points, limit %d: %w", len(wf), opts.MaxChunkLen, dac.ErrChunkTooLong)
	}

	if err := dev.SetCyclic(ctx, opts.Cyclic); err != nil {
		return fmt.Errorf("%w: %w", dac.ErrSetMode, err)
	}
	if err := dev.Write(ctx, wf); err != nil {
		return fmt.Errorf("%w: %w", dac.ErrWrite, err)
	}
	opts.Logger.Info("waveform sent", "points", len(wf), "cyclic", opts.Cyclic)
	return nil
}
