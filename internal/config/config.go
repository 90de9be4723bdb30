// SPDX-License-Identifier: EPL-2.0

// Package config loads command settings from defaults, a YAML file,
// WAVEPLAY_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/binp-dev/waveplay/internal/logging"
	"github.com/binp-dev/waveplay/pvgw"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "waveplay"
	envPrefix  = "WAVEPLAY"
)

type Config struct {
	LogLevel string  `mapstructure:"loglevel"`
	LogFile  string  `mapstructure:"logfile"`
	Gateway  Gateway `mapstructure:"gateway"`
	DAC      DAC     `mapstructure:"dac"`
	ADC      ADC     `mapstructure:"adc"`
}

type Gateway struct {
	Command string        `mapstructure:"command"`
	Monitor string        `mapstructure:"monitor"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DAC struct {
	PV     DACPVs  `mapstructure:"pv"`
	Rate   float64 `mapstructure:"rate"`
	MaxLen int     `mapstructure:"maxlen"`
	Cyclic bool    `mapstructure:"cyclic"`
}

type DACPVs struct {
	Waveform string `mapstructure:"waveform"`
	Cyclic   string `mapstructure:"cyclic"`
	Request  string `mapstructure:"request"`
}

type ADC struct {
	Channels int    `mapstructure:"channels"`
	PVFormat string `mapstructure:"pvformat"`
	OutDir   string `mapstructure:"outdir"`
}

func (g Gateway) PVGW() pvgw.Config {
	return pvgw.Config{Command: g.Command, Monitor: g.Monitor, Timeout: g.Timeout}
}

func (p DACPVs) Names() pvgw.DACNames {
	return pvgw.DACNames{Waveform: p.Waveform, Cyclic: p.Cyclic, Request: p.Request}
}

func setDefaults(v *viper.Viper) {
	gw := pvgw.DefaultConfig()
	names := pvgw.DefaultDACNames()

	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("gateway.command", gw.Command)
	v.SetDefault("gateway.monitor", gw.Monitor)
	v.SetDefault("gateway.timeout", gw.Timeout)
	v.SetDefault("dac.pv.waveform", names.Waveform)
	v.SetDefault("dac.pv.cyclic", names.Cyclic)
	v.SetDefault("dac.pv.request", names.Request)
	v.SetDefault("dac.rate", 10000.0)
	v.SetDefault("dac.maxlen", 10000)
	v.SetDefault("dac.cyclic", true)
	v.SetDefault("adc.channels", 6)
	v.SetDefault("adc.pvformat", pvgw.DefaultADCFormat)
	v.SetDefault("adc.outdir", ".")
}

// flagKeys maps flag names to config keys. Commands register only the
// flags they use; missing ones are skipped when binding.
var flagKeys = map[string]string{
	"loglevel":  "loglevel",
	"logfile":   "logfile",
	"gateway":   "gateway.command",
	"monitor":   "gateway.monitor",
	"timeout":   "gateway.timeout",
	"rate":      "dac.rate",
	"max-chunk": "dac.maxlen",
	"cyclic":    "dac.cyclic",
	"channels":  "adc.channels",
	"pv-format": "adc.pvformat",
	"out-dir":   "adc.outdir",
}

// AddCommonFlags registers the flags shared by every command.
func AddCommonFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: waveplay.yaml in ., $HOME/.waveplay or /etc/waveplay)")
	fs.String("loglevel", "info", "log level: "+strings.Join(logging.Levels, ", "))
	fs.String("logfile", "", "write JSON logs to this file instead of stdout")
}

// AddGatewayFlags registers the flags locating the PV gateway.
func AddGatewayFlags(fs *pflag.FlagSet) {
	gw := pvgw.DefaultConfig()
	fs.String("gateway", gw.Command, "gateway command endpoint")
	fs.String("monitor", gw.Monitor, "gateway monitor endpoint")
	fs.Duration("timeout", gw.Timeout, "gateway acknowledgement timeout")
}

// Load reads the configuration. fs must already be parsed. A missing config
// file is not an error unless it was named with --config.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, fs); err != nil {
		return Config{}, err
	}

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, fs *pflag.FlagSet) error {
	var explicit string
	if f := fs.Lookup("config"); f != nil {
		explicit = f.Value.String()
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".waveplay"))
		}
		v.AddConfigPath(filepath.FromSlash("/etc/waveplay"))
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || (explicit == "" && errors.As(err, &notFound)) {
		return nil
	}
	return fmt.Errorf("reading config file: %w", err)
}

func (c Config) Validate() error {
	var errs []error
	if _, _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := c.Gateway.PVGW().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("gateway: %w", err))
	}
	if !(c.DAC.Rate > 0) {
		errs = append(errs, fmt.Errorf("dac.rate must be positive, got %g", c.DAC.Rate))
	}
	if c.DAC.MaxLen < 1 {
		errs = append(errs, fmt.Errorf("dac.maxlen must be at least 1, got %d", c.DAC.MaxLen))
	}
	if c.ADC.Channels < 1 {
		errs = append(errs, fmt.Errorf("adc.channels must be at least 1, got %d", c.ADC.Channels))
	}
	if !strings.Contains(c.ADC.PVFormat, "%d") {
		errs = append(errs, fmt.Errorf("adc.pvformat must contain %%d, got %q", c.ADC.PVFormat))
	}
	return errors.Join(errs...)
}
