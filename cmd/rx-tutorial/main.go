package main

import (
	"context"
	"fmt"
	"os"

	"github.com/boookk/bithumb-practice/internal/config"
	"github.com/boookk/bithumb-practice/logger"
	"github.com/mkideal/cli"
	clix "github.com/mkideal/cli/ext"
	"go.uber.org/zap"
)

type opts struct {
	cli.Helper
	*zap.Logger

	Debug   bool          `cli:"d, debug" usage:"Debug Output"`
	Delay   clix.Duration `cli:"delay" name:"duration" usage:"Per-element delay of the concat scenario (default 100ms)"`
	Timeout clix.Duration `cli:"timeout" name:"duration" usage:"Timeout period of each scenario (default 5s)"`
	Format  string        `cli:"f, format" name:"format" usage:"Output Format [text|json|cbor] (default text)"`
	Config  string        `cli:"c, config" name:"path" usage:"Config file (yaml, toml or json)"`
	EnvFile string        `cli:"env" name:"path" usage:".env file to load before reading RX_TUTORIAL_* variables"`
	List    bool          `cli:"l, list" usage:"List scenarios and exit"`
}

func (opts *opts) configureLogging(debug bool) (err error) {
	if debug {
		logger.SetLevel(logger.LevelDebug)

		opts.Logger, err = zap.NewDevelopment()
	} else {
		logger.SetLevel(logger.LevelInfo)

		opts.Logger, err = zap.NewProduction()
	}

	if err != nil {
		return
	}

	rxLogger := opts.Logger.Named("rx").WithOptions(zap.AddCaller(), zap.AddCallerSkip(2))
	logger.SetLogger(logger.NewZapLogger(rxLogger))

	return
}

// loadConfig reads file and env settings, then applies the flags given on the command line.
func (opts *opts) loadConfig() (*config.Config, error) {
	c, err := config.Load(config.WithConfigFile(opts.Config), config.WithEnvFile(opts.EnvFile))
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		c.Debug = true
	}
	if opts.Delay.Duration > 0 {
		c.Delay = opts.Delay.Duration
	}
	if opts.Timeout.Duration > 0 {
		c.Timeout = opts.Timeout.Duration
	}
	if opts.Format != "" {
		c.Format = opts.Format
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	cli.Run(new(opts), func(cmdline *cli.Context) (err error) {
		opts := cmdline.Argv().(*opts)

		if opts.List {
			listScenarios(os.Stdout)
			return
		}

		var cfg *config.Config
		if cfg, err = opts.loadConfig(); err != nil {
			return
		}

		if err = opts.configureLogging(cfg.Debug); err != nil {
			return
		}

		log := opts.Logger

		defer func() {
			_ = log.Sync()
		}()

		log.Debug("parsed config", zap.Reflect("config", cfg))

		names := cmdline.Args()
		if len(names) == 0 {
			names = cfg.Scenarios
		}

		r, err := newRunner(cfg, os.Stdout, log)
		if err != nil {
			return
		}
		defer func() {
			_ = r.Close()
		}()

		if err = r.run(context.Background(), names); err != nil {
			err = fmt.Errorf("rx-tutorial: %v", err)
		}
		return
	}, "Runs the reactive sequence tutorial scenarios.")
}
