// Command termstack-demo drives the widget set on the controlling terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/odvcencio/termstack/pkg/config"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend/tcell"
)

type options struct {
	configPath string
	logLevel   int
	logPath    string
	layout     string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	flagSet := pflag.NewFlagSet("termstack-demo", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a config file (default: ~/.termstack and ./.termstack)")
	flagSet.IntVar(&opts.logLevel, "log-level", -1, "log verbosity: 0 off, 1 messages, 2+ details")
	flagSet.StringVar(&opts.logPath, "log-path", "", "log file path")
	flagSet.StringVar(&opts.layout, "layout", "", "root layout: vertical or horizontal")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if !stdoutIsTerminal() {
		return fmt.Errorf("termstack-demo needs an interactive terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogPath(), cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	b, err := tcell.New()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := b.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	d, err := newDemo(b, cfg, logger)
	if err != nil {
		b.Fini()
		return err
	}
	defer d.close()
	return d.run()
}

// loadConfig resolves the config file and applies flag overrides on top.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.logLevel >= 0 {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logPath != "" {
		cfg.Logging.Path = opts.logPath
	}
	if opts.layout != "" {
		cfg.UI.Layout = opts.layout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
