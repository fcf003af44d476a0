package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/five82/caliper/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override caliper config path (optional)")
	theme := flag.String("theme", "", "color theme, overrides the config file (optional)")
	plain := flag.Bool("plain", false, "print without colors or boxes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: caliper [flags] <command> [args]\n\nflags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n%s", app.Usage())
	}
	flag.Parse()

	opts := app.Options{
		ConfigPath: *configPath,
		Theme:      *theme,
		Plain:      *plain,
	}

	err := app.Run(opts, flag.Args())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrOutOfTolerance):
		return 2
	case errors.Is(err, app.ErrUsage):
		fmt.Fprintf(os.Stderr, "caliper: %v\n\n", err)
		flag.Usage()
		return 2
	default:
		fmt.Fprintf(os.Stderr, "caliper: %v\n", err)
		return 1
	}
}
