package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/pyembed/config"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/runtime"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to interpreter config (.yaml, .yml or .toml)")
		engineName = flag.String("engine", engine.NameReference, "Engine ("+strings.Join(engine.Names(), "|")+")")
		verbose    = flag.Bool("v", false, "Log engine calls and state transitions")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: pyconfig -config <file> [-engine reference|cpython] [-v]")
		os.Exit(1)
	}

	if err := run(*configFile, *engineName, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, engineName string, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		log = l
		defer func() { _ = log.Sync() }()
	}
	engine.SetLogger(log)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	e, err := engine.Open(engineName)
	if err != nil {
		return err
	}

	rt, err := runtime.New(runtime.WithEngine(e), runtime.WithLogger(log))
	if err != nil {
		return err
	}

	nc, err := rt.Resolve(cfg)
	if err != nil {
		_ = rt.Close()
		return err
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Print(render(configFile, nc, styled))

	if err := nc.Close(); err != nil {
		return err
	}
	return rt.Close()
}
