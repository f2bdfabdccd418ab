// Command replay runs YAML form scenarios against a running intake server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/intake/internal/replay"
	"github.com/okian/intake/pkg/logger"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		format  = flag.String("log-format", logger.FormatText, "Log format: text or json")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] scenario.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(logger.WithFormat(*format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	failed := false
	for _, path := range flag.Args() {
		// Each scenario starts from the server's current session, so files
		// that assume an empty form must end with a submit or run first.
		if !runFile(ctx, path, *baseURL, *timeout) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runFile(ctx context.Context, path, baseURL string, timeout time.Duration) bool {
	log := logger.Get()

	sc, err := replay.LoadFile(path)
	if err != nil {
		log.Error(ctx, "load scenario", logger.String("file", path), logger.Error(err))
		return false
	}

	client := replay.NewHTTPClient(baseURL, replay.WithTimeout(timeout))
	rep, err := replay.NewRunner(client).Run(ctx, sc)
	if err != nil {
		log.Error(ctx, "scenario aborted", logger.String("scenario", sc.Name), logger.Error(err))
		return false
	}

	for _, m := range rep.Mismatches {
		fmt.Fprintln(os.Stdout, sc.Name+": "+m.String())
	}
	if rep.OK() {
		fmt.Fprintf(os.Stdout, "%s: ok (%d steps)\n", sc.Name, rep.Steps)
	}
	return rep.OK()
}
