package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pool-market-client/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `Usage: poolctl [-config path] [-output text|json|yaml] <command> [args]

Commands:
  login       sign in with -email and -password
  register    create an account and sign in
  logout      clear the stored session
  whoami      show the signed-in user
  pools       list pools (-mine, -city, -guests, -max-price)
  pool <id>   show one pool
  favorite <id>
              star or unstar a pool
  favorites   list starred pools
  bridge      serve the local HTTP/WebSocket bridge
  demo-api    serve the demo marketplace API
`

// errFailed reports a store operation that already notified the user
var errFailed = errors.New("operation failed")

// Run is the poolctl entry point
func Run() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("poolctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "path to config.yaml (defaults to CONFIG_PATH or ./config.yaml)")
	output := fs.String("output", "text", "output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	// Setup logger
	setupLogger(cfg.Log.Level, stderr)

	p, err := newPrinter(*output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "bridge":
		err = runBridge(ctx, cfg)
	case "demo-api":
		err = runDemoAPI(ctx, cfg, rest)
	default:
		err = runClientCommand(ctx, cfg, p, stderr, command, rest)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUnknownCommand), errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	case errors.Is(err, errFailed):
		return 1
	default:
		log.Error().Err(err).Str("command", command).Msg("Command failed")
		return 1
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, name, addr string, handler http.Handler, onShutdown func()) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting " + name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%s failed to start: %w", name, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down " + name + "...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if onShutdown != nil {
		onShutdown()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg(name + " exited")
	return nil
}

// setupLogger configures zerolog logger
func setupLogger(level string, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
