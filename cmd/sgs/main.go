// Package main runs the static GET server in the foreground.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/f4ah6o/sgs-go/internal/acceptor"
	"github.com/f4ah6o/sgs-go/internal/config"
	"github.com/f4ah6o/sgs-go/internal/logfile"
	"github.com/f4ah6o/sgs-go/internal/responder"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	if err := enterRoot(cfg); err != nil {
		return err
	}

	logger := logfile.New(cfg.LogFile)
	if cfg.Console {
		logger.WithConsole(os.Stderr)
	}

	// Survive the launching shell going away.
	signal.Ignore(syscall.SIGHUP)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := acceptor.Listen(cfg.Port, cfg.Backlog)
	if err != nil {
		logger.Error(err.Error())
		return err
	}

	r := responder.New(os.DirFS("."), logger)
	r.Table = cfg.Table()
	r.BufferSize = cfg.BufferSize

	srv := &acceptor.Server{
		Handler:        r,
		Log:            logger,
		MaxConnections: cfg.MaxConnections,
	}

	printBanner(stdout, cfg)
	logger.Infof("Serving %s on port %d", cfg.Root, cfg.Port)

	if err := srv.Serve(ctx, ln); err != nil {
		logger.Error(err.Error())
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// enterRoot changes into the content root. A failure is logged at Error to
// the log file as resolved from the starting directory, since the root it
// would normally live in is unreachable.
func enterRoot(cfg config.Config) error {
	if err := os.Chdir(cfg.Root); err != nil {
		logfile.New(cfg.LogFile).Errorf("Failed to change directory to %s: %v", cfg.Root, err)
		return fmt.Errorf("failed to change directory to %s: %w", cfg.Root, err)
	}
	return nil
}

func parseConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("sgs", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file (.toml or .yaml)")
	dir := fs.String("dir", "", "Directory to serve")
	port := fs.Int("port", 0, "Port to serve on")
	console := fs.Bool("console", false, "Mirror log lines to stderr")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Root = *dir
		case "port":
			cfg.Port = *port
		case "console":
			cfg.Console = *console
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func printBanner(w io.Writer, cfg config.Config) {
	p := message.NewPrinter(language.English)
	bold := color.New(color.Bold)

	fmt.Fprintf(w, "🌐 Serving %s at %s\n", bold.Sprint(cfg.Root), color.CyanString("http://localhost:%d", cfg.Port))
	fmt.Fprint(w, p.Sprintf("   backlog %d, buffer %d bytes, log %s\n", cfg.Backlog, cfg.BufferSize, cfg.LogFile))
	for _, e := range cfg.Table() {
		fmt.Fprintf(w, "   %-6s %s\n", e.Ext, e.MIME)
	}
	fmt.Fprintln(w, "Press Ctrl+C to stop")
}
