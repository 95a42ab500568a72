// ABOUTME: Entry point for the Sendspin player client
// ABOUTME: Layers config, parses flags, and starts the player orchestrator
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Sendspin/sendspin-go/internal/config"
	"github.com/Sendspin/sendspin-go/internal/player"
	"github.com/Sendspin/sendspin-go/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := pflag.NewFlagSet("sendspin-player", pflag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print version and exit")

	// A first pass resolves --config before the fully layered defaults can
	// seed the rest of the flag set.
	preParse := pflag.NewFlagSet("sendspin-player-preparse", pflag.ContinueOnError)
	preParse.ParseErrorsWhitelist.UnknownFlags = true
	configPath := preParse.String("config", "", "path to an optional YAML config file")
	_ = preParse.Parse(os.Args[1:])

	layered, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sendspin-player: %v\n", err)
		return 1
	}

	flags := config.RegisterFlags(fs, layered)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "sendspin-player: %v\n", err)
		return 1
	}
	config.ApplyFlags(&layered, fs, flags)

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return 0
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(layered.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("unrecognized log level %q, using info", layered.LogLevel)
	}
	log.SetDefault(logger)

	name := layered.Name
	if name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		name = fmt.Sprintf("%s-sendspin-player", hostname)
	}
	layered.Name = name

	log.Infof("starting %s: %s", version.Product, name)

	p := player.New(player.Config{
		ServerURL:     layered.ServerURL,
		Name:          layered.Name,
		MinLeadMs:     layered.MinLeadMs,
		StartBufferMs: layered.StartBufferMs,
		LogLead:       layered.LogLead,
		TUI:           layered.TUI,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutdown signal received")
		p.Stop()
	}()

	if err := p.Start(ctx); err != nil {
		log.Errorf("player exited with error: %v", err)
		return 1
	}

	log.Info("player stopped")
	return 0
}
