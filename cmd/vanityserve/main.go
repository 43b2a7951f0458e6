// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the vanity number server, Kafka worker and CLI [DBG]
application.

Note: This is a BETA release. APIs and functionality may rapidly change.

VanityServe spells phone numbers with dictionary words on a telephone keypad,
so 1-866-266-5233 becomes 1-86MANNJADE. Candidates are validated against a
Patricia trie of words while they are being built, scored by their longest
word, longest letter run and letter count, and the best few are returned.

# Usage

Start the IPC server with a word list:

	vanityserve -dict words.txt

Enable debug logs and use a custom config file:

	vanityserve -d -config ./config.toml

Run in CLI mode for interactive testing:

	vanityserve -c -dict words.txt -limit 10

Consume contact events from Kafka:

	vanityserve -k -dict data/

Convert a word list into binary chunk files and exit:

	vanityserve -dict words.txt -export data/ -chunk 10000

The dictionary can be a text file with one word per line, a single
dict_NNNN.bin chunk file, or a directory of them. Only words of 3 to 10
letters are used.

# Configuration

Runtime configuration lives in a TOML file, created with defaults at
[UserConfigDir]/vanityserve/config.toml when missing:

	[vanity]
	max_results = 5
	max_number_len = 15

	[dict]
	path = "data/"
	format = "auto"

	[store]
	backend = "memory"   # or "redis"
	memory_size = 10000
	redis_addr = "localhost:6379"
	ttl = "720h"

	[kafka]
	brokers = ["localhost:9092"]
	group = "vanityserve"
	events_topic = "contact-events"
	results_topic = "vanity-results"

	[metrics]
	enabled = false
	port = 9090

A broken file is read section by section so one bad value does not throw
away the rest.

# Server Mode

The default mode reads msgpack requests from stdin and writes one msgpack
reply per request to stdout. See package server for the message shapes.

	{"id": "req1", "n": "+1-866-266-5233"}
	{"id": "req1", "v": ["1-86MANNJADE", ...], "c": 5, "t": 412}

Numbers are remembered in the contacts store, so asking again for the same
caller is answered without searching.

# Worker Mode

With -k, contact events are consumed from the events topic and the sentence
read back to the caller is published to the results topic.

# CLI Mode

CLI mode reads numbers from stdin and prints the candidates with their
scores. Bare digit strings are searched as typed, anything else is parsed
as a phone number in the configured region.

# Command Line Flags

	-config string
	    Path to a custom config file
	-dict string
	    Dictionary file or chunk directory (default from config)
	-format string
	    Dictionary format: auto, text, chunk or chunks
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-k  Run the Kafka worker instead of server mode
	-limit int
	    Number of vanity numbers to return (default from config)
	-region string
	    Region for numbers without a country code (default from config)
	-export string
	    Write the loaded dictionary as chunk files to this directory and exit
	-chunk int
	    Words per chunk file for -export

Relative dictionary paths are looked up in the working directory, next to
the executable, in its data/ directory and in the config directory.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/bastiangx/vanityserve/internal/cli"
	"github.com/bastiangx/vanityserve/internal/logger"
	"github.com/bastiangx/vanityserve/internal/utils"
	"github.com/bastiangx/vanityserve/pkg/config"
	"github.com/bastiangx/vanityserve/pkg/contact"
	"github.com/bastiangx/vanityserve/pkg/dictionary"
	"github.com/bastiangx/vanityserve/pkg/kafka"
	"github.com/bastiangx/vanityserve/pkg/metrics"
	"github.com/bastiangx/vanityserve/pkg/server"
	"github.com/bastiangx/vanityserve/pkg/store"
	"github.com/bastiangx/vanityserve/pkg/vanity"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	Version = "0.1.0-beta"
	AppName = "vanityserve"
	gh      = "https://github.com/bastiangx/vanityserve"
)

// sigHandler cancels the run context on SIGINT/SIGTERM. Modes that block on
// stdin cannot notice the cancel, so unless graceful is set it also exits.
func sigHandler(cancel context.CancelFunc, graceful bool) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		if !graceful {
			os.Exit(0)
		}
	}()
}

// main wires the packages together and picks the mode to run.
// It does not implement logic for them and only manages the flow.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config file")
	dictPath := flag.String("dict", "", "Dictionary file or chunk directory (default from config)")
	dictFormat := flag.String("format", "", "Dictionary format: auto, text, chunk or chunks")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	workerMode := flag.Bool("k", false, "Run the Kafka worker")
	limit := flag.Int("limit", 0, "Number of vanity numbers to return (default from config)")
	region := flag.String("region", "", "Region for numbers without a country code (default from config)")
	exportDir := flag.String("export", "", "Write the loaded dictionary as chunk files to this dir and exit")
	chunkSize := flag.Int("chunk", 10000, "Words per chunk file for -export")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel, *workerMode)

	appConfig, activePath, _ := config.LoadConfigWithPriority(*configPath)
	if !*debugMode {
		if err := logger.ApplyLevel(appConfig.Log.Level); err != nil {
			log.Warnf("Ignoring log level from config: %v", err)
		}
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *limit > 0 {
		appConfig.Vanity.MaxResults = appConfig.ClampLimit(*limit)
	}
	if *region != "" {
		appConfig.CLI.DefaultRegion = *region
	}
	if *dictPath != "" {
		appConfig.Dict.Path = *dictPath
	}
	if *dictFormat != "" {
		appConfig.Dict.Format = *dictFormat
	}

	configDir := ""
	if activePath != "" {
		configDir = filepath.Dir(activePath)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolvedDict := pathResolver.ResolveDictPath(appConfig.Dict.Path)

	format, err := dictionary.ParseFormat(appConfig.Dict.Format)
	if err != nil {
		log.Fatalf("Bad dictionary format: %v", err)
	}
	log.Debugf("Loading dictionary: path=[%s], format=[%s]", resolvedDict, format)

	idx, err := dictionary.Shared(resolvedDict, format)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	if *exportDir != "" {
		exportChunks(idx, *exportDir, *chunkSize)
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	m.SetDictionaryWords(idx.Len())
	if appConfig.Metrics.Enabled {
		shutdown := metrics.StartServer(appConfig.Metrics.Port, reg)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warnf("Metrics server shutdown: %v", err)
			}
		}()
	}

	engine := vanity.NewEngine(idx)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"region", appConfig.CLI.DefaultRegion,
			"limit", appConfig.Vanity.MaxResults,
			"maxLen", appConfig.Vanity.MaxNumberLen)

		inputHandler := cli.NewInputHandler(engine, appConfig.CLI.DefaultRegion,
			appConfig.Vanity.MaxResults, appConfig.Vanity.MaxNumberLen, idx.Len())
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	st, err := store.Open(appConfig.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", appConfig.Store.Backend, err)
	}
	defer st.Close()

	svc := contact.NewService(engine, st, contact.Options{
		Region:       appConfig.CLI.DefaultRegion,
		MaxResults:   appConfig.Vanity.MaxResults,
		MaxNumberLen: appConfig.Vanity.MaxNumberLen,
		Metrics:      m,
	})

	if *workerMode {
		worker, err := kafka.NewWorker(appConfig.Kafka, contact.NewHandler(svc))
		if err != nil {
			log.Fatalf("Failed to create Kafka worker: %v", err)
		}
		defer worker.Close()

		log.Debugf("Kafka worker: %v -> %s -> %s", appConfig.Kafka.Brokers,
			appConfig.Kafka.EventsTopic, appConfig.Kafka.ResultsTopic)
		if err := worker.Run(ctx); err != nil {
			log.Errorf("Kafka worker stopped: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(svc, appConfig)

	showStartupInfo(resolvedDict, idx.Len(), appConfig.Store.Backend)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// exportChunks writes every indexed word into chunk files under dir.
func exportChunks(idx *dictionary.Index, dir string, chunkSize int) {
	words := slices.Collect(idx.Words())
	chunks, err := dictionary.WriteChunkDir(dir, words, chunkSize)
	if err != nil {
		log.Fatalf("Failed to export dictionary: %v", err)
	}
	log.Infof("Exported %s words into %d chunk files in %s",
		utils.FormatWithCommas(len(words)), len(chunks), dir)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ VanityServe ] Spells phone numbers with words!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, words int, backend string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" VanityServe ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionary: ( %s ) %s words", dictPath, utils.FormatWithCommas(words))
	log.Infof("store: %s", backend)
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
