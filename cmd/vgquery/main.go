/*
Package main implements the query application.

vgquery loads a compiled dictionary (produced by cmd/vgcompile) and
serves "approx <distance> <word>" queries read from standard input, one
JSON array of matches written to standard output per query.

# Usage

	vgquery dict.bin

Disable mmap and fall back to a plain read (useful on platforms or
filesystems where mmap is unreliable):

	vgquery -mmap=false dict.bin
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/internal/config"
	"github.com/dvaumoron/vaguesearch/internal/logger"
	"github.com/dvaumoron/vaguesearch/pkg/dictionary"
	"github.com/dvaumoron/vaguesearch/pkg/queryengine"
)

const (
	version = "0.1.0"
	appName = "vaguesearch"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	useMmap := flag.Bool("mmap", defaultConfig.Search.UseMmap, "Memory-map the dictionary file instead of reading it fully into memory")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <dict.bin>\n", appName)
		flag.PrintDefaults()
		os.Exit(1)
	}
	dictPath := flag.Arg(0)

	dict, err := dictionary.Open(dictPath, *useMmap)
	if err != nil {
		log.Fatalf("failed to open dictionary: %v", err)
	}
	defer dict.Close()

	log.Debugf("dictionary %s loaded: %d nodes", dictPath, dict.Trie.NodeCount())

	if err := queryengine.RunStdin(dict.Trie, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("query loop failed: %v", err)
	}
}

func printVersion() {
	banner := logger.Banner()
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ vgquery ] Serves approximate dictionary lookups over stdin")
	banner.Print("", "version", version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
}
