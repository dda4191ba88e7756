/*
Package main implements the dictionary compiler.

vgcompile reads a plaintext source of "<word> <frequency>" lines and
writes a compiled binary dictionary that cmd/vgquery can mmap and query.

# Usage

	vgcompile -out dict.bin words.txt

Remove words from the source without editing it, and print a build
report:

	vgcompile -out dict.bin -remove foo -remove bar -stats words.txt

Verify a previously compiled dictionary against its source:

	vgcompile -verify -out dict.bin words.txt
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/internal/config"
	"github.com/dvaumoron/vaguesearch/internal/logger"
	"github.com/dvaumoron/vaguesearch/pkg/dictionary"
)

const (
	version = "0.1.0"
	appName = "vaguesearch"
)

// stringList collects every occurrence of a repeatable -remove flag.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	outPath := flag.String("out", "dict.bin", "Path to write the compiled dictionary to")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	minRun := flag.Int("min-range-run", defaultConfig.Compile.MinRangeRun, "Minimum run length before a single-character sibling run is range-consolidated")
	minDensity := flag.Float64("min-range-density", defaultConfig.Compile.MinRangeDensity, "Minimum occupied-slot density before range consolidation")
	verify := flag.Bool("verify", false, "Verify an existing compiled dictionary against the source instead of writing a new one")
	stats := flag.Bool("stats", false, "Print a build report after compiling")
	var removals stringList
	flag.Var(&removals, "remove", "Remove a word from the source before compiling (repeatable)")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <source.txt>\n", appName)
		flag.PrintDefaults()
		os.Exit(1)
	}
	sourcePath := flag.Arg(0)

	if *verify {
		mismatches, err := dictionary.Verify(sourcePath, *outPath)
		if err != nil {
			log.Fatalf("verify failed: %v", err)
		}
		if mismatches > 0 {
			log.Errorf("verify: %d mismatch(es) found", mismatches)
			os.Exit(1)
		}
		log.Info("verify: OK, no mismatches")
		return
	}

	report, err := dictionary.CompileFile(sourcePath, *outPath, *minRun, *minDensity, removals)
	if err != nil {
		log.Fatalf("compile failed: %v", err)
	}

	if *stats {
		log.Printf("source lines accepted: %d", report.Accepted)
		log.Printf("source lines skipped:  %d", report.Skipped)
		log.Printf("compiled nodes:        %d", report.NodeCount)
		log.Printf("output size:           %d bytes", report.OutputSize)
	}
}

func printVersion() {
	banner := logger.Banner()
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ vgcompile ] Compiles word/frequency lists into a searchable dictionary")
	banner.Print("", "version", version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
}
