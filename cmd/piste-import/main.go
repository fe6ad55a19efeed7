package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/piste/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Piste server URL (e.g. https://piste.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for the templates endpoint")
	dir := flag.String("path", "", "directory of exported template JSON files")
	dryRun := flag.Bool("dry-run", false, "parse and validate files but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("piste-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: piste-import -server <URL> -api-key <key> -path <export dir> [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if (*serverURL == "" || *apiKey == "") && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server and -api-key are required (or use -dry-run)\n")
		os.Exit(1)
	}

	*serverURL = strings.TrimRight(*serverURL, "/")

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", *dir)
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := upload.OpenStateDB(filepath.Join(homeDir, ".piste-import"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	} else {
		log.Info("DRY RUN mode — files will be parsed but not sent")
	}

	importer := upload.New(client, state, *dir, *dryRun, log)
	stats, err := importer.Run()
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("import complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:    %d\n", stats.FilesTotal)
	fmt.Printf("  Files imported: %d\n", stats.FilesImported)
	fmt.Printf("  Files skipped:  %d (already imported)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:  %d\n", stats.FilesErrored)
	fmt.Println()
}
