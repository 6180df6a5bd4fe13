package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"

	"azimuth/internal/app"
	"azimuth/internal/backend"
	"azimuth/internal/config"
	"azimuth/internal/logging"
	"azimuth/internal/store"
	"azimuth/internal/types"
)

const usageText = `azimuth is a terminal notebook workspace.

Usage:
  azimuth [command] [flags]

Commands:
  ui       run the terminal UI (default)
  search   search notes from the command line
  config   print effective configuration
  version  print version
  help     show help

Flags:
  -h, --help   show help

Examples:
  azimuth
  azimuth search "meeting notes"
  azimuth config
`

const version = "dev"

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	command := "ui"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "-h", "--help", "help":
		printUsage()
		return
	case "ui":
		exitOnErr("ui", runUI(args))
	case "search":
		exitOnErr("search", runSearch(args))
	case "config":
		exitOnErr("config", runConfig(args))
	case "version":
		fmt.Println("azimuth", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}
}

func exitOnErr(command string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "azimuth %s: %v\n", command, err)
	os.Exit(1)
}

func runUI(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	notesDir := fs.String("notes-dir", "", "override the notes directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	logger, closer, err := logging.NewFile(logPath, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return err
	}
	defer closer.Close()

	svc := backend.New(
		backend.WithScanCaps(cfg.MaxNotebooks(), cfg.MaxEntriesToScan()),
		backend.WithLogger(logger),
	)

	statePath, err := config.SessionStatePath(cfg.StoreBackend())
	if err != nil {
		return err
	}
	stateStore, err := store.Open(cfg.StoreBackend(), statePath)
	if err != nil {
		return err
	}
	defer stateStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	restored, err := stateStore.Load(ctx)
	if err != nil {
		logger.Warn("loading session state", logging.F("error", err))
		restored = &types.SessionState{}
	}

	// Effective root: an explicit flag wins, then the restored session's
	// root, then the configured notes dir. Settings and the watcher below
	// must use the same root the session runs against.
	root := *notesDir
	if root == "" {
		root = restored.WorkspaceRoot
	}
	if root == "" {
		root, err = cfg.NotesDir()
		if err != nil {
			cancel()
			return err
		}
	}
	if restored.WorkspaceRoot != "" && restored.WorkspaceRoot != root {
		// Saved tabs and expansion paths belong to the other workspace.
		restored = &types.SessionState{SidebarHidden: restored.SidebarHidden}
	}

	settings, err := svc.LoadSettings(ctx, root)
	if err != nil {
		logger.Warn("loading workspace settings", logging.F("error", err))
		settings = types.DefaultWorkspaceSettings()
	}
	cancel()

	events := make(chan struct{}, 1)
	unwatch, err := svc.Watch(root, func() {
		select {
		case events <- struct{}{}:
		default:
		}
	})
	if err != nil {
		logger.Warn("starting workspace watcher", logging.F("error", err))
	} else {
		defer unwatch()
	}

	model := app.New(svc, cfg, root, logger, stateStore, settings, *restored, events)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	notesDir := fs.String("notes-dir", "", "override the notes directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: azimuth search <query>")
	}
	query := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := *notesDir
	if root == "" {
		root, err = cfg.NotesDir()
		if err != nil {
			return err
		}
	}

	svc := backend.New(backend.WithScanCaps(cfg.MaxNotebooks(), cfg.MaxEntriesToScan()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	results, err := svc.Search(ctx, root, query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NOTE\tNOTEBOOK\tMATCHES\tSNIPPET")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.NoteID, r.NotebookName, r.MatchCount, r.Snippet)
	}
	return w.Flush()
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	defaults := fs.Bool("defaults", false, "print built-in defaults instead of the loaded config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if !*defaults {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
