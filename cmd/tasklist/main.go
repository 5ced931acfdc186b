// Package main is the entry point for the tasklist CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tiwariParth/tasklist/internal/app"
	"github.com/tiwariParth/tasklist/internal/cli"
	"github.com/tiwariParth/tasklist/internal/config"
	"github.com/tiwariParth/tasklist/internal/exitcode"
	"github.com/tiwariParth/tasklist/internal/export"
	"github.com/tiwariParth/tasklist/internal/storage"
	"github.com/tiwariParth/tasklist/internal/storage/file"
	"github.com/tiwariParth/tasklist/internal/storage/sqlite"
	"github.com/tiwariParth/tasklist/internal/task"
)

const usage = `Usage:
  tasklist [-config file] [-file path]                 interactive menu
  tasklist [-config file] [-file path] export [-format csv|json|pdf] [-o out]
`

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second signal falls through to the default handler and kills the process.
	context.AfterFunc(ctx, stop)

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { fmt.Fprint(errOut, usage) }
	configPath := fs.String("config", "", "")
	dataFile := fs.String("file", "", "")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitcode.Success
		}
		return exitcode.UserError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if *dataFile != "" {
		cfg.Storage.Path = *dataFile
	}
	if cfg.NoColor {
		cli.DisableColor()
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) > 0 && rest[0] != "export" {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", rest[0])
		fmt.Fprint(errOut, usage)
		return exitcode.UserError
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("failed to open task store", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "error", err)
		return exitcode.StorageError
	}
	defer backend.Close()
	store := task.NewTaskStore(backend)

	if len(rest) > 0 {
		return runExport(ctx, store, rest[1:], out, errOut, logger)
	}

	todo := app.NewTodoApp(store,
		app.WithSortOrder(cfg.Order()),
		app.WithClassifierOptions(cfg.ClassifierOptions()),
		app.WithLogger(logger),
	)
	if err := todo.Init(ctx); err != nil {
		logger.Error("failed to initialize", "path", cfg.Storage.Path, "error", err)
		return exitcode.For(err)
	}

	if err := cli.NewCLI(todo, in, out).Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out)
			return exitcode.Interrupted
		}
		logger.Error("task operation failed", "error", err)
		return exitcode.For(err)
	}
	return exitcode.Success
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.Open(ctx, cfg.Storage.Path)
	default:
		return file.NewFileStore(cfg.Storage.Path)
	}
}

func runExport(ctx context.Context, store *task.TaskStore, args []string, out, errOut io.Writer, logger *slog.Logger) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	format := fs.String("format", "csv", "output format: "+strings.Join(export.Formats, ", "))
	outPath := fs.String("o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitcode.Success
		}
		return exitcode.UserError
	}

	if err := store.Load(ctx); err != nil {
		logger.Error("failed to load tasks", "error", err)
		return exitcode.StorageError
	}

	data, err := export.Export(store.Tasks(), *format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if *outPath == "" {
		if _, err := out.Write(data); err != nil {
			return exitcode.StorageError
		}
		return exitcode.Success
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		logger.Error("failed to write export", "path", *outPath, "error", err)
		return exitcode.StorageError
	}
	logger.Debug("export written", "path", *outPath, "format", *format, "tasks", store.Len())
	return exitcode.Success
}
