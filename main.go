package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vector233/AsgFlow/internal/automation"
	"github.com/vector233/AsgFlow/internal/engine"
	"github.com/vector233/AsgFlow/internal/i18n"
	"github.com/vector233/AsgFlow/internal/ui"
	"github.com/vector233/AsgFlow/internal/workflow"
)

func main() {
	// Define command line arguments
	runFile := flag.String("run", "", "Path to a workflow JSON file to replay without the GUI")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// If no workflow file is specified, start GUI mode by default
	if *runFile == "" {
		ui.RunGUI()
		return
	}

	if err := runHeadless(*runFile); err != nil {
		fmt.Printf("Failed to run workflow: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless replays a saved workflow from the console. Ctrl+C requests a
// stop; the run still finishes the action in flight before returning.
func runHeadless(path string) error {
	store := workflow.NewStore("")
	wf, err := store.Load(path)
	if err != nil {
		return err
	}

	hooks := engine.Hooks{
		OnStep: func(index int) {
			fmt.Println(i18n.Tf("status_step", index+1, len(wf)))
		},
		OnIteration: func(i, count int) {
			fmt.Println(i18n.Tf("status_loop", i, count))
		},
	}
	e := engine.New(automation.NewRobot(), hooks)
	sig := engine.NewSignal()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	go func() {
		<-interrupts
		fmt.Println(i18n.T("status_stopping"))
		sig.Stop()
	}()

	switch err := e.Run(wf, sig); {
	case err == nil:
		fmt.Println(i18n.T("status_done"))
		return nil
	case errors.Is(err, engine.ErrStopped):
		fmt.Println(i18n.T("status_stopped"))
		return nil
	default:
		return err
	}
}
