package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/quadsnap/internal/config"
	"github.com/1broseidon/quadsnap/internal/hotkeys"
	"github.com/1broseidon/quadsnap/internal/ipc"
	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/quadsnap/config.yaml)")
	display := fs.String("display", "", "X display to connect to (default: config display, then $DISPLAY)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: quadsnap daemon [--path PATH] [--display :N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Grab the snap hotkeys and serve IPC requests until interrupted.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	configPath := *path
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			log.Printf("Failed to resolve config path: %v", err)
			return 1
		}
		configPath = p
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	log.Printf("Configuration loaded (menu_inset: %g, similarity_factor: %g)", cfg.MenuInset, cfg.SimilarityFactor)

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	displayName := *display
	if displayName == "" {
		displayName = cfg.Display
	}
	backend, err := platform.NewLinuxBackendFromDisplay(displayName)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	engine := snap.NewEngine(backend, snap.Options{
		Params:     cfg.Params(),
		Classifier: cfg.Classifier(),
		Logger:     logger,
	})

	onDirection := func(d snap.Direction) {
		if _, err := engine.ApplyActive(d); err != nil {
			log.Printf("Snap %s failed: %v", d, err)
		}
	}

	handler := hotkeys.NewHandler(backend)
	if err := handler.RegisterDirections(cfg.Bindings.Map(), onDirection); err != nil {
		log.Printf("Failed to register hotkeys: %v", err)
		return 1
	}
	if cfg.UndoHotkey != "" {
		if err := handler.RegisterFunc(cfg.UndoHotkey, func() {
			if err := engine.UndoActive(); err != nil && !errors.Is(err, snap.ErrNothingToUndo) {
				log.Printf("Undo failed: %v", err)
			}
		}); err != nil {
			log.Printf("Warning: Failed to register undo_hotkey: %v", err)
		} else {
			log.Printf("Undo hotkey registered: %s", cfg.UndoHotkey)
		}
	}

	var cfgMu sync.Mutex
	apply := func(next *config.Config) {
		cfgMu.Lock()
		defer cfgMu.Unlock()

		engine.Update(next.Params(), next.Classifier())
		level.Set(next.SlogLevel())
		if err := handler.RegisterDirections(next.Bindings.Map(), onDirection); err != nil {
			log.Printf("Failed to rebind hotkeys: %v", err)
		}
		if next.UndoHotkey != cfg.UndoHotkey {
			log.Printf("undo_hotkey change to %q takes effect after restart", next.UndoHotkey)
		}
		if next.Display != cfg.Display {
			log.Printf("display change to %q takes effect after restart", next.Display)
		}
		cfg = next
	}
	reload := func() error {
		res, err := config.LoadFromPath(configPath)
		if err != nil {
			return err
		}
		apply(res.Config)
		return nil
	}

	ipcServer, err := ipc.NewServer(engine, reload)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		watcher := config.NewWatcher(configPath, func(res *config.LoadResult) {
			log.Println("Config file changed, reloading...")
			apply(res.Config)
		}, nil)
		return watcher.Run(gctx)
	})

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				log.Println("Received SIGHUP, reloading config...")
				if err := reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				log.Println("Config reloaded successfully")
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		backend.Quit()
		return nil
	})

	log.Println("quadsnap daemon started successfully")
	log.Println("Entering event loop...")
	backend.EventLoop()

	// The event loop also returns when the X connection goes away.
	stop()
	if err := g.Wait(); err != nil {
		log.Printf("Daemon error: %v", err)
		return 1
	}
	log.Println("Shutting down quadsnap daemon...")
	return 0
}
