// Command xrbridge-monitor hosts the device registry on a simulated runtime
// session and serves live device state over HTTP/WebSocket. It exists for
// development: it exercises discovery, event synthesis and the property
// surface without real hardware attached.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soar/xrbridge/internal/config"
	"github.com/soar/xrbridge/internal/device"
	"github.com/soar/xrbridge/internal/event"
	"github.com/soar/xrbridge/internal/hub"
	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
	"github.com/soar/xrbridge/internal/server"
	"github.com/soar/xrbridge/internal/simrt"
)

// Cross-platform signal handling: os.Interrupt covers Ctrl+C on Windows and
// SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	sess := simrt.NewSession("")

	var registry *device.Registry
	if cfg.FullRegistry {
		registry = device.NewFullRegistry(logger)
	} else {
		registry = device.NewRegistry(logger)
	}
	registry.TrackerNameHint = cfg.TrackerNameHint

	if err := seedSimulation(ctx, sess, registry, logger); err != nil {
		logger.Error("seed simulation", "error", err)
		os.Exit(1)
	}

	poller := event.NewPoller(registry, cfg.PollInterval, logger)
	go poller.Run(ctx)

	h := hub.NewHub(logger)
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, registry, sess, poller.Events(), cfg.SnapshotInterval)
	go broadcaster.Run(ctx)

	refresher := &trackerRefresher{ctx: ctx, registry: registry, session: sess}
	srv := server.New(h, broadcaster, refresher, cfg.ListenAddr, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	go runSimulation(ctx, sess, registry)

	logger.Info("xrbridge monitor started", "addr", cfg.ListenAddr)

	select {
	case <-sigCh:
		logger.Info("shutting down")
		cancel()
	case err := <-serverErrCh:
		logger.Error("monitor server error", "error", err)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("monitor server shutdown", "error", err)
	}

	logger.Info("xrbridge monitor stopped")
}

// trackerRefresher adapts the registry for client-triggered refreshes.
type trackerRefresher struct {
	ctx      context.Context
	registry *device.Registry
	session  *simrt.Session
}

func (t *trackerRefresher) RefreshTrackers() error {
	return t.registry.RefreshGenericTrackers(t.ctx, t.session)
}

// seedSimulation attaches simulated hardware: Index controllers on orbiting
// spaces and a pair of enumerable trackers, then runs initial discovery.
func seedSimulation(ctx context.Context, sess *simrt.Session, registry *device.Registry, logger *slog.Logger) error {
	for i, hand := range []profile.Hand{profile.LeftHand, profile.RightHand} {
		controller, err := registry.Controller(hand)
		if err != nil {
			// HMD-only configuration; nothing to attach.
			logger.Info("no controller slots; running HMD-only", "error", err)
			break
		}
		if err := controller.AssignProfile(profile.Knuckles); err != nil {
			return err
		}
		controller.BindSpace(&simrt.OrbitSpace{
			Radius: 0.4,
			Height: 1.2,
			Period: 8 * time.Second,
			Phase:  float64(i) * 3.14,
		})
		controller.SetConnected(true)

		bindings := controller.Profile().LegacyBindings(runtime.Binder{Resolve: sess.Resolve})
		logger.Debug("legacy bindings resolved",
			"hand", hand,
			"profile", controller.Profile().Path(),
			"gripPose", len(bindings.GripPose),
			"trigger", len(bindings.Trigger))
	}

	if enum := sess.Enumerator(); enum != nil {
		enum.SetDevices([]runtime.ExternalDevice{
			{
				Name:   "Simulated Tracker A",
				Serial: "SIM-TRK-A",
				Space:  &simrt.OrbitSpace{Radius: 1.0, Height: 0.1, Period: 12 * time.Second},
			},
			{
				Name:   "Simulated Tracker B",
				Serial: "SIM-TRK-B",
				Space:  &simrt.OrbitSpace{Radius: 1.0, Height: 0.9, Period: 12 * time.Second, Phase: 3.14},
			},
		})
	}
	if err := registry.RefreshGenericTrackers(ctx, sess); err != nil {
		// HMD-only registries have no tracker slots to fill.
		if errors.Is(err, device.ErrNoControllerSlots) {
			return nil
		}
		return err
	}
	return nil
}

// runSimulation advances display time and periodically drops one tracker's
// connection so the event feed has something to report.
func runSimulation(ctx context.Context, sess *simrt.Session, registry *device.Registry) {
	frame := time.NewTicker(16 * time.Millisecond)
	defer frame.Stop()
	toggle := time.NewTicker(7 * time.Second)
	defer toggle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-frame.C:
			sess.Advance(16 * time.Millisecond)
		case <-toggle.C:
			if d, ok := registry.Get(device.ReservedIndices); ok {
				d.SetConnected(!d.Connected())
			}
		}
	}
}
