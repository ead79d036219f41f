package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tdurnford/chicken-little-sub001/internal/ai"
	"github.com/tdurnford/chicken-little-sub001/internal/config"
	"github.com/tdurnford/chicken-little-sub001/internal/data"
	"github.com/tdurnford/chicken-little-sub001/internal/db"
	"github.com/tdurnford/chicken-little-sub001/internal/model"
	"github.com/tdurnford/chicken-little-sub001/internal/sim"
	"github.com/tdurnford/chicken-little-sub001/internal/wave"
	"github.com/tdurnford/chicken-little-sub001/internal/zone"
)

const DefaultConfigPath = "config/simserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("CHICKENLITTLE_SIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("threat simulation starting", "log_level", cfg.LogLevel, "tick_rate", cfg.TickRate)

	if err := data.LoadSpeciesDefs(); err != nil {
		return fmt.Errorf("loading species catalog: %w", err)
	}

	areas := make([]zone.DefendedArea, 0, len(cfg.Zone.Areas))
	for _, a := range cfg.Zone.Areas {
		areas = append(areas, zone.DefendedArea{
			Anchor:      model.NewVector3(a.X, a.Y, a.Z),
			TargetCount: a.TargetCount,
		})
	}
	provider := zone.NewStaticProvider(areas)

	seed := uint64(time.Now().UnixNano())
	simulation := sim.New(cfg, provider, rand.New(rand.NewPCG(seed, seed>>1|1)))

	var repo *db.SessionRepository
	sessionID := uuid.NewString()
	if cfg.PersistResults {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		handle, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer handle.Close()

		repo = db.NewSessionRepository(handle)
		if err := repo.EnsureSession(ctx, sessionID); err != nil {
			return err
		}
		slog.Info("session persistence enabled", "session", sessionID)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runTickLoop(ctx, cfg, simulation, repo, sessionID)
	})

	return g.Wait()
}

// runTickLoop drives the simulation clock until the context is canceled.
func runTickLoop(ctx context.Context, cfg config.Simulation, simulation *sim.Simulation, repo *db.SessionRepository, sessionID string) error {
	tickInterval := time.Duration(float64(time.Second) / cfg.TickRate)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	slog.Info("tick loop started", "interval", tickInterval)

	start := time.Now()
	last := start
	lastSummary := start

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick loop stopping")
			return ctx.Err()

		case t := <-ticker.C:
			now := t.Sub(start).Seconds()
			dt := t.Sub(last).Seconds()
			last = t

			report := simulation.Tick(now, dt, dayNightMultiplier(t))

			if repo != nil && len(report.Resolved) > 0 {
				flushResults(ctx, repo, sessionID, simulation, report.Resolved)
			}

			if t.Sub(lastSummary) >= 30*time.Second {
				lastSummary = t
				logSummary(simulation.Summary(now, dayNightMultiplier(t)))
			}
		}
	}
}

// flushResults persists resolved predators and pays out pending rewards.
func flushResults(ctx context.Context, repo *db.SessionRepository, sessionID string, simulation *sim.Simulation, resolved []model.PredatorLifecycle) {
	for _, rec := range resolved {
		reward := int64(0)
		if rec.State == model.LifecycleCaught {
			if def := data.GetSpeciesDef(rec.SpeciesID); def != nil {
				reward = def.RewardAmount()
			}
		}
		if err := repo.SaveResult(ctx, sessionID, rec, reward); err != nil {
			slog.Error("persisting predator result", "id", rec.ID, "error", err)
		}
	}

	state := simulation.Scheduler().WaveState()
	if err := repo.UpdateSessionTotals(ctx, sessionID, state); err != nil {
		slog.Error("persisting session totals", "error", err)
	}
	if amount := simulation.Scheduler().DrainPendingReward(); amount > 0 {
		if err := repo.PayoutReward(ctx, sessionID, amount); err != nil {
			slog.Error("paying out reward", "amount", amount, "error", err)
		}
	}
}

func logSummary(s wave.Summary) {
	slog.Info("threat summary",
		"wave", s.WaveNumber,
		"difficulty", s.DifficultyMultiplier,
		"spawned", s.SpawnedCount,
		"dominantTier", s.DominantTier,
		"pendingReward", s.PendingReward,
		"nextSpawnIn", fmt.Sprintf("%.1fs", s.TimeUntilNextSpawn),
		"caught", s.TotalCaught,
		"escaped", s.TotalEscaped,
		"defeated", s.TotalDefeated)
}

// dayNightMultiplier maps wall-clock time to spawn pressure: predators
// push harder at night.
func dayNightMultiplier(t time.Time) float64 {
	hour := t.Hour()
	if hour >= 20 || hour < 6 {
		return 1.5
	}
	return 1.0
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
