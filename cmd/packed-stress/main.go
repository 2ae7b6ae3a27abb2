// Command packed-stress churns packedgo stores and reports throughput.
//
// Each worker owns one store and runs a single-threaded insert/get/remove
// loop against it, matching the library's external-synchronization model.
// Workers run in parallel to measure aggregate throughput across cores.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/packedgo"
)

type config struct {
	capacity    int
	workers     int
	duration    time.Duration
	rateLimit   int
	removeRatio float64
	seed        int64
	verbose     bool
}

// payload approximates a small cache entry.
type payload struct {
	id   uint64
	data [48]byte
}

func main() {
	cfg := config{}
	pflag.IntVar(&cfg.capacity, "capacity", 1<<16, "max capacity of each worker's store")
	pflag.IntVar(&cfg.workers, "workers", runtime.GOMAXPROCS(0), "number of parallel workers, one store each")
	pflag.DurationVar(&cfg.duration, "duration", 10*time.Second, "how long to run the churn loop")
	pflag.IntVar(&cfg.rateLimit, "rate", 0, "aggregate operations per second, 0 for unlimited")
	pflag.Float64Var(&cfg.removeRatio, "remove-ratio", 0.5, "fraction of operations that remove instead of insert")
	pflag.Int64Var(&cfg.seed, "seed", 1, "base RNG seed, worker i uses seed+i")
	pflag.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := packedgo.NewTextLogger(level)

	if cfg.removeRatio < 0 || cfg.removeRatio > 1 {
		logger.Error("remove-ratio must be in [0, 1]", "remove_ratio", cfg.removeRatio)
		os.Exit(2)
	}

	logger.Info("starting stress run",
		"capacity", cfg.capacity,
		"workers", cfg.workers,
		"duration", cfg.duration,
		"rate", cfg.rateLimit,
		"remove_ratio", cfg.removeRatio,
	)

	var limiter *rate.Limiter
	if cfg.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.rateLimit), cfg.rateLimit)
	}

	report := &Report{
		Workers:     cfg.workers,
		Capacity:    cfg.capacity,
		RemoveRatio: cfg.removeRatio,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]workerResult, cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		g.Go(func() error {
			res, err := runWorker(ctx, cfg, logger, limiter, cfg.seed+int64(i))
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("stress run failed", "error", err)
		os.Exit(1)
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	for _, res := range results {
		report.Add(res)
	}

	if err := report.Render(os.Stdout); err != nil {
		logger.Error("report rendering failed", "error", err)
		os.Exit(1)
	}
}

type workerResult struct {
	Inserts     uint64
	Removes     uint64
	Gets        uint64
	StaleProbes uint64
	FinalLen    int
	Stats       packedgo.Stats
}

// runWorker churns one store until the context expires. The loop keeps the
// store around (removeRatio * capacity) full, probes a live handle and a
// stale handle on every round, and verifies integrity once at the end.
func runWorker(ctx context.Context, cfg config, logger *packedgo.Logger, limiter *rate.Limiter, seed int64) (workerResult, error) {
	var res workerResult

	store, err := packedgo.New[payload](cfg.capacity, packedgo.WithLogger(logger))
	if err != nil {
		return res, fmt.Errorf("create store: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	handles := make([]packedgo.Handle, 0, cfg.capacity)
	var stale packedgo.Handle
	haveStale := false
	var nextID uint64

	finish := func() (workerResult, error) {
		if err := store.CheckIntegrity(); err != nil {
			return res, fmt.Errorf("integrity check after churn: %w", err)
		}
		res.FinalLen = store.Len()
		res.Stats = store.Stats()
		return res, nil
	}

	for {
		select {
		case <-ctx.Done():
			return finish()
		default:
		}

		if limiter != nil {
			// Wait fails once the deadline is reached or the next token
			// would land past it; either way the run is over.
			if err := limiter.Wait(ctx); err != nil {
				return finish()
			}
		}

		remove := len(handles) > 0 &&
			(store.Len() >= cfg.capacity || rng.Float64() < cfg.removeRatio)

		if remove {
			i := rng.Intn(len(handles))
			h := handles[i]
			if _, ok := store.Remove(h); !ok {
				return res, fmt.Errorf("live handle %v failed to remove", h)
			}
			handles[i] = handles[len(handles)-1]
			handles = handles[:len(handles)-1]
			stale, haveStale = h, true
			res.Removes++
		} else {
			nextID++
			h, err := store.Insert(payload{id: nextID})
			if err != nil {
				return res, fmt.Errorf("insert at len %d: %w", store.Len(), err)
			}
			handles = append(handles, h)
			res.Inserts++
		}

		if len(handles) > 0 {
			h := handles[rng.Intn(len(handles))]
			if _, ok := store.Get(h); !ok {
				return res, fmt.Errorf("live handle %v failed to resolve", h)
			}
			res.Gets++
		}
		if haveStale {
			if _, ok := store.Get(stale); ok {
				return res, fmt.Errorf("stale handle %v resolved", stale)
			}
			res.StaleProbes++
		}
	}
}
