// Package loadgen drives the replacer under concurrent synthetic load,
// the way many buffer-pool workers would, and reports what happened.
// It is bustubctl-only tooling: nothing here is part of the replacer's
// or the estimators' public contract.
package loadgen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/panjf2000/ants"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mackushev/bustub/cardinality"
	"github.com/mackushev/bustub/internal/telemetry"
	"github.com/mackushev/bustub/replacer"
)

// Result summarises one load generator run.
type Result struct {
	RunID                  string
	EvictionCount          int
	DistinctFramesEstimate uint64
}

// Run replays events against r using concurrency concurrent simulated
// buffer-pool clients, fanned out with an errgroup.Group. Each client's
// actual replacer calls are submitted to a bounded ants.Pool rather
// than run on raw goroutines, capping how many are in flight at once
// regardless of how many clients the errgroup spawned.
//
// Every touched frame is marked evictable and immediately offered to
// Evict, simulating a pool that's permanently under memory pressure;
// this exercises the full RecordAccess/SetEvictable/Evict cycle rather
// than just accumulating history.
func Run(ctx context.Context, events []Event, r *replacer.LRUKReplacer, concurrency int, tel *telemetry.Telemetry) (Result, error) {
	runID := uuid.New().String()

	ctx, span := tel.Tracer.Start(ctx, "loadgen.run", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	evictionCounter, err := tel.Meter.Int64Counter("loadgen.evictions")
	if err != nil {
		return Result{}, fmt.Errorf("build eviction counter: %w", err)
	}

	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return Result{}, fmt.Errorf("build worker pool: %w", err)
	}
	defer pool.Release()

	var evicted atomic.Int64
	var touchedMu sync.Mutex
	touched := make(map[replacer.FrameID]struct{}, len(events))

	g, _ := errgroup.WithContext(ctx)
	for _, shard := range shardEvents(events, concurrency) {
		shard := shard
		g.Go(func() error {
			return runShard(shard, pool, r, &evicted, touched, &touchedMu, func(id replacer.FrameID) {
				evictionCounter.Add(ctx, 1)
				tel.Log.Debugw("evicted frame", "run_id", runID, "frame_id", id)
			})
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("load generator: %w", err)
	}

	estimator := cardinality.New(10)
	for id := range touched {
		estimator.Add(cardinality.IntKey(int64(id)))
	}
	estimator.ComputeCardinality()

	span.SetAttributes(attribute.Int64("evictions", evicted.Load()))

	return Result{
		RunID:                  runID,
		EvictionCount:          int(evicted.Load()),
		DistinctFramesEstimate: estimator.Cardinality(),
	}, nil
}

// runShard processes one client's events through pool, waiting for
// every submitted task before returning so the caller's errgroup sees
// a clean per-client completion signal.
func runShard(
	shard []Event,
	pool *ants.Pool,
	r *replacer.LRUKReplacer,
	evicted *atomic.Int64,
	touched map[replacer.FrameID]struct{},
	touchedMu *sync.Mutex,
	onEvict func(replacer.FrameID),
) error {
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var submitErr error

	for _, ev := range shard {
		ev := ev
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			r.RecordAccess(ev.FrameID, ev.Kind)
			r.SetEvictable(ev.FrameID, true)

			touchedMu.Lock()
			touched[ev.FrameID] = struct{}{}
			touchedMu.Unlock()

			if id, ok := r.Evict(); ok {
				evicted.Add(1)
				onEvict(id)
			}
		})
		if err != nil {
			wg.Done()
			errMu.Lock()
			if submitErr == nil {
				submitErr = err
			}
			errMu.Unlock()
		}
	}

	wg.Wait()

	errMu.Lock()
	defer errMu.Unlock()
	return submitErr
}

// shardEvents splits events into up to n round-robin shards, so each
// simulated client gets an interleaved slice of the trace rather than
// a contiguous run (closer to how independent buffer-pool workers
// would actually interleave on a shared trace).
func shardEvents(events []Event, n int) [][]Event {
	if n <= 0 {
		n = 1
	}
	shards := make([][]Event, n)
	for i, ev := range events {
		shards[i%n] = append(shards[i%n], ev)
	}
	return shards
}
