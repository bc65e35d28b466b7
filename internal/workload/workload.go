package workload

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/shivam-909/regionbuf/internal/orderbook"
	"github.com/shivam-909/regionbuf/internal/orderbook/regionbook"
	standardbook "github.com/shivam-909/regionbuf/internal/orderbook/standard"
	"github.com/shivam-909/regionbuf/region"
)

// Result sums up a run.
type Result struct {
	Frames      int
	Ops         int
	Exhaustions int
	// PeakBytes is the most any single worker region had handed out at the
	// end of a frame.
	PeakBytes uint64
	// Checksum adds up every top-of-book snapshot. Runs with the same
	// config and no exhaustions produce the same checksum in both modes.
	Checksum uint64
	Duration time.Duration
}

// Runner plays frames of order book traffic on a set of workers.
type Runner struct {
	cfg     Config
	logger  log.Logger
	metrics *metrics

	// root owns the span every worker region is carved from. nil in
	// standard mode.
	root    *region.Buffer
	workers []*worker
}

type worker struct {
	id     string
	buf    *region.Buffer
	book   orderbook.OrderBook
	gen    *orderbook.Generator
	result Result
}

// New sets up the workers. In region mode it reserves one region large
// enough for all of them and carves a sub-region per worker, so workers
// never share a cursor.
func New(cfg Config, logger log.Logger, reg prometheus.Registerer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(reg),
	}

	if cfg.Mode == ModeRegion {
		size := uint64(cfg.Workers) * uint64(cfg.FrameSize)
		root, err := region.New(size)
		if err != nil {
			return nil, fmt.Errorf("reserving worker regions: %w", err)
		}
		r.root = root
		r.metrics.capacity.Set(float64(size))
		level.Debug(logger).Log("msg", "reserved region", "bytes", size, "workers", cfg.Workers)
	}

	for i := 0; i < cfg.Workers; i++ {
		w := &worker{
			id:  strconv.Itoa(i),
			gen: orderbook.NewGenerator(cfg.Seed + uint64(i)),
		}
		if r.root != nil {
			w.buf = r.root.Carve(uint64(cfg.FrameSize))
			w.book = regionbook.New(w.buf)
		} else {
			w.book = standardbook.New()
		}
		r.workers = append(r.workers, w)
	}
	return r, nil
}

// Run plays cfg.Frames frames on every worker concurrently. It stops
// between frames once ctx is done, or as soon as any worker fails, and
// returns the totals gathered so far.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range r.workers {
		g.Go(func() error {
			return r.runWorker(ctx, w)
		})
	}
	err := g.Wait()

	var res Result
	for _, w := range r.workers {
		res.Frames += w.result.Frames
		res.Ops += w.result.Ops
		res.Exhaustions += w.result.Exhaustions
		res.PeakBytes = max(res.PeakBytes, w.result.PeakBytes)
		res.Checksum += w.result.Checksum
	}
	res.Duration = time.Since(start)
	return res, err
}

// Orders returns the resting orders of worker i as of the end of its last
// frame. It must not be called while Run is in progress.
func (r *Runner) Orders(i int) []orderbook.Order {
	return r.workers[i].book.Orders()
}

// Close gives the reserved region back to the operating system. The
// runner must not be used afterwards.
func (r *Runner) Close() error {
	if r.root == nil {
		return nil
	}
	return r.root.Release()
}

func (r *Runner) runWorker(ctx context.Context, w *worker) error {
	logger := log.With(r.logger, "worker", w.id)

	for frame := 0; frame < r.cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runFrame(w); err != nil {
			level.Error(logger).Log("msg", "frame failed", "frame", frame, "err", err)
			return fmt.Errorf("worker %s frame %d: %w", w.id, frame, err)
		}
		level.Debug(logger).Log("msg", "frame done", "frame", frame, "resting", w.book.Len())
	}

	level.Info(logger).Log("msg", "worker done", "frames", w.result.Frames, "ops", w.result.Ops, "exhaustions", w.result.Exhaustions)
	return nil
}

// runFrame starts from an empty book, plays up to OpsPerFrame operations and
// snapshots the most recent resting orders. Running out of region memory
// ends the frame early; it is counted, not treated as a failure.
func (r *Runner) runFrame(w *worker) error {
	w.book.Reset()
	w.gen.Restart()

	// The book has just reset the worker region; the scratch area comes off
	// the front of it and the book allocates behind it.
	snapshot := func(n int) ([]int, error) { return make([]int, n), nil }
	if w.buf != nil {
		scratch := w.buf.Carve(uint64(r.cfg.ScratchSize))
		snapshot = func(n int) ([]int, error) { return region.AllocateSlice[int](scratch, n) }
	}

	ops := 0
	for ; ops < r.cfg.OpsPerFrame; ops++ {
		err := w.gen.Act(w.book)
		if err == nil {
			continue
		}
		if errors.Is(err, region.ErrOutOfMemory) {
			w.result.Exhaustions++
			r.metrics.exhaustions.WithLabelValues(w.id).Inc()
			break
		}
		return err
	}

	orders := w.book.Orders()
	n := min(r.cfg.TopOfBook, len(orders))
	top, err := snapshot(n)
	if err != nil {
		return fmt.Errorf("top of book snapshot: %w", err)
	}
	for i, o := range orders[len(orders)-n:] {
		top[i] = o.ID
	}
	for _, id := range top {
		w.result.Checksum += uint64(id)
	}

	w.result.Frames++
	w.result.Ops += ops
	r.metrics.frames.WithLabelValues(w.id).Inc()
	r.metrics.ops.WithLabelValues(w.id).Add(float64(ops))
	if w.buf != nil {
		inUse := w.buf.Offset()
		w.result.PeakBytes = max(w.result.PeakBytes, inUse)
		r.metrics.bytesInUse.WithLabelValues(w.id).Set(float64(inUse))
	}
	return nil
}
