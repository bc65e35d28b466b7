package workload

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"github.com/shivam-909/regionbuf/internal/flagext"
	"github.com/shivam-909/regionbuf/region"
)

const (
	ModeRegion   = "region"
	ModeStandard = "standard"
)

// Config is config for a workload Runner.
type Config struct {
	Mode        string           `yaml:"mode"`
	Workers     int              `yaml:"workers"`
	Frames      int              `yaml:"frames"`
	OpsPerFrame int              `yaml:"ops_per_frame"`
	FrameSize   flagext.ByteSize `yaml:"frame_size"`
	ScratchSize flagext.ByteSize `yaml:"scratch_size"`
	TopOfBook   int              `yaml:"top_of_book"`
	Seed        uint64           `yaml:"seed"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.FrameSize = 1 << 20
	cfg.ScratchSize = 4 << 10

	f.StringVar(&cfg.Mode, "workload.mode", ModeRegion, "Where order book nodes live. Valid modes: [region, standard]")
	f.IntVar(&cfg.Workers, "workload.workers", 4, "Number of goroutines, each with its own order book.")
	f.IntVar(&cfg.Frames, "workload.frames", 100, "Frames per worker. Every frame starts from an empty book.")
	f.IntVar(&cfg.OpsPerFrame, "workload.ops-per-frame", 10000, "Insert or remove operations per frame.")
	f.Var(&cfg.FrameSize, "workload.frame-size", "Region bytes carved for each worker. Only used in region mode.")
	f.Var(&cfg.ScratchSize, "workload.scratch-size", "Bytes carved from the worker region at the start of each frame for snapshots.")
	f.IntVar(&cfg.TopOfBook, "workload.top-of-book", 16, "Number of most recent resting orders snapshotted at the end of each frame.")
	f.Uint64Var(&cfg.Seed, "workload.seed", 1, "Seed for the order generators. Worker i uses seed+i.")
}

func (cfg *Config) Validate() error {
	switch cfg.Mode {
	case ModeRegion, ModeStandard:
	default:
		return fmt.Errorf("unrecognized workload mode %q", cfg.Mode)
	}
	if cfg.Workers <= 0 {
		return errors.New("workload.workers must be positive")
	}
	if cfg.Frames < 0 || cfg.OpsPerFrame < 0 || cfg.TopOfBook < 0 {
		return errors.New("workload.frames, workload.ops-per-frame and workload.top-of-book must not be negative")
	}

	// Room for the snapshot plus worst-case alignment padding.
	intSize := region.Sizeof[int]()
	top := uint64(cfg.TopOfBook)
	if top > math.MaxUint64/intSize-1 || uint64(cfg.ScratchSize) < (top+1)*intSize {
		return fmt.Errorf("workload.scratch-size %s cannot hold a top-of-book snapshot of %d orders", cfg.ScratchSize, cfg.TopOfBook)
	}

	if cfg.Mode == ModeRegion {
		if cfg.FrameSize <= cfg.ScratchSize {
			return fmt.Errorf("workload.frame-size %s must be larger than workload.scratch-size %s", cfg.FrameSize, cfg.ScratchSize)
		}
		if uint64(cfg.FrameSize) > math.MaxUint64/uint64(cfg.Workers) {
			return errors.New("workload.frame-size times workload.workers overflows")
		}
	}
	return nil
}
