// Package driver runs the validate/generate pipeline over one input
// file, splitting multi-packet arrays into per-packet units and
// fanning the units out over a bounded worker pool.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"rplc/internal/cppgen"
	"rplc/internal/diag"
	"rplc/internal/schema"
	"rplc/internal/source"
	"rplc/internal/spanjson"
	"rplc/internal/validator"
)

// BatchRequest configures one pipeline run.
type BatchRequest struct {
	FS       *source.FileSet
	File     source.FileID
	Jobs     int          // worker limit, <= 0 means GOMAXPROCS
	Progress ProgressSink // nil means no progress reporting
	Cache    *DiskCache   // nil disables the disk cache
}

// PacketOutcome is the result for one packet, in input order.
type PacketOutcome struct {
	Name    string
	Header  string // empty when Err is set
	Bag     *diag.Bag
	Err     error // *cppgen.ValidationError when the bag has errors
	Elapsed time.Duration
	Cached  bool
}

// packetUnit binds one decoded packet to the source text its spans
// are relative to.
type packetUnit struct {
	packet *schema.Packet
	file   source.FileID
}

// RunBatch validates and generates every packet of the input. Every
// packet is fully processed even when an earlier one fails, so one run
// reports all diagnostics; the fail-fast policy of the generate path
// (stop writing at the first erroneous packet) is enforced by callers
// over the ordered outcomes.
func RunBatch(ctx context.Context, req BatchRequest) ([]PacketOutcome, error) {
	sink := req.Progress
	if sink == nil {
		sink = NopSink{}
	}

	file := req.FS.Get(req.File)
	sink.OnEvent(Event{Stage: StageParse, Status: StatusWorking})

	packets, multi, err := schema.Decode(file.Content)
	if err != nil {
		// Prefer the positioned syntax error when the JSON is broken.
		if _, perr := spanjson.Parse(file); perr != nil {
			err = perr
		}
		sink.OnEvent(Event{Stage: StageParse, Status: StatusError, Err: err})
		return nil, err
	}

	// Packets split out of an array are validated against their own
	// re-serialized text; the FileSet is not safe for concurrent
	// mutation, so the split happens before the fan-out.
	units := make([]packetUnit, len(packets))
	for i, p := range packets {
		if !multi {
			units[i] = packetUnit{packet: p, file: req.File}
			continue
		}
		data, err := schema.Marshal(p)
		if err != nil {
			sink.OnEvent(Event{Stage: StageParse, Status: StatusError, Err: err})
			return nil, fmt.Errorf("re-serialize packet %d: %w", i, err)
		}
		units[i] = packetUnit{
			packet: p,
			file:   req.FS.AddVirtual(fmt.Sprintf("%s#%d", file.Path, i), data),
		}
	}
	sink.OnEvent(Event{Stage: StageParse, Status: StatusDone})

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	outcomes := make([]PacketOutcome, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(units), 1)))

	for i := range units {
		i := i
		sink.OnEvent(Event{Packet: units[i].packet.PacketName, Stage: StageValidate, Status: StatusQueued})
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = processUnit(req.FS, units[i], req.Cache, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func processUnit(fs *source.FileSet, unit packetUnit, cache *DiskCache, sink ProgressSink) PacketOutcome {
	name := unit.packet.PacketName
	start := time.Now()

	file := fs.Get(unit.file)
	var payload DiskPayload
	if hit, err := cache.Get(file.Hash, &payload); err == nil && hit {
		sink.OnEvent(Event{Packet: name, Stage: StageGenerate, Status: StatusDone, Elapsed: time.Since(start)})
		return PacketOutcome{
			Name:    payload.PacketName,
			Header:  payload.Header,
			Bag:     diag.NewBag(),
			Elapsed: time.Since(start),
			Cached:  true,
		}
	}

	sink.OnEvent(Event{Packet: name, Stage: StageValidate, Status: StatusWorking})
	bag, err := validator.Validate(file)
	if err != nil {
		sink.OnEvent(Event{Packet: name, Stage: StageValidate, Status: StatusError, Err: err})
		return PacketOutcome{Name: name, Bag: diag.NewBag(), Err: err, Elapsed: time.Since(start)}
	}
	if bag.HasErrors() {
		verr := &cppgen.ValidationError{Packet: name}
		sink.OnEvent(Event{Packet: name, Stage: StageValidate, Status: StatusError, Err: verr})
		return PacketOutcome{Name: name, Bag: bag, Err: verr, Elapsed: time.Since(start)}
	}
	sink.OnEvent(Event{Packet: name, Stage: StageValidate, Status: StatusDone})

	sink.OnEvent(Event{Packet: name, Stage: StageGenerate, Status: StatusWorking})
	header := cppgen.Render(unit.packet)
	sink.OnEvent(Event{Packet: name, Stage: StageGenerate, Status: StatusDone, Elapsed: time.Since(start)})

	// Cache only fully clean packets, a hit must not swallow warnings.
	if bag.Len() == 0 {
		_ = cache.Put(file.Hash, &DiskPayload{
			PacketName: name,
			InputHash:  file.Hash,
			Header:     header,
		})
	}

	return PacketOutcome{Name: name, Header: header, Bag: bag, Elapsed: time.Since(start)}
}
