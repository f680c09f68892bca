package ring

import (
	"io"
	"sync"

	"github.com/niveditasinha1811/sensor-data-logger/errdef"
	"github.com/niveditasinha1811/sensor-data-logger/ioutils"
	"github.com/niveditasinha1811/sensor-data-logger/sample"
)

// Capacity is the fixed number of slots in a SampleRing.
const Capacity = 128

// SampleRing is a fixed-capacity ring buffer of sensor samples.
// Push(sample) adds the given sample as the most recent entry,
// overwriting the oldest entry once the ring is full. Each operation
// takes the ring's lock, so a producer and a reader may share one ring.
type SampleRing struct {
	mu    sync.Mutex
	items [Capacity]sample.Sample
	head  int // next slot to write
	count int // valid entries, saturates at Capacity
}

// New returns an empty SampleRing.
func New() *SampleRing {
	return &SampleRing{}
}

// Reset clears all entries. Idempotent; safe to call mid-use.
func (r *SampleRing) Reset() {
	r.mu.Lock()
	r.items = [Capacity]sample.Sample{}
	r.head = 0
	r.count = 0
	r.mu.Unlock()
}

// Push stores s as the newest entry, overwriting the oldest once full.
// A nil sample is rejected without touching ring state.
func (r *SampleRing) Push(s *sample.Sample) error {
	if s == nil {
		return errdef.New(errdef.CodeInvalidArgument, "nil sample")
	}

	r.mu.Lock()
	r.items[r.head] = *s
	r.head = (r.head + 1) % Capacity
	if r.count < Capacity {
		r.count++
	}
	r.mu.Unlock()

	return nil
}

// Each walks the valid entries oldest to newest, calling fn with a copy
// of each sample. Walking stops early when fn returns false. The ring is
// not mutated; each call starts over from the oldest entry.
func (r *SampleRing) Each(fn func(sample.Sample) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Works at every fill level: when the ring is full the expression
	// reduces to head, otherwise to the first written slot.
	start := (r.head + Capacity - r.count) % Capacity
	for i := 0; i < r.count; i++ {
		if !fn(r.items[(start+i)%Capacity]) {
			return
		}
	}
}

// Snapshot returns a copy of the valid entries in oldest-to-newest order.
func (r *SampleRing) Snapshot() []sample.Sample {
	out := make([]sample.Sample, 0, r.Len())
	r.Each(func(s sample.Sample) bool {
		out = append(out, s)
		return true
	})
	return out
}

// WriteCSV renders every entry to w, one line per sample in
// timestamp_ms,acc_x,acc_y,acc_z order, oldest first. It returns the
// number of characters written. An empty ring writes nothing.
func (r *SampleRing) WriteCSV(w io.Writer) (int, error) {
	cw := &ioutils.CountingWriter{W: w}

	var werr error
	r.Each(func(s sample.Sample) bool {
		_, werr = io.WriteString(cw, s.CSVRow())
		return werr == nil
	})
	if werr != nil {
		return int(cw.N), errdef.Wrap(errdef.CodeUnknown, werr, "write csv")
	}
	return int(cw.N), nil
}

// Len returns the number of valid entries.
func (r *SampleRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Head returns the next slot index to be written.
func (r *SampleRing) Head() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.head
}

// At reads the raw slot i without regard to chronological order.
// The second return is false when i is outside [0, Capacity).
func (r *SampleRing) At(i int) (sample.Sample, bool) {
	if i < 0 || i >= Capacity {
		return sample.Sample{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[i], true
}
