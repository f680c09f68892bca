// Package mocksensor generates pseudo-random accelerometer samples for
// demonstration runs, standing in for a real sensor feed.
package mocksensor

import (
	"math/rand"
	"time"

	"github.com/niveditasinha1811/sensor-data-logger/errdef"
	"github.com/niveditasinha1811/sensor-data-logger/sample"
)

// MaxAccelG bounds each generated axis to [-MaxAccelG, +MaxAccelG].
const MaxAccelG = 16.0

// Clock supplies the current wall-clock time. A zero time means the
// clock could not be read.
type Clock func() time.Time

// Source produces one pseudo-random sample per call to Next. Construct
// it once per process; the generator state lives on the Source rather
// than in package globals so tests can inject a fixed seed and clock.
type Source struct {
	rnd *rand.Rand
	now Clock
}

// New returns a Source seeded from the current time. The seed mixes
// seconds with sub-second ticks so restarts within the same second
// still diverge.
func New() *Source {
	t := time.Now()
	return NewWithSeed(t.Unix()^int64(t.Nanosecond()), time.Now)
}

// NewWithSeed returns a Source with an explicit seed and clock,
// for deterministic runs. A nil clock falls back to time.Now.
func NewWithSeed(seed int64, clock Clock) *Source {
	if clock == nil {
		clock = time.Now
	}
	return &Source{
		rnd: rand.New(rand.NewSource(seed)),
		now: clock,
	}
}

// Next returns one sample stamped with the current epoch milliseconds
// and three independent uniforms in [-16, +16] G. When the clock cannot
// be read it reports an error instead of fabricating a timestamp.
func (s *Source) Next() (sample.Sample, error) {
	t := s.now()
	if t.IsZero() {
		return sample.Sample{}, errdef.New(errdef.CodeClockUnavailable, "no wall-clock reading")
	}

	return sample.Sample{
		TimestampMs: uint32(t.UnixMilli()),
		AccX:        s.uniformAccel(),
		AccY:        s.uniformAccel(),
		AccZ:        s.uniformAccel(),
	}, nil
}

func (s *Source) uniformAccel() float32 {
	return float32(s.rnd.Float64()*2*MaxAccelG - MaxAccelG)
}
