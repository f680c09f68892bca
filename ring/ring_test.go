package ring

import (
	"bytes"
	"strings"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/niveditasinha1811/sensor-data-logger/errdef"
	"github.com/niveditasinha1811/sensor-data-logger/sample"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type RingTestSuite struct{}

var _ = Suite(&RingTestSuite{})

func pushN(r *SampleRing, n int) {
	for i := 0; i < n; i++ {
		s := sample.Sample{TimestampMs: uint32(i), AccX: float32(i)}
		if err := r.Push(&s); err != nil {
			panic(err)
		}
	}
}

func timestamps(r *SampleRing) []uint32 {
	var out []uint32
	r.Each(func(s sample.Sample) bool {
		out = append(out, s.TimestampMs)
		return true
	})
	return out
}

func (*RingTestSuite) TestEmpty(c *C) {
	r := New()
	c.Assert(r.Len(), Equals, 0)
	c.Assert(r.Head(), Equals, 0)
	c.Assert(r.Snapshot(), HasLen, 0)

	var buf bytes.Buffer
	n, err := r.WriteCSV(&buf)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 0)
	c.Assert(buf.String(), Equals, "")
}

func (*RingTestSuite) TestCountSaturates(c *C) {
	r := New()
	for i := 0; i < 3*Capacity; i++ {
		before := r.Len()
		s := sample.Sample{TimestampMs: uint32(i)}
		c.Assert(r.Push(&s), IsNil)

		want := before + 1
		if want > Capacity {
			want = Capacity
		}
		c.Assert(r.Len(), Equals, want)
	}
}

func (*RingTestSuite) TestExactlyFull(c *C) {
	// Timestamps 0..127 fill the ring exactly once.
	r := New()
	pushN(r, Capacity)

	c.Assert(r.Len(), Equals, Capacity)
	c.Assert(r.Head(), Equals, 0)

	ts := timestamps(r)
	c.Assert(ts, HasLen, Capacity)
	c.Assert(ts[0], Equals, uint32(0))
	c.Assert(ts[Capacity-1], Equals, uint32(Capacity-1))
}

func (*RingTestSuite) TestOverwriteOldest(c *C) {
	// 133 appends drop timestamps 0..4.
	r := New()
	pushN(r, Capacity+5)

	c.Assert(r.Len(), Equals, Capacity)
	c.Assert(r.Head(), Equals, 5)

	ts := timestamps(r)
	c.Assert(ts, HasLen, Capacity)
	c.Assert(ts[0], Equals, uint32(5))
	c.Assert(ts[Capacity-1], Equals, uint32(Capacity+4))

	// Chronological order throughout.
	for i := 1; i < len(ts); i++ {
		c.Assert(ts[i], Equals, ts[i-1]+1)
	}

	var buf bytes.Buffer
	_, err := r.WriteCSV(&buf)
	c.Assert(err, IsNil)
	c.Assert(strings.Count(buf.String(), "\n"), Equals, Capacity)
}

func (*RingTestSuite) TestPartialFill(c *C) {
	r := New()
	pushN(r, 10)

	c.Assert(r.Len(), Equals, 10)
	c.Assert(r.Head(), Equals, 10)
	c.Assert(timestamps(r), DeepEquals, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
}

func (*RingTestSuite) TestStartIndexFormula(c *C) {
	// The branchless start index must agree with the branching form
	// at every fill level, including after many overwrites.
	r := New()
	for n := 0; n <= 3*Capacity; n++ {
		head := r.Head()
		count := r.Len()

		branchless := (head + Capacity - count) % Capacity
		var branching int
		if count == Capacity {
			branching = head
		} else {
			branching = (head - count + Capacity) % Capacity
		}
		c.Assert(branchless, Equals, branching,
			Commentf("after %d pushes (head=%d count=%d)", n, head, count))

		if count > 0 {
			oldest, ok := r.At(branchless)
			c.Assert(ok, Equals, true)
			c.Assert(oldest.TimestampMs, Equals, timestamps(r)[0])
		}

		s := sample.Sample{TimestampMs: uint32(n)}
		c.Assert(r.Push(&s), IsNil)
	}
}

func (*RingTestSuite) TestPushNil(c *C) {
	r := New()
	pushN(r, 3)

	err := r.Push(nil)
	c.Assert(err, NotNil)
	c.Assert(errdef.Is(err, errdef.CodeInvalidArgument), Equals, true)

	// State untouched.
	c.Assert(r.Len(), Equals, 3)
	c.Assert(r.Head(), Equals, 3)
}

func (*RingTestSuite) TestReset(c *C) {
	r := New()
	pushN(r, Capacity+7)

	r.Reset()
	c.Assert(r.Len(), Equals, 0)
	c.Assert(r.Head(), Equals, 0)

	var buf bytes.Buffer
	n, err := r.WriteCSV(&buf)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 0)

	// Reset is idempotent.
	r.Reset()
	c.Assert(r.Len(), Equals, 0)

	// And the ring is usable again afterwards.
	pushN(r, 2)
	c.Assert(timestamps(r), DeepEquals, []uint32{0, 1})
}

func (*RingTestSuite) TestEachIsRestartable(c *C) {
	r := New()
	pushN(r, 6)

	first := timestamps(r)
	second := timestamps(r)
	c.Assert(second, DeepEquals, first)
	c.Assert(r.Len(), Equals, 6)
}

func (*RingTestSuite) TestEachStopsEarly(c *C) {
	r := New()
	pushN(r, 20)

	visited := 0
	r.Each(func(sample.Sample) bool {
		visited++
		return visited < 5
	})
	c.Assert(visited, Equals, 5)
}

func (*RingTestSuite) TestAtBounds(c *C) {
	r := New()
	pushN(r, 1)

	s, ok := r.At(0)
	c.Assert(ok, Equals, true)
	c.Assert(s.TimestampMs, Equals, uint32(0))

	_, ok = r.At(-1)
	c.Assert(ok, Equals, false)
	_, ok = r.At(Capacity)
	c.Assert(ok, Equals, false)
}

func (*RingTestSuite) TestWriteCSVSingleSample(c *C) {
	r := New()
	s := sample.Sample{TimestampMs: 1000, AccX: 1.0, AccY: 2.0, AccZ: 3.0}
	c.Assert(r.Push(&s), IsNil)

	var buf bytes.Buffer
	n, err := r.WriteCSV(&buf)
	c.Assert(err, IsNil)
	c.Assert(buf.String(), Equals, "1000,1.000000,2.000000,3.000000\n")
	c.Assert(n, Equals, len(buf.String()))
}
