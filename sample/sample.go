package sample

import (
	"math"
	"strconv"
)

// Sample holds one timestamped 3-axis accelerometer reading.
// Acceleration is in G; producers keep each axis within [-16, +16].
type Sample struct {
	TimestampMs uint32
	AccX        float32
	AccY        float32
	AccZ        float32
}

// CSVRow renders the sample as one CSV line:
// timestamp_ms,acc_x,acc_y,acc_z with six fractional digits, newline-terminated.
func (s Sample) CSVRow() string {
	return utoa(s.TimestampMs) + "," +
		ftoa(s.AccX) + "," +
		ftoa(s.AccY) + "," +
		ftoa(s.AccZ) + "\n"
}

// Magnitude returns the euclidean norm of the three axes, in G.
func (s Sample) Magnitude() float64 {
	x := float64(s.AccX)
	y := float64(s.AccY)
	z := float64(s.AccZ)
	return math.Sqrt(x*x + y*y + z*z)
}

func utoa(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 32)
}
