package accelreport

import (
	"fmt"
	"io"
	"os"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/niveditasinha1811/sensor-data-logger/errdef"
)

// MaxMilliG is the histogram ceiling: the magnitude of a (16,16,16) G
// sample is sqrt(768) ~ 27.7 G, recorded as 27713 milli-g.
const MaxMilliG int64 = 32000

// NewHistogram returns a histogram sized for acceleration magnitudes
// recorded in milli-g.
func NewHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(0, MaxMilliG, 3)
}

// RecordMagnitude stores one magnitude (in G) as milli-g.
func RecordMagnitude(hist *hdrhistogram.Histogram, g float64) error {
	err := hist.RecordValue(int64(g * 1000))
	return errdef.Wrap(errdef.CodeOutOfRange, err, "magnitude %.3fG", g)
}

func WriteReportCSV(filename *string, hist *hdrhistogram.Histogram) error {
	f, err := os.Create(*filename)

	if err != nil {
		return err
	}

	for _, bar := range hist.Distribution() {
		_, err := f.Write([]byte(bar.String()))

		if err != nil {
			return err
		}
	}

	err = f.Sync()

	if err != nil {
		return err
	}

	err = f.Close()

	if err != nil {
		return err
	}

	return nil
}

// PrintAccelSummary prints how many sample magnitudes fell into each
// milli-g band. The writer is explicit so callers can keep the summary
// off a stdout CSV stream.
func PrintAccelSummary(w io.Writer, hist *hdrhistogram.Histogram) {
	fmt.Fprintf(w, " FROM    TO #SAMPLES\n")
	fmt.Fprintf(w, "    0   250 %d\n", SumBars(0, 250, hist.Distribution()))
	fmt.Fprintf(w, "  250   500 %d\n", SumBars(250, 500, hist.Distribution()))
	fmt.Fprintf(w, "  500  1000 %d\n", SumBars(500, 1000, hist.Distribution()))
	fmt.Fprintf(w, " 1000  2000 %d\n", SumBars(1000, 2000, hist.Distribution()))
	fmt.Fprintf(w, " 2000  4000 %d\n", SumBars(2000, 4000, hist.Distribution()))
	fmt.Fprintf(w, " 4000  8000 %d\n", SumBars(4000, 8000, hist.Distribution()))
	fmt.Fprintf(w, " 8000 16000 %d\n", SumBars(8000, 16000, hist.Distribution()))
	fmt.Fprintf(w, "16000 32000 %d\n", SumBars(16000, 32000, hist.Distribution()))
}

// Given a sorted `[]hdrhistogram.Bar`, return the sum of every `Bar` in the
// Range of (from, to]. Inclusive of from, exclusive of to.
func SumBars(from int64, to int64, bars []hdrhistogram.Bar) int64 {
	count := int64(0)
	for _, bar := range bars {
		if bar.To >= to {
			// short circuit if we've passed the item
			// we're interested in.
			break
		}
		if bar.From >= from && bar.To < to {
			count = count + bar.Count
		}
	}
	return count
}
