package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/niveditasinha1811/sensor-data-logger/accelreport"
	"github.com/niveditasinha1811/sensor-data-logger/config"
	"github.com/niveditasinha1811/sensor-data-logger/ioutils"
	"github.com/niveditasinha1811/sensor-data-logger/mocksensor"
	"github.com/niveditasinha1811/sensor-data-logger/ring"
	"github.com/niveditasinha1811/sensor-data-logger/window"
)

func exUsage(msg string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, fmt.Sprintf(msg, args...))
	fmt.Fprintln(os.Stderr, "Try --help for help.")
	os.Exit(64)
}

// CalcSampleInterval calculates how many Nanoseconds to wait between samples.
func CalcSampleInterval(rate *int) time.Duration {
	return time.Duration(int(time.Second) / *rate)
}

var (
	promSamplesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "samples_generated",
		Help: "Number of samples produced by the mock sensor",
	})

	promSamplesLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "samples_logged",
		Help: "Number of samples stored in the ring buffer",
	})

	promSampleErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sample_errors",
		Help: "Number of samples dropped due to generation or store errors",
	})

	promAccelHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "acceleration_g",
		Help: "Acceleration magnitude distributions in G.",
		// 16 linear buckets covering 0 G up past sqrt(3)*16 G
		Buckets: prometheus.LinearBuckets(0, 2, 16),
	})
)

func registerMetrics() {
	prometheus.MustRegister(promSamplesGenerated)
	prometheus.MustRegister(promSamplesLogged)
	prometheus.MustRegister(promSampleErrors)
	prometheus.MustRegister(promAccelHistogram)
}

// openSink returns the stream the CSV render goes to: stdout by default,
// a freshly created file when a path is given.
func openSink(csvPath string) (io.WriteCloser, error) {
	if csvPath == "" {
		return ioutils.NopWriteCloser(os.Stdout), nil
	}
	f, err := os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	return ioutils.NewWriteCloserWrapper(f, func() error {
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}), nil
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	samples := flag.Int("samples", config.Default().Demo.Samples, "number of samples to generate")
	rate := flag.Int("rate", 0, "samples per second (0 = unpaced)")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = derive from the clock)")
	interval := flag.Duration("interval", 10*time.Second, "reporting interval")
	output := flag.String("output", "", "file to write the CSV render to (default stdout)")
	noAccelSummary := flag.Bool("noAccelSummary", false, "suppress the final acceleration summary")
	reportAccelCSV := flag.String("reportAccelCSV", "",
		"filename to output hdrhistogram acceleration magnitudes in CSV")
	metricAddr := flag.String("metric-addr", "", "address to serve metrics on")
	help := flag.Bool("help", false, "show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", path.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(64)
	}

	if flag.NArg() != 0 {
		exUsage("Expecting no arguments, only flags")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			exUsage("invalid config file '%s': %s", *configPath, err.Error())
		}
	}
	// Explicit flags win over config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			cfg.Demo.Samples = *samples
		case "rate":
			cfg.Demo.RateHz = *rate
		case "output":
			cfg.Output.Path = *output
		case "noAccelSummary":
			cfg.Output.AccelSummary = !*noAccelSummary
		case "reportAccelCSV":
			cfg.Output.ReportCSV = *reportAccelCSV
		case "metric-addr":
			cfg.Metrics.Addr = *metricAddr
		}
	})

	if cfg.Demo.Samples < 1 {
		exUsage("samples must be at least 1")
	}
	if cfg.Demo.RateHz < 0 {
		exUsage("rate must not be negative")
	}

	source := mocksensor.New()
	if *seed != 0 {
		source = mocksensor.NewWithSeed(*seed, nil)
	}

	buffer := ring.New()
	hist := accelreport.NewHistogram()
	magnitudeHistory := window.NewHistory(5)

	var tick <-chan time.Time
	if cfg.Demo.RateHz > 0 {
		ticker := time.NewTicker(CalcSampleInterval(&cfg.Demo.RateHz))
		defer ticker.Stop()
		tick = ticker.C
	}

	interrupted := make(chan os.Signal, 2)
	signal.Notify(interrupted, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Metrics.Addr != "" {
		registerMetrics()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			http.ListenAndServe(cfg.Metrics.Addr, nil)
		}()
	}

	fmt.Fprintf(os.Stderr, "# generating %d samples (rate=%d/s) into a %d-slot ring ...\n",
		cfg.Demo.Samples, cfg.Demo.RateHz, ring.Capacity)

	report := time.After(*interval)
	logged := 0
	dropped := 0
	intervalPeak := 0.0

generate:
	for i := 0; i < cfg.Demo.Samples; i++ {
		if tick != nil {
			select {
			case <-tick:
			case <-interrupted:
				fmt.Fprintln(os.Stderr, "# interrupted, rendering what was collected")
				break generate
			}
		} else {
			select {
			case <-interrupted:
				fmt.Fprintln(os.Stderr, "# interrupted, rendering what was collected")
				break generate
			default:
			}
		}

		select {
		case t := <-report:
			// We want the change indicator to be based on how far
			// away the current peak is from what we've seen
			// historically. This is why we call
			// CalculateChangeIndicator() first and then Push()
			changeIndicator := window.CalculateChangeIndicator(magnitudeHistory.Values(), intervalPeak)
			magnitudeHistory.Push(intervalPeak)

			fmt.Fprintf(os.Stderr, "%s %6d/%1d stored %3d peak %2.3fG %s\n",
				t.Format(time.RFC3339),
				logged,
				dropped,
				buffer.Len(),
				intervalPeak,
				changeIndicator)

			intervalPeak = 0
			report = time.After(*interval)
		default:
		}

		s, err := source.Next()
		if err != nil {
			// A single bad sample is reported and skipped, not fatal.
			fmt.Fprintln(os.Stderr, err)
			dropped++
			promSampleErrors.Inc()
			continue
		}
		promSamplesGenerated.Inc()

		if err := buffer.Push(&s); err != nil {
			fmt.Fprintln(os.Stderr, err)
			dropped++
			promSampleErrors.Inc()
			continue
		}
		logged++
		promSamplesLogged.Inc()

		magnitude := s.Magnitude()
		promAccelHistogram.Observe(magnitude)
		if err := accelreport.RecordMagnitude(hist, magnitude); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if magnitude > intervalPeak {
			intervalPeak = magnitude
		}
	}

	sink, err := openSink(cfg.Output.Path)
	if err != nil {
		log.Panicf("Unable to open CSV output: %v\n", err)
	}

	chars, err := buffer.WriteCSV(sink)
	if err != nil {
		log.Panicf("Unable to render CSV: %v\n", err)
	}
	if err := sink.Close(); err != nil {
		log.Panicf("Unable to close CSV output: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "# rendered %d samples, %d characters (logged=%d dropped=%d)\n",
		buffer.Len(), chars, logged, dropped)

	if cfg.Output.AccelSummary {
		// Keep the summary off a stdout CSV stream.
		summaryOut := io.Writer(os.Stdout)
		if cfg.Output.Path == "" {
			summaryOut = os.Stderr
		}
		accelreport.PrintAccelSummary(summaryOut, hist)
	}
	if cfg.Output.ReportCSV != "" {
		err := accelreport.WriteReportCSV(&cfg.Output.ReportCSV, hist)
		if err != nil {
			log.Panicf("Unable to write accel CSV file: %v\n", err)
		}
	}
}
