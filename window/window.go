package window

// Returns the mean of a slice of float64.
func Mean(data []float64) float64 {
	sum := 0.0

	for _, n := range data {
		sum += n
	}

	count := len(data)
	if count > 0 {
		return sum / float64(count)
	}
	return 0
}

// History keeps the most recent values, overwriting the oldest once
// the window is full. Order is irrelevant to the consumers here.
type History struct {
	items []float64
	idx   int
	n     int
}

// NewHistory returns a History holding up to size values.
func NewHistory(size int) *History {
	return &History{items: make([]float64, size)}
}

// Push adds the given value as the most recent one,
// overwriting the oldest value.
func (h *History) Push(v float64) {
	h.items[h.idx] = v
	h.idx = (h.idx + 1) % len(h.items)
	if h.n < len(h.items) {
		h.n++
	}
}

// Values returns the values pushed so far, at most the window size.
func (h *History) Values() []float64 {
	if h.n < len(h.items) {
		return h.items[:h.n]
	}
	return h.items
}

// Given a window of recent peak magnitudes, determine if a Change
// Indicator should be generated.
//
// For each 10x over the mean the latest value is, we add a single plus
// sign up to 3.
//
// For each 10x under the mean the latest value is, we add a single
// minus sign up to 3.
//
// Otherwise we return no change indicator.
func CalculateChangeIndicator(data []float64, latest float64) string {
	mad := Mean(data)

	if len(data) > 0 && mad > 0 {
		if latest >= (mad * 1000) {
			return "+++"
		}

		if latest >= (mad * 100) {
			return "++"
		}

		if latest >= (mad * 10) {
			return "+"
		}

		if latest <= (mad / 1000) {
			return "---"
		}

		if latest <= (mad / 100) {
			return "--"
		}

		if latest <= (mad / 10) {
			return "-"
		}
	}

	return ""
}
