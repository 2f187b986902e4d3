package model

import "time"

// DefaultVolume is assigned to bars whose provider omits volume data.
// Keeping it constant keeps volume-derived indicators well-defined.
const DefaultVolume int64 = 1_000_000

// Bar represents a single candlestick bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Closes extracts the close column from a bar series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
