package domain

import "math"

// UV index severity levels.
const (
	UVLow      = "Low"
	UVModerate = "Moderate"
	UVHigh     = "High"
	UVVeryHigh = "Very High"
	UVExtreme  = "Extreme"
)

var uvColors = map[string][2]string{
	UVLow:      {"#4ade80", "#22c55e"},
	UVModerate: {"#fbbf24", "#f59e0b"},
	UVHigh:     {"#fb923c", "#ea580c"},
	UVVeryHigh: {"#f87171", "#dc2626"},
	UVExtreme:  {"#a855f7", "#7c3aed"},
}

// UVReading is a UV index value placed on the gauge.
type UVReading struct {
	Value      float64   `json:"value"`
	Rounded    int       `json:"rounded"`
	Level      string    `json:"level"`
	Percentage float64   `json:"percentage"` // gauge fill, 0-100
	Color      [2]string `json:"color"`      // gradient start, end
}

// ClassifyUV maps a UV index to its level and gauge percentage.
//
//	0-2   Low        0-20%
//	2-5   Moderate  20-50%
//	5-7   High      50-75%
//	7-10  Very High 75-95%
//	>10   Extreme   95-100%, full at 15
func ClassifyUV(value float64) UVReading {
	v := math.Max(value, 0)

	var level string
	var pct float64
	switch {
	case v <= 2:
		level = UVLow
		pct = v / 2 * 20
	case v <= 5:
		level = UVModerate
		pct = 20 + (v-2)/3*30
	case v <= 7:
		level = UVHigh
		pct = 50 + (v-5)/2*25
	case v <= 10:
		level = UVVeryHigh
		pct = 75 + (v-7)/3*20
	default:
		level = UVExtreme
		pct = 95 + math.Min((v-10)/5, 1)*5
	}

	return UVReading{
		Value:      value,
		Rounded:    int(math.Round(v)),
		Level:      level,
		Percentage: math.Min(pct, 100),
		Color:      uvColors[level],
	}
}
