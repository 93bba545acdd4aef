// Package health evaluates athlete health metrics against the dashboard's
// vital/activity/lab thresholds.
package health

import (
	"regexp"
	"strconv"
	"strings"
)

// Group buckets metrics for the type filter on the health page.
type Group string

const (
	GroupVitals   Group = "vitals"
	GroupActivity Group = "activity"
	GroupLabs     Group = "labs"
)

// Metric is one measured value, kept as the display string the API serves.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
	Group Group  `json:"group"`
}

// Status is the coarse evaluation of a metric.
type Status int

const (
	StatusNormal Status = iota
	StatusGood
	StatusDanger
)

// Label returns the Vietnamese status label shown on the metric chip.
func (s Status) Label() string {
	switch s {
	case StatusGood:
		return "Tốt"
	case StatusDanger:
		return "Nguy hiểm"
	default:
		return "Bình thường"
	}
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

func toNumber(s string) float64 {
	n, _ := strconv.ParseFloat(nonNumeric.ReplaceAllString(s, ""), 64)
	return n
}

// ParseBloodPressure splits a "118/76" reading into systolic and diastolic.
func ParseBloodPressure(s string) (sys, dia float64) {
	lhs, rhs, _ := strings.Cut(s, "/")
	return toNumber(lhs), toNumber(rhs)
}

var sleepRe = regexp.MustCompile(`(?i)(\d+)h\s*(\d+)?m?`)

// ParseSleepHours converts a "7h 45m" reading to fractional hours.
func ParseSleepHours(s string) float64 {
	m := sleepRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.ParseFloat(m[1], 64)
	var min float64
	if m[2] != "" {
		min, _ = strconv.ParseFloat(m[2], 64)
	}
	return h + min/60
}

// Evaluate classifies a metric by its key-specific thresholds. Keys without
// thresholds evaluate to normal.
func Evaluate(m Metric) Status {
	switch m.Key {
	case "spo2":
		v := toNumber(m.Value)
		switch {
		case v >= 97:
			return StatusGood
		case v >= 95:
			return StatusNormal
		default:
			return StatusDanger
		}
	case "bpm":
		v := toNumber(m.Value)
		switch {
		case v >= 60 && v <= 80:
			return StatusGood
		case (v >= 50 && v < 60) || (v > 80 && v <= 100):
			return StatusNormal
		default:
			return StatusDanger
		}
	case "bp":
		sys, dia := ParseBloodPressure(m.Value)
		switch {
		case sys < 120 && dia < 80:
			return StatusGood
		case sys < 130 && dia < 80:
			return StatusNormal
		default:
			return StatusDanger
		}
	case "temp":
		v := toNumber(m.Value)
		switch {
		case v >= 36 && v <= 37.2:
			return StatusGood
		case (v >= 35.5 && v < 36) || (v > 37.2 && v <= 37.8):
			return StatusNormal
		default:
			return StatusDanger
		}
	case "glucose":
		v := toNumber(m.Value)
		switch {
		case v >= 80 && v <= 99:
			return StatusGood
		case (v >= 70 && v < 80) || (v >= 100 && v <= 125):
			return StatusNormal
		default:
			return StatusDanger
		}
	case "sleep":
		h := ParseSleepHours(m.Value)
		switch {
		case h >= 7 && h <= 9:
			return StatusGood
		case (h >= 6 && h < 7) || (h > 9 && h <= 10):
			return StatusNormal
		default:
			return StatusDanger
		}
	case "steps":
		v := toNumber(m.Value)
		switch {
		case v >= 8000:
			return StatusGood
		case v >= 5000:
			return StatusNormal
		default:
			return StatusDanger
		}
	case "hrv":
		v := toNumber(m.Value)
		switch {
		case v >= 50:
			return StatusGood
		case v >= 30:
			return StatusNormal
		default:
			return StatusDanger
		}
	case "ecg":
		if strings.Contains(strings.ToLower(m.Value), "bình thường") {
			return StatusGood
		}
		return StatusDanger
	case "uric":
		v := toNumber(m.Value)
		switch {
		case v >= 3.5 && v <= 7.2:
			return StatusGood
		case (v >= 3.0 && v < 3.5) || (v > 7.2 && v <= 8.0):
			return StatusNormal
		default:
			return StatusDanger
		}
	// Weight has no height to pair with, so it reads as normal.
	default:
		return StatusNormal
	}
}

// FilterByGroup keeps metrics in the given group; an empty group keeps all.
func FilterByGroup(metrics []Metric, g Group) []Metric {
	if g == "" {
		return metrics
	}
	out := make([]Metric, 0, len(metrics))
	for _, m := range metrics {
		if m.Group == g {
			out = append(out, m)
		}
	}
	return out
}
