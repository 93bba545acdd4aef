package health

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  Status
	}{
		{"spo2", "98", StatusGood},
		{"spo2", "95", StatusNormal},
		{"spo2", "93", StatusDanger},
		{"bpm", "72", StatusGood},
		{"bpm", "55", StatusNormal},
		{"bpm", "92", StatusNormal},
		{"bpm", "120", StatusDanger},
		{"bp", "118/76", StatusGood},
		{"bp", "125/78", StatusNormal},
		{"bp", "142/95", StatusDanger},
		{"temp", "36.6", StatusGood},
		{"temp", "37.5", StatusNormal},
		{"temp", "38.4", StatusDanger},
		{"glucose", "92", StatusGood},
		{"glucose", "75", StatusNormal},
		{"glucose", "110", StatusNormal},
		{"glucose", "65", StatusDanger},
		{"glucose", "140", StatusDanger},
		{"sleep", "7h 45m", StatusGood},
		{"sleep", "6h 10m", StatusNormal},
		{"sleep", "9h 30m", StatusNormal},
		{"sleep", "4h", StatusDanger},
		{"sleep", "11h", StatusDanger},
		{"steps", "9200", StatusGood},
		{"steps", "6100", StatusNormal},
		{"steps", "2000", StatusDanger},
		{"hrv", "58", StatusGood},
		{"hrv", "42", StatusNormal},
		{"hrv", "25", StatusDanger},
		{"ecg", "Bình thường", StatusGood},
		{"ecg", "Rung nhĩ", StatusDanger},
		{"uric", "5.4", StatusGood},
		{"uric", "7.8", StatusNormal},
		{"uric", "9.1", StatusDanger},
		{"weight", "62 kg", StatusNormal},
	}
	for _, tt := range tests {
		got := Evaluate(Metric{Key: tt.key, Value: tt.value})
		if got != tt.want {
			t.Errorf("Evaluate(%s=%q) = %v (%s), want %v (%s)",
				tt.key, tt.value, got, got.Label(), tt.want, tt.want.Label())
		}
	}
}

func TestStatusLabels(t *testing.T) {
	if StatusGood.Label() != "Tốt" || StatusNormal.Label() != "Bình thường" || StatusDanger.Label() != "Nguy hiểm" {
		t.Error("unexpected status labels")
	}
}

func TestParseBloodPressure(t *testing.T) {
	sys, dia := ParseBloodPressure("118/76")
	if sys != 118 || dia != 76 {
		t.Errorf("got %v/%v", sys, dia)
	}
}

func TestParseSleepHours(t *testing.T) {
	if h := ParseSleepHours("7h 45m"); math.Abs(h-7.75) > 1e-9 {
		t.Errorf("7h 45m = %v", h)
	}
	if h := ParseSleepHours("6h"); h != 6 {
		t.Errorf("6h = %v", h)
	}
	if h := ParseSleepHours("junk"); h != 0 {
		t.Errorf("junk = %v", h)
	}
}

func TestFilterByGroup(t *testing.T) {
	ms := []Metric{
		{Key: "bpm", Group: GroupVitals},
		{Key: "steps", Group: GroupActivity},
		{Key: "glucose", Group: GroupLabs},
	}
	if got := FilterByGroup(ms, GroupVitals); len(got) != 1 || got[0].Key != "bpm" {
		t.Errorf("vitals = %v", got)
	}
	if got := FilterByGroup(ms, ""); len(got) != 3 {
		t.Errorf("all = %d", len(got))
	}
}
