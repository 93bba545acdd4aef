package profile

import (
	"testing"
	"time"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Role
	}{
		{"numeric code string athlete", "1", RoleAthlete},
		{"english lower athlete", "athlete", RoleAthlete},
		{"english capitalized athlete", "Athlete", RoleAthlete},
		{"vietnamese diacritic athlete", "vận động viên", RoleAthlete},
		{"vietnamese folded athlete", "van dong vien", RoleAthlete},
		{"json number athlete", float64(1), RoleAthlete},
		{"numeric code string coach", "2", RoleCoach},
		{"english lower coach", "coach", RoleCoach},
		{"english capitalized coach", "Coach", RoleCoach},
		{"vietnamese diacritic coach", "huấn luyện viên", RoleCoach},
		{"vietnamese folded coach", "huan luyen vien", RoleCoach},
		{"json number coach", float64(2), RoleCoach},
		{"empty", "", RoleUnknown},
		{"nil", nil, RoleUnknown},
		{"management", "Management", RoleUnknown},
		{"medical", "Medical", RoleUnknown},
		{"other code", "3", RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRole(tt.raw); got != tt.want {
				t.Errorf("ClassifyRole(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSport(t *testing.T) {
	tests := []struct {
		in   string
		want Sport
	}{
		{"Shooting", SportShooting},
		{"bắn súng", SportShooting},
		{"Ban Sung", SportShooting},
		{"Archery", SportArchery},
		{"bắn cung", SportArchery},
		{"ban cung", SportArchery},
		{"Taekwondo", SportTaekwondo},
		{"Boxing", SportBoxing},
		{"", ""},
		{"chess", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSport(tt.in); got != tt.want {
			t.Errorf("NormalizeSport(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSportLabelVN_RoundTrip(t *testing.T) {
	for _, s := range []Sport{SportShooting, SportArchery, SportBoxing, SportTaekwondo} {
		if got := NormalizeSport(SportLabelVN(s)); got != s {
			t.Errorf("NormalizeSport(SportLabelVN(%q)) = %q", s, got)
		}
	}
}

func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"male", "Nam"},
		{"Nam", "Nam"},
		{"M", "Nam"},
		{"1", "Nam"},
		{"female", "Nữ"},
		{"nữ", "Nữ"},
		{"nu", "Nữ"},
		{"0", "Nữ"},
		{"other", "Khác"},
		{"", "-"},
	}
	for _, tt := range tests {
		if got := NormalizeGender(tt.in); got != tt.want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFullName(t *testing.T) {
	if got := FullName("Nguyễn", "An", "an@example.com"); got != "Nguyễn An" {
		t.Errorf("got %q", got)
	}
	if got := FullName("", "", "an.nguyen@example.com"); got != "an.nguyen" {
		t.Errorf("email fallback: got %q", got)
	}
	if got := FullName("", "", ""); got != "Người dùng" {
		t.Errorf("generic fallback: got %q", got)
	}
	if got := FullName(" ", "An ", ""); got != "An" {
		t.Errorf("trimming: got %q", got)
	}
}

func TestCalcAge(t *testing.T) {
	birthday := "2000-09-21"

	before := time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC)
	if age, ok := CalcAge(birthday, before); !ok || age != 25 {
		t.Errorf("before birthday: got %d ok=%v, want 25", age, ok)
	}

	on := time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC)
	if age, ok := CalcAge(birthday, on); !ok || age != 26 {
		t.Errorf("on birthday: got %d ok=%v, want 26", age, ok)
	}

	after := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	if age, ok := CalcAge(birthday, after); !ok || age != 26 {
		t.Errorf("after birthday: got %d ok=%v, want 26", age, ok)
	}

	if _, ok := CalcAge("", time.Now()); ok {
		t.Error("empty birthday should not be ok")
	}
	if _, ok := CalcAge("not-a-date", time.Now()); ok {
		t.Error("garbage birthday should not be ok")
	}
}

func TestBuildImageURL(t *testing.T) {
	base := "https://api.example.vn"
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"https://cdn.example.vn/a.png", "https://cdn.example.vn/a.png"},
		{"/uploads/a.png", "https://api.example.vn/uploads/a.png"},
		{"uploads/a.png", "https://api.example.vn/uploads/a.png"},
	}
	for _, tt := range tests {
		if got := BuildImageURL(base, tt.path); got != tt.want {
			t.Errorf("BuildImageURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
