// Package profile interprets the loosely-typed person fields the API serves:
// role codes and labels, birthdays, sport and gender spellings.
package profile

import (
	"fmt"
	"strings"
	"time"
)

// Role is the coarse classification derived from a raw role value.
type Role int

const (
	RoleUnknown Role = iota
	RoleAthlete
	RoleCoach
)

func (r Role) String() string {
	switch r {
	case RoleAthlete:
		return "Vận động viên"
	case RoleCoach:
		return "Huấn luyện viên"
	default:
		return "Khác"
	}
}

// ClassifyRole maps a raw role value to a Role. The API serves the field
// inconsistently typed: a numeric code (1 athlete, 2 coach), an English label,
// or a Vietnamese label with or without diacritics. All spellings are accepted
// case-insensitively; anything else is RoleUnknown.
func ClassifyRole(raw any) Role {
	var s string
	switch v := raw.(type) {
	case nil:
		return RoleUnknown
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case float64:
		// json decodes numeric codes as float64
		s = fmt.Sprintf("%.0f", v)
	default:
		s = fmt.Sprint(v)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "1", strings.Contains(s, "athlete"), strings.Contains(s, "vận"), strings.Contains(s, "van"):
		return RoleAthlete
	case s == "2", strings.Contains(s, "coach"), strings.Contains(s, "huấn"), strings.Contains(s, "huan"):
		return RoleCoach
	default:
		return RoleUnknown
	}
}

// Sport is the normalized sport key used to pick API collections.
type Sport string

const (
	SportShooting  Sport = "shooting"
	SportArchery   Sport = "archery"
	SportBoxing    Sport = "boxing"
	SportTaekwondo Sport = "taekwondo"
)

// NormalizeSport folds the spellings the API serves (English, Vietnamese with
// diacritics, ASCII-folded Vietnamese) into a Sport key. Unrecognized input
// yields the empty string.
func NormalizeSport(input string) Sport {
	s := strings.ToLower(strings.TrimSpace(input))
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "shoot"), strings.Contains(s, "bắn súng"), strings.Contains(s, "ban sung"):
		return SportShooting
	case strings.Contains(s, "arch"), strings.Contains(s, "bắn cung"), strings.Contains(s, "ban cung"):
		return SportArchery
	case strings.Contains(s, "taek"):
		return SportTaekwondo
	case strings.Contains(s, "box"):
		return SportBoxing
	default:
		return ""
	}
}

// SportLabelVN returns the Vietnamese sport label the Competitions catalog
// stores in sport_type.
func SportLabelVN(s Sport) string {
	switch s {
	case SportShooting:
		return "Bắn súng"
	case SportArchery:
		return "Bắn cung"
	case SportBoxing:
		return "Boxing"
	case SportTaekwondo:
		return "Taekwondo"
	default:
		return ""
	}
}

// NormalizeGender maps the gender spellings the API serves to the display
// labels. "-" means absent.
func NormalizeGender(input string) string {
	v := strings.ToLower(strings.TrimSpace(input))
	if v == "" {
		return "-"
	}
	switch v {
	case "nam", "male", "m", "1":
		return "Nam"
	case "nữ", "nu", "female", "f", "0", "2":
		return "Nữ"
	default:
		return "Khác"
	}
}

// FullName joins last and first name; when both are blank it falls back to
// the email local part, then a generic label.
func FullName(lastName, firstName, email string) string {
	parts := make([]string, 0, 2)
	if ln := strings.TrimSpace(lastName); ln != "" {
		parts = append(parts, ln)
	}
	if fn := strings.TrimSpace(firstName); fn != "" {
		parts = append(parts, fn)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if email != "" {
		if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
			return local
		}
		return email
	}
	return "Người dùng"
}

// CalcAge returns floor years elapsed since birthday at the reference time,
// accounting for a month/day not yet reached this year. ok is false when the
// birthday is absent or unparseable.
func CalcAge(birthday string, now time.Time) (age int, ok bool) {
	if birthday == "" {
		return 0, false
	}
	d, err := parseDate(birthday)
	if err != nil {
		return 0, false
	}
	age = now.Year() - d.Year()
	if m := int(now.Month()) - int(d.Month()); m < 0 || (m == 0 && now.Day() < d.Day()) {
		age--
	}
	return age, true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// BuildImageURL resolves a stored picture path against the API base URL.
// Absolute URLs pass through unchanged; empty paths stay empty.
func BuildImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	base = strings.TrimSuffix(base, "/")
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}
