package listview

import (
	"strconv"
	"testing"
)

type city struct {
	Name    string
	Country string
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	rows := []city{
		{"Paris", "France"},
		{"Cairo", "Egypt"},
		{"Changwon", "South Korea"},
	}
	fields := func(c city) []string { return []string{c.Name, c.Country} }

	got := Search(rows, "paris", fields)
	if len(got) != 1 || got[0].Name != "Paris" {
		t.Fatalf("Search(paris) = %v", got)
	}
	if got := Search(rows, "KOREA", fields); len(got) != 1 || got[0].Name != "Changwon" {
		t.Fatalf("Search(KOREA) = %v", got)
	}
	if got := Search(rows, "  ", fields); len(got) != len(rows) {
		t.Fatalf("blank query should keep all rows, got %d", len(got))
	}
	if got := Search(rows, "zzz", fields); len(got) != 0 {
		t.Fatalf("no-match query should keep nothing, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	got := Filter(rows, func(n int) bool { return n%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("Filter = %v", got)
	}
}

func TestSortBy_StableAndCopies(t *testing.T) {
	rows := []city{{"B", "x"}, {"A", "y"}, {"B", "z"}}
	got := SortBy(rows, func(a, b city) bool { return a.Name < b.Name })
	if got[0].Name != "A" || got[1].Country != "x" || got[2].Country != "z" {
		t.Fatalf("SortBy = %v", got)
	}
	if rows[0].Name != "B" {
		t.Error("SortBy must not reorder the input slice")
	}
}

func TestPaginate_PartitionsExactly(t *testing.T) {
	for _, total := range []int{0, 1, 4, 5, 23} {
		for _, size := range []int{1, 5, 10} {
			rows := make([]string, total)
			for i := range rows {
				rows[i] = "row-" + strconv.Itoa(i)
			}
			var rebuilt []string
			for page := 0; page < PageCount(total, size); page++ {
				rebuilt = append(rebuilt, Paginate(rows, page, size)...)
			}
			if len(rebuilt) != total {
				t.Fatalf("total=%d size=%d: rebuilt %d rows", total, size, len(rebuilt))
			}
			for i, r := range rebuilt {
				if r != rows[i] {
					t.Fatalf("total=%d size=%d: row %d = %q", total, size, i, r)
				}
			}
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	rows := []int{1, 2, 3}
	if got := Paginate(rows, 5, 10); len(got) != 0 {
		t.Errorf("out-of-range page should be empty, got %v", got)
	}
	if got := Paginate(rows, -1, 2); len(got) != 2 {
		t.Errorf("negative page should clamp to first, got %v", got)
	}
	if got := Paginate(rows, 0, 0); len(got) != 3 {
		t.Errorf("zero size should fall back to default, got %v", got)
	}
}
