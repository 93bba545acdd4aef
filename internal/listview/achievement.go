package listview

import (
	"strconv"
	"strings"

	"github.com/vietsport/eprofile/internal/models"
)

// SortMode selects the year direction on the achievement page.
type SortMode string

const (
	SortNewest SortMode = "mới-nhất"
	SortOldest SortMode = "cũ-nhất"
)

// RankSort optionally overrides the year ordering by final rank.
type RankSort string

const (
	RankNone  RankSort = "none"
	RankBest  RankSort = "best"
	RankWorst RankSort = "worst"
)

// GroupAll is the achievement group filter value that keeps every group.
const GroupAll = "TẤT CẢ"

// AchievementQuery carries the achievement page controls.
type AchievementQuery struct {
	Search   string
	Opponent string
	Group    string
	Sort     SortMode
	Rank     RankSort
}

// BuildAchievements joins per-sport result rows with the competition catalog
// into achievement page rows. Competitions match by id; a result without a
// matching competition keeps empty venue fields. Opponent names come from the
// optional user-id map. The year reads from the competition start date, then
// falls back to the result's recorded and created dates.
func BuildAchievements(results []models.CompetitionResult, comps []models.Competition, opponents map[int64]string) []models.Achievement {
	byID := make(map[int64]models.Competition, len(comps))
	for _, c := range comps {
		byID[c.ID] = c
	}

	out := make([]models.Achievement, 0, len(results))
	for _, r := range results {
		a := models.Achievement{
			Rank:   int(r.FinalRank.Int()),
			Detail: r.ResultData,
		}
		if c, ok := byID[r.CompetitionID.Int()]; ok {
			a.Group = strings.ToUpper(c.CompetitionName)
			a.City = c.City
			a.Event = c.SportType
			a.Year = yearOf(c.StartDate)
		}
		if a.Year == 0 {
			a.Year = yearOf(r.RecordedAt)
		}
		if a.Year == 0 {
			a.Year = yearOf(r.CreatedAt)
		}
		if name, ok := opponents[r.OpponentUserID.Int()]; ok {
			a.Opponent = name
		}
		out = append(out, a)
	}
	return out
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// ApplyAchievements runs the achievement page pipeline: group filter,
// free-text search over city/event/group/year/opponent, opponent filter,
// then sort. Ordering is fixed per mode:
//
//	rank=none:  year per Sort, ties by rank ascending
//	rank=best:  rank ascending, ties by year per Sort
//	rank=worst: rank descending, ties by year per Sort
func ApplyAchievements(rows []models.Achievement, q AchievementQuery) []models.Achievement {
	data := rows
	if q.Group != "" && q.Group != GroupAll {
		data = Filter(data, func(a models.Achievement) bool { return a.Group == q.Group })
	}
	data = Search(data, q.Search, func(a models.Achievement) []string {
		return []string{a.City, a.Event, a.Group, strconv.Itoa(a.Year), a.Opponent}
	})
	if op := strings.ToLower(strings.TrimSpace(q.Opponent)); op != "" {
		data = Filter(data, func(a models.Achievement) bool {
			return strings.Contains(strings.ToLower(a.Opponent), op)
		})
	}
	return SortBy(data, achievementLess(q.Sort, q.Rank))
}

func achievementLess(mode SortMode, rank RankSort) func(a, b models.Achievement) bool {
	newest := mode != SortOldest
	yearBefore := func(a, b models.Achievement) int {
		if a.Year == b.Year {
			return 0
		}
		if (a.Year > b.Year) == newest {
			return -1
		}
		return 1
	}
	switch rank {
	case RankBest:
		return func(a, b models.Achievement) bool {
			if a.Rank != b.Rank {
				return a.Rank < b.Rank
			}
			return yearBefore(a, b) < 0
		}
	case RankWorst:
		return func(a, b models.Achievement) bool {
			if a.Rank != b.Rank {
				return a.Rank > b.Rank
			}
			return yearBefore(a, b) < 0
		}
	default:
		return func(a, b models.Achievement) bool {
			if c := yearBefore(a, b); c != 0 {
				return c < 0
			}
			return a.Rank < b.Rank
		}
	}
}
