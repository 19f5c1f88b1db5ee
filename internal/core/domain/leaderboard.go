package domain

import (
	"sort"
	"time"
)

type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	IsOwner        bool   `json:"is_owner"`
	Rank           int    `json:"rank"`
	Streak         int    `json:"streak"`
	CompletedToday bool   `json:"completed_today"`
}

type Leaderboard struct {
	GroupID     string             `json:"group_id"`
	GroupName   string             `json:"group_name"`
	Entries     []LeaderboardEntry `json:"entries"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// RankMembers projects a group's member set onto leaderboard entries, one
// per member, ordered by streak descending. Ties break on user ID ascending
// so the ordering is stable across recomputations. Members with no activity
// data rank with a zero streak; the ranking is total over the member set.
func RankMembers(group *Group, members []*User, activitiesByUser map[string][]*Activity, now time.Time) *Leaderboard {
	entries := make([]LeaderboardEntry, 0, len(members))

	for _, m := range members {
		if m == nil {
			continue
		}
		result := ComputeStreak(m.ID, activitiesByUser[m.ID], now)
		entries = append(entries, LeaderboardEntry{
			UserID:         m.ID,
			Name:           m.Name,
			AvatarURL:      m.AvatarURL,
			IsOwner:        group.IsOwner(m.ID),
			Streak:         result.Streak,
			CompletedToday: result.CompletedToday,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &Leaderboard{
		GroupID:     group.ID,
		GroupName:   group.Name,
		Entries:     entries,
		GeneratedAt: now.UTC(),
	}
}
