package services

import (
	"sort"

	"activity-dashboard/internal/models"
	"activity-dashboard/internal/utils"
)

// RankMembers returns a copy of members ordered by productivity score,
// highest first. Equal scores keep their backend order.
func RankMembers(members []models.TeamMemberStat) []models.TeamMemberStat {
	ranked := make([]models.TeamMemberStat, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProductivityScore > ranked[j].ProductivityScore
	})
	return ranked
}

// TopPerformer is the highest-ranked member
func TopPerformer(members []models.TeamMemberStat) (models.TeamMemberStat, bool) {
	ranked := RankMembers(members)
	if len(ranked) == 0 {
		return models.TeamMemberStat{}, false
	}
	return ranked[0], true
}

// MostActive is the member with the largest active duration. The first
// encountered wins a tie; there is none when every duration is zero.
func MostActive(members []models.TeamMemberStat) (models.TeamMemberStat, bool) {
	best := -1
	for i, member := range members {
		if member.TotalActiveDuration <= 0 {
			continue
		}
		if best < 0 || member.TotalActiveDuration > members[best].TotalActiveDuration {
			best = i
		}
	}
	if best < 0 {
		return models.TeamMemberStat{}, false
	}
	return members[best], true
}

// EarlyBird is the member with the earliest first logon. Members without
// a logon are never chosen; the first encountered wins a tie.
func EarlyBird(members []models.TeamMemberStat) (models.TeamMemberStat, bool) {
	best := -1
	for i, member := range members {
		if member.FirstLogon == nil || member.FirstLogon.IsZero() {
			continue
		}
		if best < 0 || member.FirstLogon.Before(members[best].FirstLogon.Time) {
			best = i
		}
	}
	if best < 0 {
		return models.TeamMemberStat{}, false
	}
	return members[best], true
}

// BuildTeamView ranks the team and derives its highlights. Each highlight
// is computed over the backend order, independent of the ranking.
func BuildTeamView(summary *models.TeamSummary) models.TeamView {
	if summary == nil {
		summary = &models.TeamSummary{}
	}

	totals := summary.Summary
	teamLevel := models.ClassifyProductivity(totals.TeamProductivityScore)

	view := models.TeamView{
		Date: summary.Date,
		Summary: models.TeamSummaryCard{
			TotalUsers:       totals.TotalUsers,
			TeamProductivity: utils.FormatPercentage(totals.TeamProductivityScore),
			Level:            teamLevel.Style(),
			TotalActiveTime:  utils.FormatDuration(totals.TotalActiveDuration),
			AvgActiveTime:    utils.FormatDuration(totals.AvgActiveDuration),
			AvgSessionTime:   utils.FormatDuration(totals.AvgSessionDuration),
		},
		Rankings: []models.RankedMember{},
	}

	for i, member := range RankMembers(summary.TeamStats) {
		view.Rankings = append(view.Rankings, models.RankedMember{
			Rank:         i + 1,
			Member:       member,
			ActiveTime:   utils.FormatDuration(member.TotalActiveDuration),
			Productivity: utils.FormatPercentage(member.ProductivityScore),
			Level:        models.ClassifyProductivity(member.ProductivityScore).Style(),
			FirstLogon:   formatTimestamp(member.FirstLogon),
			LastActivity: formatTimestamp(member.LastActivity),
		})
	}

	if top, ok := TopPerformer(summary.TeamStats); ok {
		view.Insights.TopPerformer = &models.MemberHighlight{
			Username: top.Username,
			Detail:   utils.FormatPercentage(top.ProductivityScore),
		}
	}
	if active, ok := MostActive(summary.TeamStats); ok {
		view.Insights.MostActive = &models.MemberHighlight{
			Username: active.Username,
			Detail:   utils.FormatDuration(active.TotalActiveDuration),
		}
	}
	if early, ok := EarlyBird(summary.TeamStats); ok {
		view.Insights.EarlyBird = &models.MemberHighlight{
			Username: early.Username,
			Detail:   formatTimestamp(early.FirstLogon),
		}
	}

	return view
}
