package report

import (
	"testing"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultState(t *testing.T) dashboard.State {
	t.Helper()
	p, err := dashboard.DefaultProfile()
	require.NoError(t, err)
	return dashboard.NewState(p)
}

func TestBuild_DefaultProfile(t *testing.T) {
	r := Build(defaultState(t))

	assert.Equal(t, "İntime Mimarlık", r.Customer)
	assert.Equal(t, "Growth Paket", r.Package)

	require.Len(t, r.KPIs, 4)
	assert.InDelta(t, 81.67, r.KPIs[0].Progress, 0.01)
	assert.InDelta(t, 64, r.KPIs[2].Progress, 0.01)

	assert.Equal(t, StatusCounts{Completed: 0, InProgress: 1, NotStarted: 6}, r.Status)

	require.Len(t, r.Activity, 4)
	assert.Equal(t, 84, r.Activity[0].MonthlyAchievement)
	assert.Equal(t, 93, r.Activity[1].MonthlyAchievement)
	assert.Equal(t, 80, r.Activity[2].MonthlyAchievement)
	assert.Equal(t, 90, r.Activity[3].MonthlyAchievement)
	assert.Equal(t, 100.0, r.Activity[1].GrowthBar)
	assert.Equal(t, 78.0, r.Activity[2].GrowthBar)

	require.Len(t, r.Planning, 3)
	assert.Equal(t, 1, r.Planning[0].Completed)
	assert.Equal(t, 4, r.Planning[0].Total)
	assert.InDelta(t, 25, r.Planning[0].Percent, 1e-9)
}

func TestBuild_FollowsState(t *testing.T) {
	s := defaultState(t)
	s, err := dashboard.Apply(s, dashboard.SetSectionStatus{SectionID: "brand", Status: models.StatusCompleted})
	require.NoError(t, err)
	s, err = dashboard.Apply(s, dashboard.ToggleChecklistItem{SectionID: "email-planning", Index: 0})
	require.NoError(t, err)

	r := Build(s)
	assert.Equal(t, 1, r.Status.Completed)
	assert.Equal(t, 5, r.Status.NotStarted)
	assert.Equal(t, 1, r.Planning[2].Completed)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 50.0, Ratio(1, 2))
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 0.0, Ratio(5, -1))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.450", FormatNumber(2450))
	assert.Equal(t, "3,2", FormatNumber(3.2))
	assert.Equal(t, "22,5", FormatNumber(22.5))
}

func TestReportText(t *testing.T) {
	text := Build(defaultState(t)).Text()

	assert.Contains(t, text, "İntime Mimarlık | Growth Paket")
	assert.Contains(t, text, "Website Ziyareti: 2.450 / 3.000 ziyaret")
	assert.Contains(t, text, "1 devam eden")
	assert.Contains(t, text, "Sosyal Medya Hedefleri: aylık %84")
}
