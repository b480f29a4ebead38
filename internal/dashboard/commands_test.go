package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) State {
	t.Helper()
	p, err := DefaultProfile()
	require.NoError(t, err)
	return NewState(p)
}

func mustApply(t *testing.T, s State, cmds ...Command) State {
	t.Helper()
	for _, cmd := range cmds {
		var err error
		s, err = Apply(s, cmd)
		require.NoError(t, err, cmd.Name())
	}
	return s
}

func TestApply_ListCommands(t *testing.T) {
	s := newTestState(t)

	s = mustApply(t, s,
		AppendListEntry{List: ListStrengths},
		AppendListEntry{List: ListStrengths},
		UpdateListEntry{List: ListStrengths, Index: 2, Value: "Güçlü portföy"},
		UpdateListEntry{List: ListGoals, Index: 0, Value: "Marka bilinirliği"},
	)

	assert.Equal(t, worksheet.ListField{"", "", "Güçlü portföy"}, s.Analysis.SWOT.Strengths)
	assert.Equal(t, worksheet.ListField{"Marka bilinirliği"}, s.Analysis.Goals)
	assert.Equal(t, 4, s.Version)
}

func TestApply_ErrorLeavesStateUnchanged(t *testing.T) {
	s := newTestState(t)

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"unknown list", AppendListEntry{List: "risks"}, worksheet.ErrInvalidInput},
		{"list index out of range", UpdateListEntry{List: ListThreats, Index: 3}, worksheet.ErrNotFound},
		{"unknown service", RenameService{ServiceID: 9, ServiceName: "x"}, worksheet.ErrNotFound},
		{"zero service id", AddTargetGroup{ServiceID: 0}, worksheet.ErrInvalidInput},
		{"unknown group", UpdatePersona{ServiceID: 1, GroupID: 4, Field: worksheet.PersonaBio}, worksheet.ErrNotFound},
		{"unknown persona field", UpdatePersona{ServiceID: 1, GroupID: 1, Field: "salary"}, worksheet.ErrUnknownField},
		{"blank feature", AddFeature{Feature: " "}, worksheet.ErrInvalidInput},
		{"blank competitor", AddCompetitor{}, worksheet.ErrInvalidInput},
		{"score on missing row", UpdateScore{Feature: "Hız", Entrant: "İntime", Score: "3"}, worksheet.ErrNotFound},
		{"unknown planning section", AddChecklistItem{SectionID: "seo", Item: "x"}, worksheet.ErrNotFound},
		{"blank checklist item", AddChecklistItem{SectionID: "social-planning", Item: "  "}, worksheet.ErrInvalidInput},
		{"toggle out of range", ToggleChecklistItem{SectionID: "email-planning", Index: 3}, worksheet.ErrNotFound},
		{"bad status", SetSectionStatus{SectionID: "swot", Status: "done"}, worksheet.ErrInvalidInput},
		{"missing attachment", RemoveAttachment{SectionID: "brand", AttachmentID: uuid.New()}, worksheet.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(s, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, s, got)
		})
	}
}

func TestApply_AudienceCommands(t *testing.T) {
	s := newTestState(t)

	s = mustApply(t, s,
		RenameService{ServiceID: 1, ServiceName: "İç Mimari"},
		AddService{},
		AddTargetGroup{ServiceID: 1},
		UpdateTargetGroup{ServiceID: 1, GroupID: 2, Field: worksheet.GroupLocation, Value: "İzmir"},
		UpdatePersona{ServiceID: 1, GroupID: 2, Field: worksheet.PersonaProfession, Value: "Avukat"},
	)

	a := s.Analysis.Audience
	require.Len(t, a, 2)
	assert.Equal(t, "İç Mimari", a[0].Name)
	assert.Equal(t, 2, a[1].ID)
	assert.Equal(t, "İzmir", a[0].TargetGroups[1].Location)
	assert.Equal(t, "Avukat", a[0].TargetGroups[1].Persona.Profession)

	draft := models.Persona{Name: "Zeynep", Motivations: "Prestij"}
	s = mustApply(t, s, ApplyPersonaDraft{ServiceID: 2, GroupID: 1, Persona: draft})
	assert.Equal(t, draft, s.Analysis.Audience[1].TargetGroups[0].Persona)
}

func TestApply_ComparisonCommands(t *testing.T) {
	s := newTestState(t)
	require.Equal(t, []string{""}, s.Analysis.Comparison.Features)

	s = mustApply(t, s,
		AddCompetitor{Competitor: "Acme", Website: "acme.com"},
		AddFeature{Feature: "Price"},
		UpdateScore{Feature: "Price", Entrant: "Acme", Score: "7"},
		UpdateScore{Feature: "Price", Entrant: worksheet.DefaultSelfLabel, Score: "9"},
	)

	m := s.Analysis.Comparison
	assert.Equal(t, []string{"", "Price"}, m.Features)
	assert.Equal(t, 7.0, m.ColumnTotal("Acme"))
	assert.Equal(t, 16.0, m.RowTotal("Price"))
	assert.Equal(t, "acme.com", m.Competitors[0].Website)
}

func TestApply_PlanningCommands(t *testing.T) {
	s := newTestState(t)

	s = mustApply(t, s,
		AddChecklistItem{SectionID: "email-planning", Item: "A/B testi"},
		ToggleChecklistItem{SectionID: "email-planning", Index: 3},
		RemoveChecklistItem{SectionID: "email-planning", Index: 0},
	)

	items := s.Planning[2].Items
	require.Len(t, items, 3)
	assert.Equal(t, "Otomasyon Kurulumu", items[0].Name)
	assert.Equal(t, models.ChecklistItem{Name: "A/B testi", Completed: true}, items[2])
}

func TestApply_PlanningCopyOnWrite(t *testing.T) {
	before := newTestState(t)
	after := mustApply(t, before, ToggleChecklistItem{SectionID: "social-planning", Index: 0})

	assert.False(t, before.Planning[0].Items[0].Completed)
	assert.True(t, after.Planning[0].Items[0].Completed)
}

func TestApply_Attachments(t *testing.T) {
	s := newTestState(t)

	s = mustApply(t, s, AddAttachment{SectionID: "brand", FileName: "logo.png", Data: []byte("png")})
	sec, ok := s.Section("brand")
	require.True(t, ok)
	require.Len(t, sec.Attachments, 1)
	att := sec.Attachments[0]
	assert.Equal(t, "logo.png", att.Name)
	assert.Equal(t, int64(3), att.Size)
	assert.Equal(t, "application/octet-stream", att.ContentType)

	s = mustApply(t, s,
		SetSectionStatus{SectionID: "brand", Status: models.StatusCompleted},
		RemoveAttachment{SectionID: "brand", AttachmentID: att.ID},
	)
	sec, _ = s.Section("brand")
	assert.Empty(t, sec.Attachments)
	assert.Equal(t, models.StatusCompleted, sec.Status)

	_, err := Apply(s, AddAttachment{SectionID: "brand"})
	assert.ErrorIs(t, err, worksheet.ErrInvalidInput)
}

func TestState_ListNames(t *testing.T) {
	s := newTestState(t)
	for _, name := range []string{ListStrengths, ListWeaknesses, ListOpportunities, ListThreats, ListGoals} {
		_, ok := s.List(name)
		assert.True(t, ok, name)

		_, err := Apply(s, AppendListEntry{List: name})
		assert.NoError(t, err, name)
	}
}

func TestApply_NamedCommandsDecodeJSON(t *testing.T) {
	s := newTestState(t)

	var rename RenameService
	require.NoError(t, json.Unmarshal([]byte(`{"serviceId": 1, "name": "Restorasyon"}`), &rename))
	var competitor AddCompetitor
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Acme", "website": "acme.com"}`), &competitor))

	assert.Equal(t, "rename-service", rename.Name())
	assert.Equal(t, "add-competitor", competitor.Name())

	s = mustApply(t, s, rename, competitor)
	assert.Equal(t, "Restorasyon", s.Analysis.Audience[0].Name)
	assert.Equal(t, "Acme", s.Analysis.Comparison.Competitors[0].Name)
}

func TestApply_DisabledTab(t *testing.T) {
	p, err := ParseProfile([]byte("tabs: [ozet, abonelik]\nplanning:\n  - {id: social-planning, title: Sosyal}\n"))
	require.NoError(t, err)
	s := NewState(p)

	tests := []struct {
		name string
		cmd  Command
	}{
		{"list entry", AppendListEntry{List: ListGoals}},
		{"service", AddService{}},
		{"competitor", AddCompetitor{Competitor: "Acme"}},
		{"feature", AddFeature{Feature: "Fiyat"}},
		{"checklist item", AddChecklistItem{SectionID: "social-planning", Item: "Reels"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(s, tt.cmd)
			assert.ErrorIs(t, err, ErrTabDisabled)
			assert.Equal(t, s, got)
		})
	}

	p.Tabs = append(p.Tabs, TabPlanning)
	s = mustApply(t, NewState(p), AddChecklistItem{SectionID: "social-planning", Item: "Reels"})
	assert.Equal(t, "Reels", s.Planning[0].Items[0].Name)
}
