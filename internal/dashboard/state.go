package dashboard

import (
	"slices"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
)

// List names addressed by list commands.
const (
	ListStrengths     = "strengths"
	ListWeaknesses    = "weaknesses"
	ListOpportunities = "opportunities"
	ListThreats       = "threats"
	ListGoals         = "goals"
)

// State is one snapshot of a dashboard. Values are never mutated in place; Apply returns a
// new State that shares untouched parts with the previous one.
type State struct {
	Version      int                      `json:"version"`
	Agency       string                   `json:"agency"`
	Tabs         []string                 `json:"tabs"`
	Subscription models.Subscription      `json:"subscription"`
	KPIs         []models.KPI             `json:"kpis"`
	Activity     []models.ActivityMetric  `json:"activity"`
	Analysis     Analysis                 `json:"analysis"`
	Planning     []models.PlanningSection `json:"planning"`
}

type Analysis struct {
	SWOT       SWOT                     `json:"swot"`
	Goals      worksheet.ListField      `json:"goals"`
	Audience   worksheet.Audience       `json:"audience"`
	Comparison worksheet.Matrix         `json:"comparison"`
	Sections   []models.AnalysisSection `json:"sections"`
}

type SWOT struct {
	Strengths     worksheet.ListField `json:"strengths"`
	Weaknesses    worksheet.ListField `json:"weaknesses"`
	Opportunities worksheet.ListField `json:"opportunities"`
	Threats       worksheet.ListField `json:"threats"`
}

// NewState builds the initial state of a session from a profile. Nothing in the result
// aliases the profile.
func NewState(p Profile) State {
	seed := p.Worksheets

	audience := worksheet.NewAudience()
	if len(seed.Services) > 0 {
		audience = make(worksheet.Audience, 0, len(seed.Services))
		for _, s := range seed.Services {
			s.TargetGroups = cloneGroups(s.TargetGroups)
			if len(s.TargetGroups) == 0 {
				s.TargetGroups = []models.TargetGroup{{ID: 1, Interests: []string{}}}
			}
			audience = append(audience, s)
		}
	}

	matrix := worksheet.NewMatrix(p.SelfLabel, seed.Features...)
	for _, name := range seed.Competitors {
		if next, err := matrix.AddCompetitor(name, "", "", ""); err == nil {
			matrix = next
		}
	}

	sections := make([]models.AnalysisSection, len(p.AnalysisSections))
	for i, s := range p.AnalysisSections {
		if s.Status == "" {
			s.Status = models.StatusNotStarted
		}
		s.Attachments = []models.Attachment{}
		sections[i] = s
	}

	planning := make([]models.PlanningSection, len(p.Planning))
	for i, s := range p.Planning {
		s.Items = slices.Clone(s.Items)
		if s.Items == nil {
			s.Items = []models.ChecklistItem{}
		}
		planning[i] = s
	}

	subscription := p.Subscription
	subscription.Features = slices.Clone(subscription.Features)

	return State{
		Agency:       p.Agency,
		Tabs:         slices.Clone(p.Tabs),
		Subscription: subscription,
		KPIs:         slices.Clone(p.KPIs),
		Activity:     slices.Clone(p.Activity),
		Analysis: Analysis{
			SWOT: SWOT{
				Strengths:     seedList(seed.Strengths),
				Weaknesses:    seedList(seed.Weaknesses),
				Opportunities: seedList(seed.Opportunities),
				Threats:       seedList(seed.Threats),
			},
			Goals:      seedList(seed.Goals),
			Audience:   audience,
			Comparison: matrix,
			Sections:   sections,
		},
		Planning: planning,
	}
}

// List returns the named list field.
func (s State) List(name string) (worksheet.ListField, bool) {
	switch name {
	case ListStrengths:
		return s.Analysis.SWOT.Strengths, true
	case ListWeaknesses:
		return s.Analysis.SWOT.Weaknesses, true
	case ListOpportunities:
		return s.Analysis.SWOT.Opportunities, true
	case ListThreats:
		return s.Analysis.SWOT.Threats, true
	case ListGoals:
		return s.Analysis.Goals, true
	}
	return nil, false
}

func (s State) withList(name string, l worksheet.ListField) State {
	switch name {
	case ListStrengths:
		s.Analysis.SWOT.Strengths = l
	case ListWeaknesses:
		s.Analysis.SWOT.Weaknesses = l
	case ListOpportunities:
		s.Analysis.SWOT.Opportunities = l
	case ListThreats:
		s.Analysis.SWOT.Threats = l
	case ListGoals:
		s.Analysis.Goals = l
	}
	return s
}

// HasTab reports whether the dashboard shows the tab.
func (s State) HasTab(tab string) bool {
	return slices.Contains(s.Tabs, tab)
}

// Section returns the analysis section with the given id.
func (s State) Section(id string) (models.AnalysisSection, bool) {
	i := s.sectionIndex(id)
	if i < 0 {
		return models.AnalysisSection{}, false
	}
	return s.Analysis.Sections[i], true
}

func (s State) sectionIndex(id string) int {
	return slices.IndexFunc(s.Analysis.Sections, func(sec models.AnalysisSection) bool { return sec.ID == id })
}

func (s State) planningIndex(id string) int {
	return slices.IndexFunc(s.Planning, func(sec models.PlanningSection) bool { return sec.ID == id })
}

func seedList(entries []string) worksheet.ListField {
	if len(entries) == 0 {
		return worksheet.NewListField()
	}
	return slices.Clone(worksheet.ListField(entries))
}

func cloneGroups(groups []models.TargetGroup) []models.TargetGroup {
	out := make([]models.TargetGroup, len(groups))
	for i, g := range groups {
		g.Interests = slices.Clone(g.Interests)
		if g.Interests == nil {
			g.Interests = []string{}
		}
		out[i] = g
	}
	return out
}
