// Package dashboard owns the state of an opened customer dashboard: the static figures
// loaded from a profile, the editable analysis worksheets and the planning checklists.
// State changes only through Commands applied by Apply.
package dashboard

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tab ids. Profiles pick a subset.
const (
	TabSummary      = "ozet"
	TabSubscription = "abonelik"
	TabAnalysis     = "analiz"
	TabPlanning     = "planlama"
	TabExecution    = "uygulama"
	TabPerformance  = "performans-iyilestirme"
)

//go:embed default_profile.yaml
var defaultProfile []byte

var validate = validator.New()

// Profile is the YAML document a dashboard session is seeded from.
type Profile struct {
	Agency           string                   `yaml:"agency"`
	SelfLabel        string                   `yaml:"selfLabel"`
	Tabs             []string                 `yaml:"tabs" validate:"min=1,dive,oneof=ozet abonelik analiz planlama uygulama performans-iyilestirme"`
	Subscription     models.Subscription      `yaml:"subscription"`
	KPIs             []models.KPI             `yaml:"kpis"`
	Activity         []models.ActivityMetric  `yaml:"activity"`
	AnalysisSections []models.AnalysisSection `yaml:"analysisSections"`
	Planning         []models.PlanningSection `yaml:"planning"`
	Worksheets       WorksheetSeed            `yaml:"worksheets"`
}

// WorksheetSeed is the initial content of the analysis worksheets.
type WorksheetSeed struct {
	Strengths     []string         `yaml:"strengths"`
	Weaknesses    []string         `yaml:"weaknesses"`
	Opportunities []string         `yaml:"opportunities"`
	Threats       []string         `yaml:"threats"`
	Goals         []string         `yaml:"goals"`
	Services      []models.Service `yaml:"services"`
	Features      []string         `yaml:"features"`
	Competitors   []string         `yaml:"competitors"`
}

// DefaultProfile returns the built-in sample profile.
func DefaultProfile() (Profile, error) {
	return ParseProfile(defaultProfile)
}

// LoadProfile reads a profile from path, or the built-in one when path is empty.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return ParseProfile(data)
}

func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks tab ids, section statuses and the seeded services.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	for _, s := range p.AnalysisSections {
		if s.ID == "" {
			return fmt.Errorf("invalid profile: analysis section %q has no id", s.Title)
		}
		if s.Status != "" && !models.ValidStatus(s.Status) {
			return fmt.Errorf("invalid profile: analysis section %s has unknown status %q", s.ID, s.Status)
		}
	}
	for _, s := range p.Planning {
		if s.ID == "" {
			return fmt.Errorf("invalid profile: planning section %q has no id", s.Title)
		}
	}
	return validateServices(p.Worksheets.Services)
}

// validateServices enforces what the audience commands rely on: service ids unique and
// positive, group ids unique and positive within their service, known education values.
func validateServices(services []models.Service) error {
	serviceIDs := make(map[int]bool, len(services))
	for _, s := range services {
		if s.ID < 1 {
			return fmt.Errorf("invalid profile: service %q needs an id of at least 1", s.Name)
		}
		if serviceIDs[s.ID] {
			return fmt.Errorf("invalid profile: duplicate service id %d", s.ID)
		}
		serviceIDs[s.ID] = true

		groupIDs := make(map[int]bool, len(s.TargetGroups))
		for _, g := range s.TargetGroups {
			if g.ID < 1 {
				return fmt.Errorf("invalid profile: service %d has a target group without an id", s.ID)
			}
			if groupIDs[g.ID] {
				return fmt.Errorf("invalid profile: service %d has duplicate target group id %d", s.ID, g.ID)
			}
			groupIDs[g.ID] = true
			if !models.ValidEducation(g.Education) {
				return fmt.Errorf("invalid profile: service %d group %d has unknown education %q", s.ID, g.ID, g.Education)
			}
		}
	}
	return nil
}
