package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
	"github.com/google/uuid"
)

// ErrTabDisabled rejects commands that edit a tab the dashboard's profile leaves out.
var ErrTabDisabled = errors.New("tab is not enabled for this dashboard")

// Command is one user action on a dashboard.
type Command interface {
	Name() string
	apply(State) (State, error)
}

// tabScoped commands edit content shown on a single tab.
type tabScoped interface {
	tab() string
}

// Apply validates cmd and applies it to s. On failure s is returned unchanged together
// with an error wrapping ErrTabDisabled or one of the worksheet sentinels. On success the
// version is bumped.
func Apply(s State, cmd Command) (State, error) {
	if ts, ok := cmd.(tabScoped); ok && !s.HasTab(ts.tab()) {
		return s, fmt.Errorf("%s: tab %q: %w", cmd.Name(), ts.tab(), ErrTabDisabled)
	}
	if err := validate.Struct(cmd); err != nil {
		return s, fmt.Errorf("%s: %w: %v", cmd.Name(), worksheet.ErrInvalidInput, err)
	}
	next, err := cmd.apply(s)
	if err != nil {
		return s, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	next.Version = s.Version + 1
	return next, nil
}

type AppendListEntry struct {
	List string `json:"list" validate:"required,oneof=strengths weaknesses opportunities threats goals"`
}

func (AppendListEntry) Name() string { return "append-list-entry" }
func (AppendListEntry) tab() string { return TabAnalysis }

func (c AppendListEntry) apply(s State) (State, error) {
	l, _ := s.List(c.List)
	return s.withList(c.List, l.Append()), nil
}

type UpdateListEntry struct {
	List  string `json:"list" validate:"required,oneof=strengths weaknesses opportunities threats goals"`
	Index int    `json:"index"`
	Value string `json:"value"`
}

func (UpdateListEntry) Name() string { return "update-list-entry" }
func (UpdateListEntry) tab() string { return TabAnalysis }

func (c UpdateListEntry) apply(s State) (State, error) {
	l, _ := s.List(c.List)
	updated, err := l.Update(c.Index, c.Value)
	if err != nil {
		return s, fmt.Errorf("%s: %w", c.List, err)
	}
	return s.withList(c.List, updated), nil
}

type AddService struct{}

func (AddService) Name() string { return "add-service" }
func (AddService) tab() string { return TabAnalysis }

func (AddService) apply(s State) (State, error) {
	s.Analysis.Audience = s.Analysis.Audience.AddService()
	return s, nil
}

type RenameService struct {
	ServiceID   int    `json:"serviceId" validate:"min=1"`
	ServiceName string `json:"name" validate:"max=200"`
}

func (RenameService) Name() string { return "rename-service" }
func (RenameService) tab() string { return TabAnalysis }

func (c RenameService) apply(s State) (State, error) {
	a, err := s.Analysis.Audience.UpdateServiceName(c.ServiceID, c.ServiceName)
	if err != nil {
		return s, err
	}
	s.Analysis.Audience = a
	return s, nil
}

type AddTargetGroup struct {
	ServiceID int `json:"serviceId" validate:"min=1"`
}

func (AddTargetGroup) Name() string { return "add-target-group" }
func (AddTargetGroup) tab() string { return TabAnalysis }

func (c AddTargetGroup) apply(s State) (State, error) {
	a, err := s.Analysis.Audience.AddTargetGroup(c.ServiceID)
	if err != nil {
		return s, err
	}
	s.Analysis.Audience = a
	return s, nil
}

type UpdateTargetGroup struct {
	ServiceID int    `json:"serviceId" validate:"min=1"`
	GroupID   int    `json:"groupId" validate:"min=1"`
	Field     string `json:"field" validate:"required"`
	Value     string `json:"value"`
}

func (UpdateTargetGroup) Name() string { return "update-target-group" }
func (UpdateTargetGroup) tab() string { return TabAnalysis }

func (c UpdateTargetGroup) apply(s State) (State, error) {
	a, err := s.Analysis.Audience.UpdateTargetGroup(c.ServiceID, c.GroupID, c.Field, c.Value)
	if err != nil {
		return s, err
	}
	s.Analysis.Audience = a
	return s, nil
}

type UpdatePersona struct {
	ServiceID int    `json:"serviceId" validate:"min=1"`
	GroupID   int    `json:"groupId" validate:"min=1"`
	Field     string `json:"field" validate:"required"`
	Value     string `json:"value"`
}

func (UpdatePersona) Name() string { return "update-persona" }
func (UpdatePersona) tab() string { return TabAnalysis }

func (c UpdatePersona) apply(s State) (State, error) {
	a, err := s.Analysis.Audience.UpdatePersona(c.ServiceID, c.GroupID, c.Field, c.Value)
	if err != nil {
		return s, err
	}
	s.Analysis.Audience = a
	return s, nil
}

// ApplyPersonaDraft replaces a persona with a generated draft.
type ApplyPersonaDraft struct {
	ServiceID int            `json:"serviceId" validate:"min=1"`
	GroupID   int            `json:"groupId" validate:"min=1"`
	Persona   models.Persona `json:"persona"`
}

func (ApplyPersonaDraft) Name() string { return "apply-persona-draft" }
func (ApplyPersonaDraft) tab() string { return TabAnalysis }

func (c ApplyPersonaDraft) apply(s State) (State, error) {
	a, err := s.Analysis.Audience.ReplacePersona(c.ServiceID, c.GroupID, c.Persona)
	if err != nil {
		return s, err
	}
	s.Analysis.Audience = a
	return s, nil
}

type AddCompetitor struct {
	Competitor  string `json:"name" validate:"max=200"`
	SocialMedia string `json:"socialMedia"`
	LinkedIn    string `json:"linkedin"`
	Website     string `json:"website"`
}

func (AddCompetitor) Name() string { return "add-competitor" }
func (AddCompetitor) tab() string { return TabAnalysis }

func (c AddCompetitor) apply(s State) (State, error) {
	m, err := s.Analysis.Comparison.AddCompetitor(c.Competitor, c.SocialMedia, c.LinkedIn, c.Website)
	if err != nil {
		return s, err
	}
	s.Analysis.Comparison = m
	return s, nil
}

type AddFeature struct {
	Feature string `json:"feature" validate:"max=200"`
}

func (AddFeature) Name() string { return "add-feature" }
func (AddFeature) tab() string { return TabAnalysis }

func (c AddFeature) apply(s State) (State, error) {
	m, err := s.Analysis.Comparison.AddFeature(c.Feature)
	if err != nil {
		return s, err
	}
	s.Analysis.Comparison = m
	return s, nil
}

type UpdateScore struct {
	Feature string `json:"feature" validate:"required"`
	Entrant string `json:"entrant" validate:"required"`
	Score   string `json:"score"`
}

func (UpdateScore) Name() string { return "update-score" }
func (UpdateScore) tab() string { return TabAnalysis }

func (c UpdateScore) apply(s State) (State, error) {
	m, err := s.Analysis.Comparison.UpdateScore(c.Feature, c.Entrant, c.Score)
	if err != nil {
		return s, err
	}
	s.Analysis.Comparison = m
	return s, nil
}

type AddChecklistItem struct {
	SectionID string `json:"sectionId" validate:"required"`
	Item      string `json:"item" validate:"required,max=200"`
}

func (AddChecklistItem) Name() string { return "add-checklist-item" }
func (AddChecklistItem) tab() string { return TabPlanning }

func (c AddChecklistItem) apply(s State) (State, error) {
	if strings.TrimSpace(c.Item) == "" {
		return s, fmt.Errorf("checklist item is blank: %w", worksheet.ErrInvalidInput)
	}
	return s.updatePlanning(c.SectionID, func(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
		return append(items, models.ChecklistItem{Name: strings.TrimSpace(c.Item)}), nil
	})
}

type ToggleChecklistItem struct {
	SectionID string `json:"sectionId" validate:"required"`
	Index     int    `json:"index"`
}

func (ToggleChecklistItem) Name() string { return "toggle-checklist-item" }
func (ToggleChecklistItem) tab() string { return TabPlanning }

func (c ToggleChecklistItem) apply(s State) (State, error) {
	return s.updatePlanning(c.SectionID, func(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
		if c.Index < 0 || c.Index >= len(items) {
			return nil, fmt.Errorf("checklist item %d: %w", c.Index, worksheet.ErrNotFound)
		}
		items[c.Index].Completed = !items[c.Index].Completed
		return items, nil
	})
}

type RemoveChecklistItem struct {
	SectionID string `json:"sectionId" validate:"required"`
	Index     int    `json:"index"`
}

func (RemoveChecklistItem) Name() string { return "remove-checklist-item" }
func (RemoveChecklistItem) tab() string { return TabPlanning }

func (c RemoveChecklistItem) apply(s State) (State, error) {
	return s.updatePlanning(c.SectionID, func(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
		if c.Index < 0 || c.Index >= len(items) {
			return nil, fmt.Errorf("checklist item %d: %w", c.Index, worksheet.ErrNotFound)
		}
		return slices.Delete(items, c.Index, c.Index+1), nil
	})
}

type AddAttachment struct {
	SectionID   string `validate:"required"`
	FileName    string `validate:"required,max=255"`
	ContentType string
	Data        []byte
}

func (AddAttachment) Name() string { return "add-attachment" }
func (AddAttachment) tab() string { return TabAnalysis }

func (c AddAttachment) apply(s State) (State, error) {
	contentType := c.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.updateSection(c.SectionID, func(sec *models.AnalysisSection) error {
		sec.Attachments = append(slices.Clone(sec.Attachments), models.Attachment{
			ID:          uuid.New(),
			Name:        c.FileName,
			Size:        int64(len(c.Data)),
			ContentType: contentType,
			UploadedAt:  time.Now().UTC(),
			Data:        c.Data,
		})
		return nil
	})
}

type RemoveAttachment struct {
	SectionID    string    `json:"sectionId" validate:"required"`
	AttachmentID uuid.UUID `json:"attachmentId"`
}

func (RemoveAttachment) Name() string { return "remove-attachment" }
func (RemoveAttachment) tab() string { return TabAnalysis }

func (c RemoveAttachment) apply(s State) (State, error) {
	return s.updateSection(c.SectionID, func(sec *models.AnalysisSection) error {
		i := slices.IndexFunc(sec.Attachments, func(a models.Attachment) bool { return a.ID == c.AttachmentID })
		if i < 0 {
			return fmt.Errorf("attachment %s: %w", c.AttachmentID, worksheet.ErrNotFound)
		}
		sec.Attachments = slices.Delete(slices.Clone(sec.Attachments), i, i+1)
		return nil
	})
}

type SetSectionStatus struct {
	SectionID string `json:"sectionId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=not-started in-progress completed"`
}

func (SetSectionStatus) Name() string { return "set-section-status" }
func (SetSectionStatus) tab() string { return TabAnalysis }

func (c SetSectionStatus) apply(s State) (State, error) {
	return s.updateSection(c.SectionID, func(sec *models.AnalysisSection) error {
		sec.Status = c.Status
		return nil
	})
}

// updatePlanning hands mutate a private copy of the section's items.
func (s State) updatePlanning(id string, mutate func([]models.ChecklistItem) ([]models.ChecklistItem, error)) (State, error) {
	i := s.planningIndex(id)
	if i < 0 {
		return s, fmt.Errorf("planning section %q: %w", id, worksheet.ErrNotFound)
	}
	items, err := mutate(slices.Clone(s.Planning[i].Items))
	if err != nil {
		return s, err
	}
	planning := slices.Clone(s.Planning)
	planning[i].Items = items
	s.Planning = planning
	return s, nil
}

func (s State) updateSection(id string, mutate func(*models.AnalysisSection) error) (State, error) {
	i := s.sectionIndex(id)
	if i < 0 {
		return s, fmt.Errorf("analysis section %q: %w", id, worksheet.ErrNotFound)
	}
	sec := s.Analysis.Sections[i]
	if err := mutate(&sec); err != nil {
		return s, err
	}
	sections := slices.Clone(s.Analysis.Sections)
	sections[i] = sec
	s.Analysis.Sections = sections
	return s, nil
}
