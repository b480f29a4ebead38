package worksheet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
)

// Target group fields accepted by UpdateTargetGroup.
const (
	GroupAgeRange  = "ageRange"
	GroupLocation  = "location"
	GroupEducation = "education"
	GroupInterests = "interests"
)

// Persona fields accepted by UpdatePersona.
const (
	PersonaName        = "name"
	PersonaBio         = "bio"
	PersonaProfession  = "profession"
	PersonaHasChildren = "hasChildren"
	PersonaResidence   = "residence"
	PersonaLikes       = "likes"
	PersonaPainPoints  = "painPoints"
	PersonaMotivations = "motivations"
)

// Audience is the services → target groups → persona tree of the target audience worksheet.
type Audience []models.Service

// NewAudience returns an audience with one default service.
func NewAudience() Audience {
	return Audience{}.AddService()
}

// AddService appends a service with id max+1 (1 when empty) holding one default target group.
func (a Audience) AddService() Audience {
	next := 1
	for _, s := range a {
		if s.ID >= next {
			next = s.ID + 1
		}
	}

	out := make(Audience, len(a), len(a)+1)
	copy(out, a)
	return append(out, models.Service{
		ID:           next,
		TargetGroups: []models.TargetGroup{{ID: 1, Interests: []string{}}},
	})
}

// UpdateServiceName replaces the name of the service with the given id.
func (a Audience) UpdateServiceName(serviceID int, name string) (Audience, error) {
	i := a.serviceIndex(serviceID)
	if i < 0 {
		return a, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}
	out := slices.Clone(a)
	out[i].Name = name
	return out, nil
}

// AddTargetGroup appends a target group with id max+1 to the service.
func (a Audience) AddTargetGroup(serviceID int) (Audience, error) {
	i := a.serviceIndex(serviceID)
	if i < 0 {
		return a, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}

	groups := a[i].TargetGroups
	next := 1
	for _, g := range groups {
		if g.ID >= next {
			next = g.ID + 1
		}
	}

	out := slices.Clone(a)
	newGroups := make([]models.TargetGroup, len(groups), len(groups)+1)
	copy(newGroups, groups)
	out[i].TargetGroups = append(newGroups, models.TargetGroup{ID: next, Interests: []string{}})
	return out, nil
}

// UpdateTargetGroup sets one scalar field of a target group. Interests are given as
// comma-separated text.
func (a Audience) UpdateTargetGroup(serviceID, groupID int, field, value string) (Audience, error) {
	return a.updateGroup(serviceID, groupID, func(g *models.TargetGroup) error {
		switch field {
		case GroupAgeRange:
			g.AgeRange = value
		case GroupLocation:
			g.Location = value
		case GroupEducation:
			if !models.ValidEducation(value) {
				return fmt.Errorf("education %q: %w", value, ErrInvalidInput)
			}
			g.Education = value
		case GroupInterests:
			g.Interests = SplitInterests(value)
		default:
			return fmt.Errorf("target group field %q: %w", field, ErrUnknownField)
		}
		return nil
	})
}

// UpdatePersona sets one field of a target group's persona.
func (a Audience) UpdatePersona(serviceID, groupID int, field, value string) (Audience, error) {
	return a.updateGroup(serviceID, groupID, func(g *models.TargetGroup) error {
		p := &g.Persona
		switch field {
		case PersonaName:
			p.Name = value
		case PersonaBio:
			p.Bio = value
		case PersonaProfession:
			p.Profession = value
		case PersonaHasChildren:
			p.HasChildren = value
		case PersonaResidence:
			p.Residence = value
		case PersonaLikes:
			p.Likes = value
		case PersonaPainPoints:
			p.PainPoints = value
		case PersonaMotivations:
			p.Motivations = value
		default:
			return fmt.Errorf("persona field %q: %w", field, ErrUnknownField)
		}
		return nil
	})
}

// ReplacePersona swaps the whole persona of a target group, e.g. with a generated draft.
func (a Audience) ReplacePersona(serviceID, groupID int, persona models.Persona) (Audience, error) {
	return a.updateGroup(serviceID, groupID, func(g *models.TargetGroup) error {
		g.Persona = persona
		return nil
	})
}

// Group returns the target group and the name of the service it belongs to.
func (a Audience) Group(serviceID, groupID int) (models.TargetGroup, string, error) {
	i := a.serviceIndex(serviceID)
	if i < 0 {
		return models.TargetGroup{}, "", fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}
	for _, g := range a[i].TargetGroups {
		if g.ID == groupID {
			return g, a[i].Name, nil
		}
	}
	return models.TargetGroup{}, "", fmt.Errorf("service %d target group %d: %w", serviceID, groupID, ErrNotFound)
}

func (a Audience) updateGroup(serviceID, groupID int, mutate func(*models.TargetGroup) error) (Audience, error) {
	i := a.serviceIndex(serviceID)
	if i < 0 {
		return a, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}

	j := slices.IndexFunc(a[i].TargetGroups, func(g models.TargetGroup) bool { return g.ID == groupID })
	if j < 0 {
		return a, fmt.Errorf("service %d target group %d: %w", serviceID, groupID, ErrNotFound)
	}

	group := a[i].TargetGroups[j]
	group.Interests = slices.Clone(group.Interests)
	if err := mutate(&group); err != nil {
		return a, err
	}

	out := slices.Clone(a)
	out[i].TargetGroups = slices.Clone(a[i].TargetGroups)
	out[i].TargetGroups[j] = group
	return out, nil
}

func (a Audience) serviceIndex(id int) int {
	return slices.IndexFunc(a, func(s models.Service) bool { return s.ID == id })
}

// SplitInterests turns "a, b,,c" into [a b c].
func SplitInterests(text string) []string {
	interests := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			interests = append(interests, part)
		}
	}
	return interests
}
