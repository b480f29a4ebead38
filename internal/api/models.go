package api

import (
	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/google/uuid"
)

// Request bodies
type listEntryRequest struct {
	Value string `json:"value"`
}

type serviceNameRequest struct {
	Name string `json:"name" binding:"max=200"`
}

type fieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type competitorRequest struct {
	Name        string `json:"name"`
	SocialMedia string `json:"socialMedia"`
	LinkedIn    string `json:"linkedin"`
	Website     string `json:"website"`
}

type featureRequest struct {
	Feature string `json:"feature"`
}

type scoreRequest struct {
	Feature string `json:"feature" binding:"required"`
	Entrant string `json:"entrant" binding:"required"`
	Score   string `json:"score"`
}

type checklistItemRequest struct {
	Item string `json:"item" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Responses
type StateResponse struct {
	Session uuid.UUID       `json:"session"`
	State   dashboard.State `json:"state"`
}

type ComparisonResponse struct {
	SelfLabel    string                       `json:"selfLabel"`
	Entrants     []string                     `json:"entrants"`
	Features     []string                     `json:"features"`
	Competitors  []models.Competitor          `json:"competitors"`
	Table        map[string]map[string]string `json:"table"`
	RowTotals    map[string]float64           `json:"rowTotals"`
	ColumnTotals map[string]float64           `json:"columnTotals"`
	GrandTotal   float64                      `json:"grandTotal"`
}

type DraftResponse struct {
	Persona models.Persona   `json:"persona"`
	Applied bool             `json:"applied"`
	State   *dashboard.State `json:"state,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
