package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/BerylCAtieno/client-dashboard/internal/dashboard"
	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/BerylCAtieno/client-dashboard/internal/report"
	"github.com/BerylCAtieno/client-dashboard/internal/schemas"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	draftTimeout = 30 * time.Second

	// multipartOverhead covers boundaries and part headers around the uploaded file.
	multipartOverhead = 64 << 10
)

// PersonaDrafter proposes a persona for a target group.
type PersonaDrafter interface {
	DraftPersona(ctx context.Context, serviceName string, group models.TargetGroup) (models.Persona, error)
}

type Handler struct {
	store          *dashboard.Store
	drafter        PersonaDrafter
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewHandler wires the HTTP handlers. drafter may be nil, which disables persona drafting.
func NewHandler(store *dashboard.Store, drafter PersonaDrafter, logger *zap.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:          store,
		drafter:        drafter,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// RequestLoggingMiddleware logs all incoming requests
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()))
	}
}

// NewRouter builds the gin engine with every dashboard endpoint.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(h.logger))
	router.MaxMultipartMemory = h.maxUploadBytes

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/schemas/snapshot.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/schema+json", []byte(schemas.SnapshotSchema()))
	})

	sessions := router.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("", h.ListSessions)

	s := sessions.Group("/:id")
	s.GET("", h.GetSession)
	s.DELETE("", h.DeleteSession)
	s.GET("/report", h.GetReport)
	s.GET("/export", h.ExportSnapshot)

	s.POST("/lists/:list/entries", h.AppendListEntry)
	s.PUT("/lists/:list/entries/:index", h.UpdateListEntry)

	s.POST("/services", h.AddService)
	s.PUT("/services/:sid", h.RenameService)
	s.POST("/services/:sid/groups", h.AddTargetGroup)
	s.PATCH("/services/:sid/groups/:gid", h.UpdateTargetGroup)
	s.PATCH("/services/:sid/groups/:gid/persona", h.UpdatePersona)
	s.POST("/services/:sid/groups/:gid/persona/draft", h.DraftPersona)

	s.GET("/comparison", h.GetComparison)
	s.POST("/competitors", h.AddCompetitor)
	s.POST("/features", h.AddFeature)
	s.PUT("/scores", h.UpdateScore)

	s.POST("/planning/:section/items", h.AddChecklistItem)
	s.PATCH("/planning/:section/items/:index", h.ToggleChecklistItem)
	s.DELETE("/planning/:section/items/:index", h.RemoveChecklistItem)

	s.PUT("/sections/:section/status", h.SetSectionStatus)
	s.POST("/sections/:section/attachments", h.UploadAttachment)
	s.GET("/sections/:section/attachments/:aid", h.DownloadAttachment)
	s.DELETE("/sections/:section/attachments/:aid", h.RemoveAttachment)

	return router
}

func (h *Handler) CreateSession(c *gin.Context) {
	id, state := h.store.Create()
	c.JSON(http.StatusCreated, StateResponse{Session: id, State: state})
}

func (h *Handler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

func (h *Handler) GetSession(c *gin.Context) {
	id, state, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StateResponse{Session: id, State: state})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.sendErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetReport(c *gin.Context) {
	_, state, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Build(state))
}

// ExportSnapshot returns the session state as a schema-checked JSON document.
func (h *Handler) ExportSnapshot(c *gin.Context) {
	id, state, ok := h.loadSession(c)
	if !ok {
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		h.sendErrorResponse(c, fmt.Errorf("failed to encode snapshot: %w", err))
		return
	}
	if err := schemas.ValidateSnapshot(data); err != nil {
		h.logger.Error("Snapshot failed schema validation", zap.String("session", id.String()), zap.Error(err))
		h.sendErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "dashboard-"+id.String()+".json"))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) AppendListEntry(c *gin.Context) {
	h.dispatch(c, dashboard.AppendListEntry{List: c.Param("list")})
}

func (h *Handler) UpdateListEntry(c *gin.Context) {
	index, ok := h.intParam(c, "index")
	if !ok {
		return
	}
	var req listEntryRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.UpdateListEntry{List: c.Param("list"), Index: index, Value: req.Value})
}

func (h *Handler) AddService(c *gin.Context) {
	h.dispatch(c, dashboard.AddService{})
}

func (h *Handler) RenameService(c *gin.Context) {
	sid, ok := h.intParam(c, "sid")
	if !ok {
		return
	}
	var req serviceNameRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.RenameService{ServiceID: sid, ServiceName: req.Name})
}

func (h *Handler) AddTargetGroup(c *gin.Context) {
	sid, ok := h.intParam(c, "sid")
	if !ok {
		return
	}
	h.dispatch(c, dashboard.AddTargetGroup{ServiceID: sid})
}

func (h *Handler) UpdateTargetGroup(c *gin.Context) {
	sid, gid, ok := h.groupParams(c)
	if !ok {
		return
	}
	var req fieldUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.UpdateTargetGroup{ServiceID: sid, GroupID: gid, Field: req.Field, Value: req.Value})
}

func (h *Handler) UpdatePersona(c *gin.Context) {
	sid, gid, ok := h.groupParams(c)
	if !ok {
		return
	}
	var req fieldUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.UpdatePersona{ServiceID: sid, GroupID: gid, Field: req.Field, Value: req.Value})
}

// DraftPersona generates a persona for a target group. With ?apply=true the draft
// replaces the group's persona.
func (h *Handler) DraftPersona(c *gin.Context) {
	if h.drafter == nil {
		h.sendErrorResponse(c, ErrDraftingDisabled)
		return
	}
	sid, gid, ok := h.groupParams(c)
	if !ok {
		return
	}
	id, state, ok := h.loadSession(c)
	if !ok {
		return
	}

	if !state.HasTab(dashboard.TabAnalysis) {
		h.sendErrorResponse(c, fmt.Errorf("persona draft: tab %q: %w", dashboard.TabAnalysis, dashboard.ErrTabDisabled))
		return
	}

	group, serviceName, err := state.Analysis.Audience.Group(sid, gid)
	if err != nil {
		h.sendErrorResponse(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), draftTimeout)
	defer cancel()

	h.logger.Info("Drafting persona",
		zap.String("session", id.String()),
		zap.Int("service", sid),
		zap.Int("group", gid))
	persona, err := h.drafter.DraftPersona(ctx, serviceName, group)
	if err != nil {
		h.logger.Error("Persona drafting failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: fmt.Sprintf("Failed to draft persona: %v", err)})
		return
	}

	resp := DraftResponse{Persona: persona}
	if c.Query("apply") == "true" {
		next, err := h.store.Dispatch(id, dashboard.ApplyPersonaDraft{ServiceID: sid, GroupID: gid, Persona: persona})
		if err != nil {
			h.sendErrorResponse(c, err)
			return
		}
		resp.Applied = true
		resp.State = &next
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetComparison(c *gin.Context) {
	_, state, ok := h.loadSession(c)
	if !ok {
		return
	}

	m := state.Analysis.Comparison
	resp := ComparisonResponse{
		SelfLabel:    m.SelfLabel,
		Entrants:     m.Entrants(),
		Features:     m.ActiveFeatures(),
		Competitors:  m.Competitors,
		Table:        m.Table,
		RowTotals:    make(map[string]float64),
		ColumnTotals: make(map[string]float64),
		GrandTotal:   m.GrandTotal(),
	}
	for _, f := range resp.Features {
		resp.RowTotals[f] = m.RowTotal(f)
	}
	for _, e := range resp.Entrants {
		resp.ColumnTotals[e] = m.ColumnTotal(e)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddCompetitor(c *gin.Context) {
	var req competitorRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.AddCompetitor{
		Competitor:  req.Name,
		SocialMedia: req.SocialMedia,
		LinkedIn:    req.LinkedIn,
		Website:     req.Website,
	})
}

func (h *Handler) AddFeature(c *gin.Context) {
	var req featureRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.AddFeature{Feature: req.Feature})
}

func (h *Handler) UpdateScore(c *gin.Context) {
	var req scoreRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.UpdateScore{Feature: req.Feature, Entrant: req.Entrant, Score: req.Score})
}

func (h *Handler) AddChecklistItem(c *gin.Context) {
	var req checklistItemRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.AddChecklistItem{SectionID: c.Param("section"), Item: req.Item})
}

func (h *Handler) ToggleChecklistItem(c *gin.Context) {
	index, ok := h.intParam(c, "index")
	if !ok {
		return
	}
	h.dispatch(c, dashboard.ToggleChecklistItem{SectionID: c.Param("section"), Index: index})
}

func (h *Handler) RemoveChecklistItem(c *gin.Context) {
	index, ok := h.intParam(c, "index")
	if !ok {
		return
	}
	h.dispatch(c, dashboard.RemoveChecklistItem{SectionID: c.Param("section"), Index: index})
}

func (h *Handler) SetSectionStatus(c *gin.Context) {
	var req statusRequest
	if !h.bind(c, &req) {
		return
	}
	h.dispatch(c, dashboard.SetSectionStatus{SectionID: c.Param("section"), Status: req.Status})
}

// UploadAttachment stores the multipart "file" field as an opaque blob. Bodies larger
// than the upload limit are refused before they are buffered or spooled to disk.
func (h *Handler) UploadAttachment(c *gin.Context) {
	bodyLimit := h.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		h.sendErrorResponse(c, fmt.Errorf("%w: request body is %d bytes", ErrUploadTooLarge, c.Request.ContentLength))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendErrorResponse(c, fmt.Errorf("%w: request body exceeds %d bytes", ErrUploadTooLarge, tooLarge.Limit))
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart field \"file\" is required"})
		return
	}
	if file.Size > h.maxUploadBytes {
		h.sendErrorResponse(c, fmt.Errorf("%w: %d > %d bytes", ErrUploadTooLarge, file.Size, h.maxUploadBytes))
		return
	}

	f, err := file.Open()
	if err != nil {
		h.sendErrorResponse(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		h.sendErrorResponse(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		h.sendErrorResponse(c, ErrUploadTooLarge)
		return
	}

	h.dispatch(c, dashboard.AddAttachment{
		SectionID:   c.Param("section"),
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
}

func (h *Handler) DownloadAttachment(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	aid, ok := h.uuidParam(c, "aid")
	if !ok {
		return
	}

	att, err := h.store.Attachment(id, c.Param("section"), aid)
	if err != nil {
		h.sendErrorResponse(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Name))
	c.Data(http.StatusOK, att.ContentType, att.Data)
}

func (h *Handler) RemoveAttachment(c *gin.Context) {
	aid, ok := h.uuidParam(c, "aid")
	if !ok {
		return
	}
	h.dispatch(c, dashboard.RemoveAttachment{SectionID: c.Param("section"), AttachmentID: aid})
}

func (h *Handler) dispatch(c *gin.Context, cmd dashboard.Command) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	state, err := h.store.Dispatch(id, cmd)
	if err != nil {
		h.sendErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, StateResponse{Session: id, State: state})
}

func (h *Handler) loadSession(c *gin.Context) (uuid.UUID, dashboard.State, bool) {
	id, ok := h.sessionID(c)
	if !ok {
		return uuid.Nil, dashboard.State{}, false
	}
	state, err := h.store.Get(id)
	if err != nil {
		h.sendErrorResponse(c, err)
		return uuid.Nil, dashboard.State{}, false
	}
	return id, state, true
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	return h.uuidParam(c, "id")
}

func (h *Handler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid %s: %v", name, err)})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid %s: %q", name, c.Param(name))})
		return 0, false
	}
	return n, true
}

func (h *Handler) groupParams(c *gin.Context) (int, int, bool) {
	sid, ok := h.intParam(c, "sid")
	if !ok {
		return 0, 0, false
	}
	gid, ok := h.intParam(c, "gid")
	if !ok {
		return 0, 0, false
	}
	return sid, gid, true
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debug("Invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return false
	}
	return true
}

func (h *Handler) sendErrorResponse(c *gin.Context, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
