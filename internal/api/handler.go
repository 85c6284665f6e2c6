// Package api exposes tracking over HTTP: triggering runs, polling job
// status and managing the unread-chapter backlog.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/storage/postgres"
)

// TrackingService is the slice of the tracker the HTTP layer needs.
type TrackingService interface {
	Trigger(targetID, siteID *int64, notify bool) string
	GetStatus(jobID string) (domain.TrackingJob, bool)
	ListRecent(limit int) []domain.JobSummary
}

// ChapterService covers the read-state operations backed by the chapter store.
type ChapterService interface {
	Unread(ctx context.Context, limit, offset int) ([]domain.Chapter, error)
	SetRead(ctx context.Context, id int64, read bool) error
}

type Handler struct {
	tracker  TrackingService
	chapters ChapterService
	logger   *slog.Logger
}

func NewHandler(tracker TrackingService, chapters ChapterService, logger *slog.Logger) *Handler {
	return &Handler{tracker: tracker, chapters: chapters, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tracking := rg.Group("/tracking")
	tracking.POST("/track", h.track)
	tracking.GET("/jobs", h.listJobs)
	tracking.GET("/jobs/:id", h.getJob)
	tracking.GET("/chapters/unread", h.unreadChapters)
	tracking.PUT("/chapters/:id/read", h.markRead)
	tracking.PUT("/chapters/:id/unread", h.markUnread)
}

type trackRequest struct {
	TargetID *int64 `json:"target_id"`
	SiteID   *int64 `json:"site_id"`
	Notify   bool   `json:"notify"`
}

func (h *Handler) track(c *gin.Context) {
	var req trackRequest
	// An empty body means "track everything".
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	jobID := h.tracker.Trigger(req.TargetID, req.SiteID, req.Notify)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": domain.JobPending,
	})
}

func (h *Handler) getJob(c *gin.Context) {
	job, ok := h.tracker.GetStatus(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, jobResponse(job))
}

func (h *Handler) listJobs(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 20)

	c.JSON(http.StatusOK, gin.H{
		"jobs": h.tracker.ListRecent(limit),
	})
}

func (h *Handler) unreadChapters(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	chapters, err := h.chapters.Unread(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list unread chapters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	items := make([]gin.H, 0, len(chapters))
	for _, ch := range chapters {
		items = append(items, gin.H{
			"id":           ch.ID,
			"target_title": ch.TargetTitle,
			"site_name":    ch.SiteName,
			"number":       ch.Number,
			"title":        ch.Title,
			"url":          ch.URL,
			"detected_at":  ch.DetectedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) markRead(c *gin.Context) {
	h.setRead(c, true)
}

func (h *Handler) markUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *Handler) setRead(c *gin.Context, read bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	if err := h.chapters.SetRead(c.Request.Context(), id, read); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		h.logger.Error("failed to update read state", "chapter_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "read": read})
}

func jobResponse(job domain.TrackingJob) gin.H {
	return gin.H{
		"job_id":             job.ID,
		"status":             job.Status,
		"started_at":         job.StartedAt,
		"completed_at":       job.CompletedAt,
		"total_mappings":     job.TotalMappings,
		"processed_mappings": job.ProcessedMappings,
		"new_chapters_found": job.NewChapters,
		"errors":             job.Errors,
		"found":              job.Found,
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
