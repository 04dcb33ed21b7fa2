package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/jobs"
	"github.com/jafarshop/storemigrate/internal/mapper"
	"github.com/jafarshop/storemigrate/internal/service"
)

// MigrationService previews conversions and runs migration jobs
type MigrationService interface {
	Preview(ctx context.Context, req service.PreviewRequest) (*mapper.Preview, error)
	CreateJob(ctx context.Context, req jobs.CreateRequest) (*domain.Job, error)
	StartJob(ctx context.Context, id string) (*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
}

// JobResponse is a job with a one-line summary
type JobResponse struct {
	*domain.Job
	Summary string `json:"summary"`
}

func jobResponse(job *domain.Job) JobResponse {
	return JobResponse{Job: job, Summary: jobs.Summary(job)}
}

// HandlePreview handles POST /v1/preview
func HandlePreview(svc MigrationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		if err := checkDirection(req.Type, req.Source, req.Destination); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		preview, err := svc.Preview(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to build preview")
			return
		}

		c.JSON(http.StatusOK, preview)
	}
}

// HandleCreateJob handles POST /v1/jobs
func HandleCreateJob(svc MigrationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req jobs.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		if err := checkDirection(req.Type, req.Source, req.Destination); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		job, err := svc.CreateJob(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to create job")
			return
		}

		c.JSON(http.StatusAccepted, jobResponse(job))
	}
}

// HandleGetJob handles GET /v1/jobs/:id
func HandleGetJob(svc MigrationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := jobID(c)
		if !ok {
			return
		}

		job, err := svc.GetJob(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "failed to get job")
			return
		}

		c.JSON(http.StatusOK, jobResponse(job))
	}
}

// HandleStartJob handles POST /v1/jobs/:id/start
func HandleStartJob(svc MigrationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := jobID(c)
		if !ok {
			return
		}

		job, err := svc.StartJob(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, "failed to start job")
			return
		}

		c.JSON(http.StatusAccepted, jobResponse(job))
	}
}

func jobID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return "", false
	}
	return id.String(), true
}
