package httpserver

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/internal/model"
)

const internalKeyHeader = "X-Internal-Key"

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(gin.Recovery())

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/live", srv.liveCheck)

	internal := srv.gin.Group("/internal")
	internal.Use(srv.requireInternalKey())
	internal.POST("/visit-events", srv.handleVisitEvent)
	internal.POST("/digests/run", srv.handleRunDigests)
}

// requireInternalKey guards the trigger endpoints. Callers are other
// first-party services, not end users.
func (srv *HTTPServer) requireInternalKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(internalKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(srv.internalKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid internal key",
			})
			return
		}
		c.Next()
	}
}

// handleVisitEvent accepts one visit snapshot and runs alert detection
// and delivery for it. Delivery outcomes are not reported back; 202 means
// the event was evaluated.
func (srv *HTTPServer) handleVisitEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var visit model.Visit
	if err := c.ShouldBindJSON(&visit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := srv.alertUC.HandleVisitEvent(ctx, visit); err != nil {
		if errors.Is(err, alert.ErrInvalidVisit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		srv.logger.Errorf(ctx, "internal.httpserver.handleVisitEvent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process visit event"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// handleRunDigests triggers one daily digest run. Invoked by the external
// scheduler once a day.
func (srv *HTTPServer) handleRunDigests(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := srv.alertUC.RunDailyDigests(ctx)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.handleRunDigests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "digest run failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
