package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
)

type selectionResponse struct {
	console.Selection
	Warnings []string `json:"warnings"`
}

type updateSelectionRequest struct {
	Regions     []string `json:"regions"`
	InstanceIDs []string `json:"instance_ids"`
}

type instancesResponse struct {
	Instances []console.Option `json:"instances"`
	Warnings  []string         `json:"warnings"`
}

func (r *Router) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default": region.DefaultCode,
		"regions": r.console.Catalog(),
	})
}

func (r *Router) GetSelection(c *gin.Context) {
	collector, sink := r.requestSink()
	sel := r.console.Defaults(c.Request.Context(), sink)
	c.JSON(http.StatusOK, selectionResponse{Selection: sel, Warnings: collector.Messages()})
}

func (r *Router) UpdateSelection(c *gin.Context) {
	var req updateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	collector, sink := r.requestSink()
	sel, err := r.console.Update(c.Request.Context(), req.Regions, req.InstanceIDs, sink)
	if err != nil {
		if errors.Is(err, region.ErrUnknownRegion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_region", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, selectionResponse{Selection: sel, Warnings: collector.Messages()})
}

func (r *Router) ListInstances(c *gin.Context) {
	regions := c.QueryArray("region")
	if len(regions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region_required"})
		return
	}

	collector, sink := r.requestSink()
	options, err := r.console.Instances(c.Request.Context(), regions, sink)
	if err != nil {
		if errors.Is(err, region.ErrUnknownRegion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_region", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, instancesResponse{Instances: options, Warnings: collector.Messages()})
}
