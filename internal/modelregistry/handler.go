package modelregistry

import (
	"errors"
	"io"
	"net/http"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the model registry routes on the given router.
func (r *Registry) RegisterRoutes(router gin.IRouter) {
	router.GET("/v1/models", r.HandleList)
	router.POST("/v1/models/search", r.HandleSearch)
	router.GET("/v1/models/:model/:fingerprint", r.HandleFind)
	router.PUT("/v1/models/:model/:fingerprint/sensors", r.HandleUpdateSensors)
}

// HandleList handles GET /v1/models
func (r *Registry) HandleList(c *gin.Context) {
	recs, err := r.List(c.Request.Context())
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, toResources(recs))
}

// HandleSearch handles POST /v1/models/search. An empty body matches every record.
func (r *Registry) HandleSearch(c *gin.Context) {
	var req v1.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.WriteBindError(c, "Invalid JSON payload", err)
		return
	}

	recs, err := r.Search(c.Request.Context(), storage.ModelFilter{
		Model:    req.Model,
		Source:   req.Source,
		Category: req.Category,
	})
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, toResources(recs))
}

// HandleFind handles GET /v1/models/:model/:fingerprint
func (r *Registry) HandleFind(c *gin.Context) {
	rec, err := r.Find(c.Request.Context(), c.Param("model"), c.Param("fingerprint"))
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResource(rec))
}

// HandleUpdateSensors handles PUT /v1/models/:model/:fingerprint/sensors
func (r *Registry) HandleUpdateSensors(c *gin.Context) {
	var req v1.SensorsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteBindError(c, "Invalid sensors update", err)
		return
	}

	rec, err := r.UpdateSensors(c.Request.Context(), c.Param("model"), c.Param("fingerprint"), req)
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResource(rec))
}

func toResources(recs []*storage.ModelRecord) []v1.ModelResource {
	out := make([]v1.ModelResource, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ToResource(rec))
	}
	return out
}
