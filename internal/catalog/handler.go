package catalog

import (
	"net/http"

	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the catalog routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/known-devices", s.HandleList)
	r.GET("/v1/known-devices/:fingerprint", s.HandleFind)
}

// HandleList handles GET /v1/known-devices
func (s *Service) HandleList(c *gin.Context) {
	devices, err := s.List(c.Request.Context())
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// HandleFind handles GET /v1/known-devices/:fingerprint
func (s *Service) HandleFind(c *gin.Context) {
	dev, err := s.Find(c.Request.Context(), c.Param("fingerprint"))
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, dev)
}
