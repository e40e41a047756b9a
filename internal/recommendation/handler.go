package recommendation

import (
	"errors"
	"io"
	"net/http"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the candidate and promotion routes on the given router.
func (p *Promoter) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/recommendations", p.HandleListCandidates)
	r.GET("/v1/recommendations/:fingerprint", p.HandleFindRecommendation)
	r.POST("/v1/known-devices/promote/:fingerprint", p.HandlePromote)
}

// HandleListCandidates handles GET /v1/recommendations
func (p *Promoter) HandleListCandidates(c *gin.Context) {
	recs, err := p.ListCandidates(c.Request.Context())
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// HandleFindRecommendation handles GET /v1/recommendations/:fingerprint
func (p *Promoter) HandleFindRecommendation(c *gin.Context) {
	rec, err := p.Find(c.Request.Context(), c.Param("fingerprint"))
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandlePromote handles POST /v1/known-devices/promote/:fingerprint
func (p *Promoter) HandlePromote(c *gin.Context) {
	var req v1.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.WriteBindError(c, "Invalid JSON payload", err)
		return
	}

	device, err := p.Promote(c.Request.Context(), c.Param("fingerprint"), req)
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}
