package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/apperr"
)

// ListApprovals serves the super-admin review queue, oldest first.
func (h HandlerSet) ListApprovals(c *gin.Context) {
	academies, err := h.approvals.ListPending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]academyResponse, 0, len(academies))
	for _, academy := range academies {
		items = append(items, toAcademyResponse(academy))
	}

	c.JSON(http.StatusOK, gin.H{"academies": items})
}

type decideApprovalRequest struct {
	Action string `json:"action"`
}

func (h HandlerSet) DecideApproval(c *gin.Context) {
	var req decideApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation("invalid request body"))
		return
	}

	academy, err := h.approvals.Decide(c.Request.Context(), c.Param("id"), req.Action)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"academy": toAcademyResponse(academy)})
}
