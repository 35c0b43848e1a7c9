package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/middleware"
	"academyhub/api/internal/models"
)

// Dashboard selects the view for the caller's role. super_admin sees the
// global picture including the review queue; everyone else is scoped to
// their own academy.
func (h HandlerSet) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.respondError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	switch user.Role {
	case models.RoleSuperAdmin:
		h.superAdminDashboard(c)
	case models.RoleAdmin:
		h.adminDashboard(c, user)
	case models.RoleCoach, models.RolePlayer, models.RoleScout, models.RoleParent:
		h.memberDashboard(c, user)
	default:
		h.respondError(c, apperr.Forbidden("forbidden"))
	}
}

func (h HandlerSet) superAdminDashboard(c *gin.Context) {
	counts, err := h.academies.CountByStatus(c.Request.Context())
	if err != nil {
		h.respondError(c, apperr.Internal("count academies", err))
		return
	}

	pending, err := h.approvals.ListPending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	queue := make([]academyResponse, 0, len(pending))
	for _, academy := range pending {
		queue = append(queue, toAcademyResponse(academy))
	}

	c.JSON(http.StatusOK, gin.H{
		"role": string(models.RoleSuperAdmin),
		"academyCounts": gin.H{
			"pending":  counts[models.AcademyStatusPending],
			"approved": counts[models.AcademyStatusApproved],
			"rejected": counts[models.AcademyStatusRejected],
		},
		"pendingQueue": queue,
	})
}

func (h HandlerSet) adminDashboard(c *gin.Context, user models.User) {
	if user.AcademyID == nil {
		h.respondError(c, apperr.Forbidden("forbidden"))
		return
	}

	academy, err := h.academies.GetByID(c.Request.Context(), *user.AcademyID)
	if err != nil {
		h.respondError(c, apperr.Internal("load academy", err))
		return
	}

	memberCounts, err := h.users.CountByAcademyRole(c.Request.Context(), academy.ID)
	if err != nil {
		h.respondError(c, apperr.Internal("count members", err))
		return
	}

	counts := make(map[string]int, len(memberCounts))
	for role, count := range memberCounts {
		counts[string(role)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"role":         string(user.Role),
		"academy":      toAcademyResponse(academy),
		"memberCounts": counts,
	})
}

func (h HandlerSet) memberDashboard(c *gin.Context, user models.User) {
	if user.AcademyID == nil {
		h.respondError(c, apperr.Forbidden("forbidden"))
		return
	}

	academy, err := h.academies.GetByID(c.Request.Context(), *user.AcademyID)
	if err != nil {
		h.respondError(c, apperr.Internal("load academy", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":    string(user.Role),
		"academy": toAcademyResponse(academy),
		"user":    toUserResponse(user),
	})
}

// ListMembers returns the academy's members. Scope is enforced upstream by
// RequireAcademyScope; records are additionally filtered by the academy id
// in the path so the response can never carry a foreign row.
func (h HandlerSet) ListMembers(c *gin.Context) {
	academyID := c.Param("id")

	limit := 50
	offset := 0
	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	var roleFilter models.Role
	if role := c.Query("role"); role != "" {
		roleFilter = models.Role(role)
		if !roleFilter.Valid() {
			h.respondError(c, apperr.Validation("unknown role filter"))
			return
		}
	}

	members, err := h.users.ListByAcademy(c.Request.Context(), academyID, roleFilter, limit, offset)
	if err != nil {
		h.respondError(c, apperr.Internal("list members", err))
		return
	}

	items := make([]userResponse, 0, len(members))
	for _, member := range members {
		items = append(items, toUserResponse(member))
	}

	c.JSON(http.StatusOK, gin.H{"members": items})
}

// UploadLogo stores an academy logo and records its URL on the academy row.
func (h HandlerSet) UploadLogo(c *gin.Context) {
	academyID := c.Param("id")

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		h.respondError(c, apperr.Validation("logo file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, apperr.Validation("logo file is unreadable"))
		return
	}
	defer file.Close()

	logoURL, err := h.logos.PutLogo(c.Request.Context(), academyID, file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.academies.UpdateLogoURL(c.Request.Context(), academyID, logoURL); err != nil {
		h.respondError(c, apperr.Internal("update logo url", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"logoUrl": logoURL})
}
