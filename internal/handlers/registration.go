package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/service"
)

type registerAcademyRequest struct {
	Name               string `json:"name"`
	Location           string `json:"location"`
	Description        string `json:"description"`
	ContactEmail       string `json:"contactEmail"`
	ContactPhone       string `json:"contactPhone"`
	ContactName        string `json:"contactName"`
	ContactPersonPhone string `json:"contactPersonPhone"`
	AdminPassword      string `json:"adminPassword"`
}

// RegisterAcademy creates a pending academy plus its admin account. Field
// validation lives in the service so the response carries one taxonomy.
func (h HandlerSet) RegisterAcademy(c *gin.Context) {
	var req registerAcademyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation("invalid request body"))
		return
	}

	academy, admin, err := h.registration.Register(c.Request.Context(), service.RegisterAcademyInput{
		Name:               req.Name,
		Location:           req.Location,
		Description:        req.Description,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		ContactName:        req.ContactName,
		ContactPersonPhone: req.ContactPersonPhone,
		AdminPassword:      req.AdminPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"academy": toAcademyResponse(academy),
		"admin":   toUserResponse(admin),
	})
}
