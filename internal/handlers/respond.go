package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/models"
)

// respondError maps a service error onto the wire. Clients only ever see the
// taxonomy message; internal detail stays in the server log.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		h.log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

type userResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Role          string `json:"role"`
	Phone         string `json:"phone,omitempty"`
	AcademyID     string `json:"academyId,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// toUserResponse builds the public projection. The password hash never
// leaves the service boundary.
func toUserResponse(user models.User) userResponse {
	resp := userResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		Phone:         user.Phone,
		EmailVerified: user.EmailVerified,
	}
	if user.AcademyID != nil {
		resp.AcademyID = *user.AcademyID
	}
	return resp
}

type academyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	Description        string    `json:"description,omitempty"`
	ContactEmail       string    `json:"contactEmail"`
	ContactPhone       string    `json:"contactPhone,omitempty"`
	ContactName        string    `json:"contactName"`
	ContactPersonPhone string    `json:"contactPersonPhone,omitempty"`
	LogoURL            string    `json:"logoUrl,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toAcademyResponse(academy models.Academy) academyResponse {
	resp := academyResponse{
		ID:                 academy.ID,
		Name:               academy.Name,
		Location:           academy.Location,
		Description:        academy.Description,
		ContactEmail:       academy.ContactEmail,
		ContactPhone:       academy.ContactPhone,
		ContactName:        academy.ContactName,
		ContactPersonPhone: academy.ContactPersonPhone,
		Status:             string(academy.Status),
		CreatedAt:          academy.CreatedAt,
	}
	if academy.LogoURL != nil {
		resp.LogoURL = *academy.LogoURL
	}
	return resp
}
