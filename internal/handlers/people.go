package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library/internal/models"
	"library/internal/services"
)

// ─── Members ──────────────────────────────────────────────────────────────────

type memberRequest struct {
	FirstName   string      `json:"first_name" binding:"required,max=64"`
	LastName    string      `json:"last_name" binding:"max=64"`
	DateOfBirth models.Date `json:"date_of_birth"`
	Gender      string      `json:"gender" binding:"max=16"`
	Mobile      string      `json:"mobile" binding:"max=32"`
	Email       string      `json:"email" binding:"omitempty,email,max=128"`
}

func (r memberRequest) model() models.Member {
	return models.Member{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Gender:      r.Gender,
		Mobile:      r.Mobile,
		Email:       r.Email,
	}
}

func (h *LibraryHandler) listMembers(c *gin.Context) {
	members, err := h.svc.ListMembers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *LibraryHandler) createMember(c *gin.Context) {
	var req memberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.svc.CreateMember(c.Request.Context(), req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *LibraryHandler) getMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	member, err := h.svc.GetMember(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *LibraryHandler) updateMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req memberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.svc.UpdateMember(c.Request.Context(), id, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *LibraryHandler) deleteMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteMember(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.listMembers(c)
}

// ─── Staff ────────────────────────────────────────────────────────────────────

type staffRequest struct {
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	Mobile    string `json:"mobile" binding:"max=32"`
	Email     string `json:"email" binding:"required,email,max=128"`
	Password  string `json:"password"`
	Category  string `json:"category" binding:"max=128"`
}

func (r staffRequest) input() services.StaffInput {
	return services.StaffInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Mobile:    r.Mobile,
		Email:     r.Email,
		Password:  r.Password,
		Category:  r.Category,
	}
}

type authenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LibraryHandler) listStaff(c *gin.Context) {
	staff, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *LibraryHandler) createStaff(c *gin.Context) {
	var req staffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.svc.CreateStaff(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *LibraryHandler) getStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	staff, err := h.svc.GetStaff(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// updateStaff keeps the current password when the body omits one.
func (h *LibraryHandler) updateStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req staffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.svc.UpdateStaff(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *LibraryHandler) deleteStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteStaff(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.listStaff(c)
}

func (h *LibraryHandler) authenticateStaff(c *gin.Context) {
	var req authenticateRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.svc.AuthenticateStaff(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}
