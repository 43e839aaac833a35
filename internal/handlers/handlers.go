package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library/internal/models"
	"library/internal/services"
)

// Version is reported by the index endpoint.
const Version = "1.1.0"

type LibraryHandler struct {
	svc services.LibraryService
}

func RegisterRoutes(r *gin.Engine, svc services.LibraryService) {
	h := &LibraryHandler{svc: svc}

	r.Use(RequestID())

	r.GET("/", h.index)

	// Catalogue
	r.GET("/books", h.listBooks)
	r.POST("/books", h.createBook)
	r.GET("/books/:id", h.getBook)
	r.PUT("/books/:id", h.updateBook)
	r.DELETE("/books/:id", h.deleteBook)
	r.GET("/books/byauthor/:author", h.listBooksByAuthor)
	r.GET("/books/bypublisher/:publisher", h.listBooksByPublisher)

	// Borrowed-book queries
	r.GET("/books/borrowed/approvedby/:id", h.booksApprovedBy)
	r.GET("/books/borrowed/last30days", h.booksBorrowedRecently)
	// Member and date bracket share the :id wildcard; the bracket reads it as
	// the lower date.
	r.GET("/books/borrowed/:id", h.booksBorrowedByMember)
	r.GET("/books/borrowed/:id/:to", h.booksBorrowedBetween)

	r.GET("/members", h.listMembers)
	r.POST("/members", h.createMember)
	r.GET("/members/:id", h.getMember)
	r.PUT("/members/:id", h.updateMember)
	r.DELETE("/members/:id", h.deleteMember)

	r.GET("/staff", h.listStaff)
	r.POST("/staff", h.createStaff)
	r.POST("/staff/authenticate", h.authenticateStaff)
	r.GET("/staff/:id", h.getStaff)
	r.PUT("/staff/:id", h.updateStaff)
	r.DELETE("/staff/:id", h.deleteStaff)

	r.GET("/borrowed", h.listBorrowRecords)
	r.POST("/borrowed", h.createBorrowRecord)
	r.GET("/borrowed/:id", h.getBorrowRecord)
	r.PUT("/borrowed/:id", h.updateBorrowRecord)
	r.DELETE("/borrowed/:id", h.deleteBorrowRecord)
	r.GET("/borrowed/:id/details", h.listBorrowRecordDetails)
	r.POST("/borrowed/:id/details", h.addBorrowRecordDetail)
	r.GET("/borrowed/:id/books", h.resolveBorrowRecord)

	r.GET("/returned", h.listReturnRecords)
	r.POST("/returned", h.createReturnRecord)
	r.GET("/returned/:id", h.getReturnRecord)
	r.PUT("/returned/:id", h.updateReturnRecord)
	r.DELETE("/returned/:id", h.deleteReturnRecord)
	r.GET("/returned/:id/details", h.listReturnRecordDetails)
	r.POST("/returned/:id/details", h.addReturnRecordDetail)
}

func (h *LibraryHandler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":       "library",
		"description": "Record API for library staff, members, books, borrow and return records.",
		"version":     Version,
	})
}

// pathID parses the :name path parameter as a record identifier. On failure it
// writes a 400 response and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": " + raw})
		return 0, false
	}
	return uint(id), true
}

// pathDate parses the :param path parameter as a date; label names it in the
// 400 response.
func pathDate(c *gin.Context, param, label string) (models.Date, bool) {
	raw := c.Param(param)
	d, err := models.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date " + label + ": " + raw + " (want YYYY-MM-DD)"})
		return models.Date{}, false
	}
	return d, true
}

// bindJSON binds the request body into req, writing a 400 response on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrStaffNotFound),
		errors.Is(err, services.ErrBorrowRecordNotFound),
		errors.Is(err, services.ErrReturnRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s (request %s): %v", c.Request.Method, c.FullPath(), c.GetString(requestIDKey), err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
