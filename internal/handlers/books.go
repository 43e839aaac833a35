package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library/internal/models"
)

type bookRequest struct {
	Title     string  `json:"title" binding:"required,max=64"`
	Edition   string  `json:"edition" binding:"max=64"`
	Author    string  `json:"author" binding:"max=64"`
	Publisher string  `json:"publisher" binding:"max=64"`
	Copies    int     `json:"copies" binding:"min=0"`
	Costs     float64 `json:"costs" binding:"min=0"`
	Remarks   string  `json:"remarks" binding:"max=256"`
}

func (r bookRequest) model() models.Book {
	return models.Book{
		Title:     r.Title,
		Edition:   r.Edition,
		Author:    r.Author,
		Publisher: r.Publisher,
		Copies:    r.Copies,
		Costs:     r.Costs,
		Remarks:   r.Remarks,
	}
}

func (h *LibraryHandler) listBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *LibraryHandler) createBook(c *gin.Context) {
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *LibraryHandler) getBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	book, err := h.svc.GetBook(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// updateBook replaces every field except the identifier.
func (h *LibraryHandler) updateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), id, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// deleteBook responds with the books that remain.
func (h *LibraryHandler) deleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBook(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.listBooks(c)
}

func (h *LibraryHandler) listBooksByAuthor(c *gin.Context) {
	books, err := h.svc.ListBooksByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *LibraryHandler) listBooksByPublisher(c *gin.Context) {
	books, err := h.svc.ListBooksByPublisher(c.Request.Context(), c.Param("publisher"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// ─── Borrowed-book queries ────────────────────────────────────────────────────

func (h *LibraryHandler) booksApprovedBy(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	books, err := h.svc.BooksApprovedBy(c.Request.Context(), staffID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// booksBorrowedRecently uses the configured window unless ?days= overrides it.
func (h *LibraryHandler) booksBorrowedRecently(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		books []models.Book
		err   error
	)
	if raw, set := c.GetQuery("days"); set {
		days, convErr := strconv.Atoi(raw)
		if convErr != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days: " + raw})
			return
		}
		books, err = h.svc.BooksBorrowedWithin(ctx, days)
	} else {
		books, err = h.svc.BooksBorrowedRecently(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *LibraryHandler) booksBorrowedByMember(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	books, err := h.svc.BooksBorrowedByMember(c.Request.Context(), memberID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// booksBorrowedBetween takes an inclusive YYYY-MM-DD bracket. An inverted
// bracket is not an error; it matches nothing.
func (h *LibraryHandler) booksBorrowedBetween(c *gin.Context) {
	from, ok := pathDate(c, "id", "from")
	if !ok {
		return
	}
	to, ok := pathDate(c, "to", "to")
	if !ok {
		return
	}

	books, err := h.svc.BooksBorrowedBetween(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}
