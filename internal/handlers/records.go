package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library/internal/models"
)

// ─── Borrow records ───────────────────────────────────────────────────────────

type borrowRecordRequest struct {
	MemberID      uint        `json:"member_id" binding:"required"`
	StaffID       uint        `json:"staff_id" binding:"required"`
	DateBorrowed  models.Date `json:"date_borrowed"`
	DueReturnDate models.Date `json:"due_return_date"`
}

func (r borrowRecordRequest) model() models.BorrowRecord {
	return models.BorrowRecord{
		MemberID:      r.MemberID,
		StaffID:       r.StaffID,
		DateBorrowed:  r.DateBorrowed,
		DueReturnDate: r.DueReturnDate,
	}
}

type detailRequest struct {
	BookID         uint `json:"book_id" binding:"required"`
	NumberOfCopies int  `json:"number_of_copies" binding:"required,min=1"`
}

func (h *LibraryHandler) listBorrowRecords(c *gin.Context) {
	records, err := h.svc.ListBorrowRecords(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *LibraryHandler) createBorrowRecord(c *gin.Context) {
	var req borrowRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.svc.CreateBorrowRecord(c.Request.Context(), req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *LibraryHandler) getBorrowRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.GetBorrowRecord(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *LibraryHandler) updateBorrowRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req borrowRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.svc.UpdateBorrowRecord(c.Request.Context(), id, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *LibraryHandler) deleteBorrowRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBorrowRecord(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.listBorrowRecords(c)
}

func (h *LibraryHandler) listBorrowRecordDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.svc.ListBorrowRecordDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *LibraryHandler) addBorrowRecordDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req detailRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.svc.AddBorrowRecordDetail(c.Request.Context(), id, models.BorrowRecordDetail{
		BookID:         req.BookID,
		NumberOfCopies: req.NumberOfCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// resolveBorrowRecord reports whether the record leads to a book, and which.
func (h *LibraryHandler) resolveBorrowRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.svc.ResolveBorrowRecord(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ─── Return records ───────────────────────────────────────────────────────────

type returnRecordRequest struct {
	BorrowRecordID uint        `json:"borrow_record_id" binding:"required"`
	DateReturned   models.Date `json:"date_returned"`
}

func (r returnRecordRequest) model() models.ReturnRecord {
	return models.ReturnRecord{
		BorrowRecordID: r.BorrowRecordID,
		DateReturned:   r.DateReturned,
	}
}

func (h *LibraryHandler) listReturnRecords(c *gin.Context) {
	records, err := h.svc.ListReturnRecords(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *LibraryHandler) createReturnRecord(c *gin.Context) {
	var req returnRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.svc.CreateReturnRecord(c.Request.Context(), req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *LibraryHandler) getReturnRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.GetReturnRecord(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *LibraryHandler) updateReturnRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req returnRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.svc.UpdateReturnRecord(c.Request.Context(), id, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *LibraryHandler) deleteReturnRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteReturnRecord(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.listReturnRecords(c)
}

func (h *LibraryHandler) listReturnRecordDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.svc.ListReturnRecordDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *LibraryHandler) addReturnRecordDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req detailRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.svc.AddReturnRecordDetail(c.Request.Context(), id, models.ReturnRecordDetail{
		BookID:         req.BookID,
		NumberOfCopies: req.NumberOfCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
