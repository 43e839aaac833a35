package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library/internal/models"
	"library/internal/repositories"
)

// Outcome says how far a borrow record could be followed to a book.
type Outcome string

const (
	OutcomeResolved      Outcome = "resolved"
	OutcomeMissingDetail Outcome = "missing_detail"
	OutcomeMissingBook   Outcome = "missing_book"
)

// Resolution is the result of following one borrow record to its book.
type Resolution struct {
	BorrowRecordID uint         `json:"borrow_record_id"`
	Outcome        Outcome      `json:"outcome"`
	BookID         uint         `json:"book_id,omitempty"`
	Book           *models.Book `json:"book,omitempty"`
}

// BorrowLookup is the store access the resolver needs. Both methods return an
// error wrapping gorm.ErrRecordNotFound when the row does not exist.
type BorrowLookup interface {
	FirstDetail(ctx context.Context, borrowRecordID uint) (*models.BorrowRecordDetail, error)
	Book(ctx context.Context, bookID uint) (*models.Book, error)
}

// BookResolver walks borrow records to books through the borrow detail link
// table. Only the first detail row of each borrow record is followed.
type BookResolver struct {
	lookup BorrowLookup
}

func NewBookResolver(lookup BorrowLookup) *BookResolver {
	return &BookResolver{lookup: lookup}
}

// Resolve returns one Resolution per borrow record id, in input order.
// Missing detail or book rows are reported in the Outcome; any other store
// error aborts the walk and is returned unchanged.
func (r *BookResolver) Resolve(ctx context.Context, borrowRecordIDs []uint) ([]Resolution, error) {
	out := make([]Resolution, len(borrowRecordIDs))

	// Pass 1: borrow record -> first detail -> book id.
	for i, id := range borrowRecordIDs {
		out[i] = Resolution{BorrowRecordID: id, Outcome: OutcomeMissingDetail}
		detail, err := r.lookup.FirstDetail(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out[i].BookID = detail.BookID
		out[i].Outcome = OutcomeMissingBook
	}

	// Pass 2: book id -> book.
	for i := range out {
		if out[i].Outcome != OutcomeMissingBook {
			continue
		}
		book, err := r.lookup.Book(ctx, out[i].BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out[i].Book = book
		out[i].Outcome = OutcomeResolved
	}
	return out, nil
}

// ResolveBooks returns the books reachable from the borrow records, in input
// order and without deduplication. Records whose detail or book is missing
// are left out.
func (r *BookResolver) ResolveBooks(ctx context.Context, borrowRecordIDs []uint) ([]models.Book, error) {
	resolutions, err := r.Resolve(ctx, borrowRecordIDs)
	if err != nil {
		return nil, err
	}
	return Books(resolutions), nil
}

// Books keeps the resolved books of resolutions, in order.
func Books(resolutions []Resolution) []models.Book {
	books := make([]models.Book, 0, len(resolutions))
	for _, res := range resolutions {
		if res.Outcome == OutcomeResolved && res.Book != nil {
			books = append(books, *res.Book)
		}
	}
	return books
}

// repositoryLookup adapts the gorm repositories to BorrowLookup, scoping each
// query to the request context.
type repositoryLookup struct {
	db      *gorm.DB
	details repositories.BorrowRecordDetailRepository
	books   repositories.BookRepository
}

func (l repositoryLookup) FirstDetail(ctx context.Context, borrowRecordID uint) (*models.BorrowRecordDetail, error) {
	return l.details.FirstByBorrowRecord(l.db.WithContext(ctx), borrowRecordID)
}

func (l repositoryLookup) Book(ctx context.Context, bookID uint) (*models.Book, error) {
	return l.books.GetByID(l.db.WithContext(ctx), bookID)
}
