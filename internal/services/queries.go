package services

import (
	"context"
	"log"

	"library/internal/models"
)

// ─── Borrowed-Book Queries ────────────────────────────────────────────────────
//
// Each query selects borrow records, then hands their ids to the resolver,
// which follows them through the borrow detail table to books.

// BooksApprovedBy returns the books of every borrow record approved by staffID.
func (s *libraryService) BooksApprovedBy(ctx context.Context, staffID uint) ([]models.Book, error) {
	records, err := s.repos.BorrowRecords.ListByStaff(s.conn(ctx), staffID)
	if err != nil {
		return nil, err
	}
	return s.resolveRecords(ctx, "BooksApprovedBy", records, func(models.BorrowRecord) bool { return true })
}

// BooksBorrowedRecently applies BooksBorrowedWithin with the configured window.
func (s *libraryService) BooksBorrowedRecently(ctx context.Context) ([]models.Book, error) {
	return s.BooksBorrowedWithin(ctx, s.windowDays)
}

// BooksBorrowedWithin returns the books of borrow records dated at most days
// calendar days before today.
func (s *libraryService) BooksBorrowedWithin(ctx context.Context, days int) ([]models.Book, error) {
	if days < 0 {
		return nil, invalid("days must not be negative")
	}
	records, err := s.repos.BorrowRecords.List(s.conn(ctx))
	if err != nil {
		return nil, err
	}
	today := s.today()
	return s.resolveRecords(ctx, "BooksBorrowedWithin", records, func(r models.BorrowRecord) bool {
		return WithinDuration(r.DateBorrowed, today, days)
	})
}

// BooksBorrowedByMember returns the books of every borrow record of memberID.
func (s *libraryService) BooksBorrowedByMember(ctx context.Context, memberID uint) ([]models.Book, error) {
	records, err := s.repos.BorrowRecords.ListByMember(s.conn(ctx), memberID)
	if err != nil {
		return nil, err
	}
	return s.resolveRecords(ctx, "BooksBorrowedByMember", records, func(models.BorrowRecord) bool { return true })
}

// BooksBorrowedBetween returns the books of borrow records dated inside the
// inclusive bracket [from, to]. An inverted bracket yields no books.
func (s *libraryService) BooksBorrowedBetween(ctx context.Context, from, to models.Date) ([]models.Book, error) {
	if from.After(to) {
		log.Printf("[WARN] BooksBorrowedBetween: inverted bracket %s..%s matches nothing", from, to)
	}
	records, err := s.repos.BorrowRecords.List(s.conn(ctx))
	if err != nil {
		return nil, err
	}
	return s.resolveRecords(ctx, "BooksBorrowedBetween", records, func(r models.BorrowRecord) bool {
		return WithinBracket(r.DateBorrowed, from, to)
	})
}

func (s *libraryService) resolveRecords(ctx context.Context, op string, records []models.BorrowRecord, keep func(models.BorrowRecord) bool) ([]models.Book, error) {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		if keep(r) {
			ids = append(ids, r.ID)
		}
	}

	resolutions, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		log.Printf("[ERROR] %s: resolving %d borrow records: %v", op, len(ids), err)
		return nil, err
	}
	books := Books(resolutions)
	if skipped := len(ids) - len(books); skipped > 0 {
		log.Printf("[INFO] %s: %d of %d borrow records have no resolvable book", op, skipped, len(ids))
	}
	return books, nil
}
