package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"library/internal/models"
)

// ─── Borrow Records ───────────────────────────────────────────────────────────

func (s *libraryService) ListBorrowRecords(ctx context.Context) ([]models.BorrowRecord, error) {
	return s.repos.BorrowRecords.List(s.conn(ctx))
}

func (s *libraryService) GetBorrowRecord(ctx context.Context, id uint) (*models.BorrowRecord, error) {
	record, err := s.repos.BorrowRecords.GetByID(s.conn(ctx), id)
	if err != nil {
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	return record, nil
}

// CreateBorrowRecord validates that the member and the approving staff exist
// and stores the record, all within a single transaction.
func (s *libraryService) CreateBorrowRecord(ctx context.Context, record models.BorrowRecord) (*models.BorrowRecord, error) {
	if err := validateBorrowRecord(record); err != nil {
		return nil, err
	}
	record.ID = 0

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkBorrowParties(tx, record); err != nil {
			return err
		}
		return s.repos.BorrowRecords.Create(tx, &record)
	})
	if err != nil {
		log.Printf("[ERROR] CreateBorrowRecord: member %d / staff %d: %v", record.MemberID, record.StaffID, err)
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	log.Printf("[INFO] CreateBorrowRecord: created borrow record %d for member %d, approved by staff %d, due %s",
		record.ID, record.MemberID, record.StaffID, record.DueReturnDate)
	return &record, nil
}

func (s *libraryService) UpdateBorrowRecord(ctx context.Context, id uint, record models.BorrowRecord) (*models.BorrowRecord, error) {
	if err := validateBorrowRecord(record); err != nil {
		return nil, err
	}
	record.ID = id

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkBorrowParties(tx, record); err != nil {
			return err
		}
		return s.repos.BorrowRecords.Update(tx, &record)
	})
	if err != nil {
		log.Printf("[ERROR] UpdateBorrowRecord: failed to update borrow record %d: %v", id, err)
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	log.Printf("[INFO] UpdateBorrowRecord: updated borrow record %d", id)
	return &record, nil
}

func (s *libraryService) DeleteBorrowRecord(ctx context.Context, id uint) error {
	if err := s.repos.BorrowRecords.Delete(s.conn(ctx), id); err != nil {
		log.Printf("[ERROR] DeleteBorrowRecord: failed to delete borrow record %d: %v", id, err)
		return translate(err, ErrBorrowRecordNotFound)
	}
	log.Printf("[INFO] DeleteBorrowRecord: deleted borrow record %d", id)
	return nil
}

func (s *libraryService) ListBorrowRecordDetails(ctx context.Context, borrowRecordID uint) ([]models.BorrowRecordDetail, error) {
	db := s.conn(ctx)
	if _, err := s.repos.BorrowRecords.GetByID(db, borrowRecordID); err != nil {
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	return s.repos.BorrowDetails.ListByBorrowRecord(db, borrowRecordID)
}

// AddBorrowRecordDetail links one more book to a borrow record.
func (s *libraryService) AddBorrowRecordDetail(ctx context.Context, borrowRecordID uint, detail models.BorrowRecordDetail) (*models.BorrowRecordDetail, error) {
	if detail.NumberOfCopies < 1 {
		return nil, invalid("number_of_copies must be at least 1")
	}
	detail.ID = 0
	detail.BorrowRecordID = borrowRecordID

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.BorrowRecords.GetByID(tx, borrowRecordID); err != nil {
			return translate(err, ErrBorrowRecordNotFound)
		}
		if _, err := s.repos.Books.GetByID(tx, detail.BookID); err != nil {
			return translate(err, ErrBookNotFound)
		}
		return s.repos.BorrowDetails.Create(tx, &detail)
	})
	if err != nil {
		log.Printf("[ERROR] AddBorrowRecordDetail: borrow record %d / book %d: %v", borrowRecordID, detail.BookID, err)
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	log.Printf("[INFO] AddBorrowRecordDetail: borrow record %d now lists book %d (%d copies)", borrowRecordID, detail.BookID, detail.NumberOfCopies)
	return &detail, nil
}

// ResolveBorrowRecord follows one existing borrow record to its book and
// reports how far it got. Unlike the list queries it distinguishes a record
// that does not exist (ErrBorrowRecordNotFound) from one without books.
func (s *libraryService) ResolveBorrowRecord(ctx context.Context, borrowRecordID uint) (*Resolution, error) {
	if _, err := s.repos.BorrowRecords.GetByID(s.conn(ctx), borrowRecordID); err != nil {
		return nil, translate(err, ErrBorrowRecordNotFound)
	}
	resolutions, err := s.resolver.Resolve(ctx, []uint{borrowRecordID})
	if err != nil {
		return nil, err
	}
	return &resolutions[0], nil
}

func (s *libraryService) checkBorrowParties(tx *gorm.DB, record models.BorrowRecord) error {
	if _, err := s.repos.Members.GetByID(tx, record.MemberID); err != nil {
		return translate(err, ErrMemberNotFound)
	}
	if _, err := s.repos.Staff.GetByID(tx, record.StaffID); err != nil {
		return translate(err, ErrStaffNotFound)
	}
	return nil
}

func validateBorrowRecord(record models.BorrowRecord) error {
	if record.DateBorrowed.IsZero() {
		return invalid("date_borrowed is required")
	}
	if !record.DueReturnDate.IsZero() && record.DueReturnDate.Before(record.DateBorrowed) {
		return invalid("due_return_date must not be before date_borrowed")
	}
	return nil
}

// ─── Return Records ───────────────────────────────────────────────────────────

func (s *libraryService) ListReturnRecords(ctx context.Context) ([]models.ReturnRecord, error) {
	return s.repos.ReturnRecords.List(s.conn(ctx))
}

func (s *libraryService) GetReturnRecord(ctx context.Context, id uint) (*models.ReturnRecord, error) {
	record, err := s.repos.ReturnRecords.GetByID(s.conn(ctx), id)
	if err != nil {
		return nil, translate(err, ErrReturnRecordNotFound)
	}
	return record, nil
}

func (s *libraryService) CreateReturnRecord(ctx context.Context, record models.ReturnRecord) (*models.ReturnRecord, error) {
	if record.DateReturned.IsZero() {
		return nil, invalid("date_returned is required")
	}
	record.ID = 0

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.BorrowRecords.GetByID(tx, record.BorrowRecordID); err != nil {
			return translate(err, ErrBorrowRecordNotFound)
		}
		return s.repos.ReturnRecords.Create(tx, &record)
	})
	if err != nil {
		log.Printf("[ERROR] CreateReturnRecord: borrow record %d: %v", record.BorrowRecordID, err)
		return nil, translate(err, ErrReturnRecordNotFound)
	}
	log.Printf("[INFO] CreateReturnRecord: created return record %d for borrow record %d", record.ID, record.BorrowRecordID)
	return &record, nil
}

func (s *libraryService) UpdateReturnRecord(ctx context.Context, id uint, record models.ReturnRecord) (*models.ReturnRecord, error) {
	if record.DateReturned.IsZero() {
		return nil, invalid("date_returned is required")
	}
	record.ID = id

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.BorrowRecords.GetByID(tx, record.BorrowRecordID); err != nil {
			return translate(err, ErrBorrowRecordNotFound)
		}
		return s.repos.ReturnRecords.Update(tx, &record)
	})
	if err != nil {
		log.Printf("[ERROR] UpdateReturnRecord: failed to update return record %d: %v", id, err)
		return nil, translate(err, ErrReturnRecordNotFound)
	}
	log.Printf("[INFO] UpdateReturnRecord: updated return record %d", id)
	return &record, nil
}

func (s *libraryService) DeleteReturnRecord(ctx context.Context, id uint) error {
	if err := s.repos.ReturnRecords.Delete(s.conn(ctx), id); err != nil {
		log.Printf("[ERROR] DeleteReturnRecord: failed to delete return record %d: %v", id, err)
		return translate(err, ErrReturnRecordNotFound)
	}
	log.Printf("[INFO] DeleteReturnRecord: deleted return record %d", id)
	return nil
}

func (s *libraryService) ListReturnRecordDetails(ctx context.Context, returnRecordID uint) ([]models.ReturnRecordDetail, error) {
	db := s.conn(ctx)
	if _, err := s.repos.ReturnRecords.GetByID(db, returnRecordID); err != nil {
		return nil, translate(err, ErrReturnRecordNotFound)
	}
	return s.repos.ReturnDetails.ListByReturnRecord(db, returnRecordID)
}

func (s *libraryService) AddReturnRecordDetail(ctx context.Context, returnRecordID uint, detail models.ReturnRecordDetail) (*models.ReturnRecordDetail, error) {
	if detail.NumberOfCopies < 1 {
		return nil, invalid("number_of_copies must be at least 1")
	}
	detail.ID = 0
	detail.ReturnRecordID = returnRecordID

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.ReturnRecords.GetByID(tx, returnRecordID); err != nil {
			return translate(err, ErrReturnRecordNotFound)
		}
		if _, err := s.repos.Books.GetByID(tx, detail.BookID); err != nil {
			return translate(err, ErrBookNotFound)
		}
		return s.repos.ReturnDetails.Create(tx, &detail)
	})
	if err != nil {
		log.Printf("[ERROR] AddReturnRecordDetail: return record %d / book %d: %v", returnRecordID, detail.BookID, err)
		return nil, translate(err, ErrReturnRecordNotFound)
	}
	log.Printf("[INFO] AddReturnRecordDetail: return record %d now lists book %d (%d copies)", returnRecordID, detail.BookID, detail.NumberOfCopies)
	return &detail, nil
}
