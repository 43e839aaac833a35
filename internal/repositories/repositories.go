package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library/internal/models"
)

// Every method takes an optional *gorm.DB so callers can pass a transaction or
// a request-scoped handle (db.WithContext); nil falls back to the repository's own.

type StaffRepository interface {
	List(db *gorm.DB) ([]models.LibraryStaff, error)
	GetByID(db *gorm.DB, id uint) (*models.LibraryStaff, error)
	GetByEmail(db *gorm.DB, email string) (*models.LibraryStaff, error)
	Create(db *gorm.DB, staff *models.LibraryStaff) error
	Update(db *gorm.DB, staff *models.LibraryStaff) error
	Delete(db *gorm.DB, id uint) error
}

type BookRepository interface {
	List(db *gorm.DB) ([]models.Book, error)
	ListByAuthor(db *gorm.DB, author string) ([]models.Book, error)
	ListByPublisher(db *gorm.DB, publisher string) ([]models.Book, error)
	GetByID(db *gorm.DB, id uint) (*models.Book, error)
	Create(db *gorm.DB, book *models.Book) error
	Update(db *gorm.DB, book *models.Book) error
	Delete(db *gorm.DB, id uint) error
}

type MemberRepository interface {
	List(db *gorm.DB) ([]models.Member, error)
	GetByID(db *gorm.DB, id uint) (*models.Member, error)
	Create(db *gorm.DB, member *models.Member) error
	Update(db *gorm.DB, member *models.Member) error
	Delete(db *gorm.DB, id uint) error
}

type BorrowRecordRepository interface {
	List(db *gorm.DB) ([]models.BorrowRecord, error)
	ListByStaff(db *gorm.DB, staffID uint) ([]models.BorrowRecord, error)
	ListByMember(db *gorm.DB, memberID uint) ([]models.BorrowRecord, error)
	GetByID(db *gorm.DB, id uint) (*models.BorrowRecord, error)
	Create(db *gorm.DB, record *models.BorrowRecord) error
	Update(db *gorm.DB, record *models.BorrowRecord) error
	Delete(db *gorm.DB, id uint) error
}

type BorrowRecordDetailRepository interface {
	ListByBorrowRecord(db *gorm.DB, borrowRecordID uint) ([]models.BorrowRecordDetail, error)
	FirstByBorrowRecord(db *gorm.DB, borrowRecordID uint) (*models.BorrowRecordDetail, error)
	Create(db *gorm.DB, detail *models.BorrowRecordDetail) error
}

type ReturnRecordRepository interface {
	List(db *gorm.DB) ([]models.ReturnRecord, error)
	GetByID(db *gorm.DB, id uint) (*models.ReturnRecord, error)
	Create(db *gorm.DB, record *models.ReturnRecord) error
	Update(db *gorm.DB, record *models.ReturnRecord) error
	Delete(db *gorm.DB, id uint) error
}

type ReturnRecordDetailRepository interface {
	ListByReturnRecord(db *gorm.DB, returnRecordID uint) ([]models.ReturnRecordDetail, error)
	Create(db *gorm.DB, detail *models.ReturnRecordDetail) error
}

// table is the shared select/insert/update/delete implementation every
// concrete repository embeds.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return t.db
	}
	return db
}

// List returns the rows matching conds in primary-key order.
func (t table[T]) List(db *gorm.DB, conds ...interface{}) ([]T, error) {
	rows := make([]T, 0)
	if err := t.conn(db).Order("id").Find(&rows, conds...).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns gorm.ErrRecordNotFound when no row has the id.
func (t table[T]) GetByID(db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := t.conn(db).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (t table[T]) Create(db *gorm.DB, row *T) error {
	return t.conn(db).Omit(clause.Associations).Create(row).Error
}

// Update writes every column of row, keyed by its primary key. It returns
// gorm.ErrRecordNotFound when no row was affected.
func (t table[T]) Update(db *gorm.DB, row *T) error {
	res := t.conn(db).Model(row).Omit(clause.Associations).Select("*").Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row with the id, or returns gorm.ErrRecordNotFound.
func (t table[T]) Delete(db *gorm.DB, id uint) error {
	var row T
	res := t.conn(db).Delete(&row, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// concrete implementations

type staffRepository struct {
	table[models.LibraryStaff]
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{table[models.LibraryStaff]{db: db}}
}

func (r *staffRepository) List(db *gorm.DB) ([]models.LibraryStaff, error) {
	return r.table.List(db)
}

func (r *staffRepository) GetByEmail(db *gorm.DB, email string) (*models.LibraryStaff, error) {
	var staff models.LibraryStaff
	if err := r.conn(db).First(&staff, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

type bookRepository struct {
	table[models.Book]
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{table[models.Book]{db: db}}
}

func (r *bookRepository) List(db *gorm.DB) ([]models.Book, error) {
	return r.table.List(db)
}

func (r *bookRepository) ListByAuthor(db *gorm.DB, author string) ([]models.Book, error) {
	return r.table.List(db, "author = ?", author)
}

func (r *bookRepository) ListByPublisher(db *gorm.DB, publisher string) ([]models.Book, error) {
	return r.table.List(db, "publisher = ?", publisher)
}

type memberRepository struct {
	table[models.Member]
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{table[models.Member]{db: db}}
}

func (r *memberRepository) List(db *gorm.DB) ([]models.Member, error) {
	return r.table.List(db)
}

type borrowRecordRepository struct {
	table[models.BorrowRecord]
}

func NewBorrowRecordRepository(db *gorm.DB) BorrowRecordRepository {
	return &borrowRecordRepository{table[models.BorrowRecord]{db: db}}
}

func (r *borrowRecordRepository) List(db *gorm.DB) ([]models.BorrowRecord, error) {
	return r.table.List(db)
}

func (r *borrowRecordRepository) ListByStaff(db *gorm.DB, staffID uint) ([]models.BorrowRecord, error) {
	return r.table.List(db, "staff_id = ?", staffID)
}

func (r *borrowRecordRepository) ListByMember(db *gorm.DB, memberID uint) ([]models.BorrowRecord, error) {
	return r.table.List(db, "member_id = ?", memberID)
}

type borrowRecordDetailRepository struct {
	table[models.BorrowRecordDetail]
}

func NewBorrowRecordDetailRepository(db *gorm.DB) BorrowRecordDetailRepository {
	return &borrowRecordDetailRepository{table[models.BorrowRecordDetail]{db: db}}
}

func (r *borrowRecordDetailRepository) ListByBorrowRecord(db *gorm.DB, borrowRecordID uint) ([]models.BorrowRecordDetail, error) {
	return r.table.List(db, "borrow_record_id = ?", borrowRecordID)
}

// FirstByBorrowRecord returns the detail row with the lowest id for the borrow
// record, or gorm.ErrRecordNotFound.
func (r *borrowRecordDetailRepository) FirstByBorrowRecord(db *gorm.DB, borrowRecordID uint) (*models.BorrowRecordDetail, error) {
	var detail models.BorrowRecordDetail
	err := r.conn(db).
		Where("borrow_record_id = ?", borrowRecordID).
		Order("id").
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

type returnRecordRepository struct {
	table[models.ReturnRecord]
}

func NewReturnRecordRepository(db *gorm.DB) ReturnRecordRepository {
	return &returnRecordRepository{table[models.ReturnRecord]{db: db}}
}

func (r *returnRecordRepository) List(db *gorm.DB) ([]models.ReturnRecord, error) {
	return r.table.List(db)
}

type returnRecordDetailRepository struct {
	table[models.ReturnRecordDetail]
}

func NewReturnRecordDetailRepository(db *gorm.DB) ReturnRecordDetailRepository {
	return &returnRecordDetailRepository{table[models.ReturnRecordDetail]{db: db}}
}

func (r *returnRecordDetailRepository) ListByReturnRecord(db *gorm.DB, returnRecordID uint) ([]models.ReturnRecordDetail, error) {
	return r.table.List(db, "return_record_id = ?", returnRecordID)
}
