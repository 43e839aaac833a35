package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"library/internal/models"
	"library/internal/repositories"
)

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrBookNotFound is returned when the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound is returned when the referenced member does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrStaffNotFound is returned when the referenced staff account does not exist.
	ErrStaffNotFound = errors.New("staff not found")

	// ErrBorrowRecordNotFound is returned when the referenced borrow record does not exist.
	ErrBorrowRecordNotFound = errors.New("borrow record not found")

	// ErrReturnRecordNotFound is returned when the referenced return record does not exist.
	ErrReturnRecordNotFound = errors.New("return record not found")

	// ErrInvalidCredentials is returned when a staff email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput is returned for values the store would reject or that make
	// no sense for the record (missing dates, negative copy counts).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict wraps unique-key and foreign-key violations reported by the store.
	ErrConflict = errors.New("conflicting record")
)

// ─── Service Interface ────────────────────────────────────────────────────────

// LibraryService defines the record operations of the library API. Every call
// runs its store queries sequentially on a handle scoped to ctx.
type LibraryService interface {
	ListStaff(ctx context.Context) ([]models.LibraryStaff, error)
	GetStaff(ctx context.Context, id uint) (*models.LibraryStaff, error)
	CreateStaff(ctx context.Context, in StaffInput) (*models.LibraryStaff, error)
	UpdateStaff(ctx context.Context, id uint, in StaffInput) (*models.LibraryStaff, error)
	DeleteStaff(ctx context.Context, id uint) error
	AuthenticateStaff(ctx context.Context, email, password string) (*models.LibraryStaff, error)

	ListBooks(ctx context.Context) ([]models.Book, error)
	ListBooksByAuthor(ctx context.Context, author string) ([]models.Book, error)
	ListBooksByPublisher(ctx context.Context, publisher string) ([]models.Book, error)
	GetBook(ctx context.Context, id uint) (*models.Book, error)
	CreateBook(ctx context.Context, book models.Book) (*models.Book, error)
	UpdateBook(ctx context.Context, id uint, book models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id uint) error

	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id uint) (*models.Member, error)
	CreateMember(ctx context.Context, member models.Member) (*models.Member, error)
	UpdateMember(ctx context.Context, id uint, member models.Member) (*models.Member, error)
	DeleteMember(ctx context.Context, id uint) error

	ListBorrowRecords(ctx context.Context) ([]models.BorrowRecord, error)
	GetBorrowRecord(ctx context.Context, id uint) (*models.BorrowRecord, error)
	CreateBorrowRecord(ctx context.Context, record models.BorrowRecord) (*models.BorrowRecord, error)
	UpdateBorrowRecord(ctx context.Context, id uint, record models.BorrowRecord) (*models.BorrowRecord, error)
	DeleteBorrowRecord(ctx context.Context, id uint) error
	ListBorrowRecordDetails(ctx context.Context, borrowRecordID uint) ([]models.BorrowRecordDetail, error)
	AddBorrowRecordDetail(ctx context.Context, borrowRecordID uint, detail models.BorrowRecordDetail) (*models.BorrowRecordDetail, error)
	ResolveBorrowRecord(ctx context.Context, borrowRecordID uint) (*Resolution, error)

	ListReturnRecords(ctx context.Context) ([]models.ReturnRecord, error)
	GetReturnRecord(ctx context.Context, id uint) (*models.ReturnRecord, error)
	CreateReturnRecord(ctx context.Context, record models.ReturnRecord) (*models.ReturnRecord, error)
	UpdateReturnRecord(ctx context.Context, id uint, record models.ReturnRecord) (*models.ReturnRecord, error)
	DeleteReturnRecord(ctx context.Context, id uint) error
	ListReturnRecordDetails(ctx context.Context, returnRecordID uint) ([]models.ReturnRecordDetail, error)
	AddReturnRecordDetail(ctx context.Context, returnRecordID uint, detail models.ReturnRecordDetail) (*models.ReturnRecordDetail, error)

	BooksApprovedBy(ctx context.Context, staffID uint) ([]models.Book, error)
	BooksBorrowedRecently(ctx context.Context) ([]models.Book, error)
	BooksBorrowedWithin(ctx context.Context, days int) ([]models.Book, error)
	BooksBorrowedByMember(ctx context.Context, memberID uint) ([]models.Book, error)
	BooksBorrowedBetween(ctx context.Context, from, to models.Date) ([]models.Book, error)
}

// ─── Implementation ───────────────────────────────────────────────────────────

// Repositories groups the per-table stores the service reads and writes.
type Repositories struct {
	Staff         repositories.StaffRepository
	Books         repositories.BookRepository
	Members       repositories.MemberRepository
	BorrowRecords repositories.BorrowRecordRepository
	BorrowDetails repositories.BorrowRecordDetailRepository
	ReturnRecords repositories.ReturnRecordRepository
	ReturnDetails repositories.ReturnRecordDetailRepository
}

// NewRepositories builds every repository on db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Staff:         repositories.NewStaffRepository(db),
		Books:         repositories.NewBookRepository(db),
		Members:       repositories.NewMemberRepository(db),
		BorrowRecords: repositories.NewBorrowRecordRepository(db),
		BorrowDetails: repositories.NewBorrowRecordDetailRepository(db),
		ReturnRecords: repositories.NewReturnRecordRepository(db),
		ReturnDetails: repositories.NewReturnRecordDetailRepository(db),
	}
}

type libraryService struct {
	db         *gorm.DB
	repos      Repositories
	resolver   *BookResolver
	now        func() time.Time
	windowDays int
}

// Option customises a LibraryService.
type Option func(*libraryService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *libraryService) { s.now = now }
}

// WithBorrowWindow sets the look-back window of BooksBorrowedRecently.
func WithBorrowWindow(days int) Option {
	return func(s *libraryService) { s.windowDays = days }
}

// NewLibraryService wires up all dependencies and returns a LibraryService.
func NewLibraryService(db *gorm.DB, repos Repositories, opts ...Option) LibraryService {
	s := &libraryService{
		db:         db,
		repos:      repos,
		now:        time.Now,
		windowDays: DefaultBorrowWindowDays,
	}
	s.resolver = NewBookResolver(repositoryLookup{db: db, details: repos.BorrowDetails, books: repos.Books})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ─── Internal Helpers ─────────────────────────────────────────────────────────

// conn scopes the shared handle to one request.
func (s *libraryService) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *libraryService) today() models.Date {
	return models.DateOf(s.now())
}

// translate maps store errors onto the service's sentinel errors.
// gorm.ErrRecordNotFound becomes notFound.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
