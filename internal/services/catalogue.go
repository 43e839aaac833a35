package services

import (
	"context"
	"log"

	"library/internal/models"
)

// ─── Books ────────────────────────────────────────────────────────────────────

func (s *libraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.repos.Books.List(s.conn(ctx))
}

func (s *libraryService) ListBooksByAuthor(ctx context.Context, author string) ([]models.Book, error) {
	return s.repos.Books.ListByAuthor(s.conn(ctx), author)
}

func (s *libraryService) ListBooksByPublisher(ctx context.Context, publisher string) ([]models.Book, error) {
	return s.repos.Books.ListByPublisher(s.conn(ctx), publisher)
}

func (s *libraryService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.repos.Books.GetByID(s.conn(ctx), id)
	if err != nil {
		return nil, translate(err, ErrBookNotFound)
	}
	return book, nil
}

// CreateBook stores a new book. The identifier is always assigned by the store.
func (s *libraryService) CreateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	if err := validateBook(book); err != nil {
		return nil, err
	}
	book.ID = 0
	if err := s.repos.Books.Create(s.conn(ctx), &book); err != nil {
		log.Printf("[ERROR] CreateBook: failed to create book %q: %v", book.Title, err)
		return nil, translate(err, ErrBookNotFound)
	}
	log.Printf("[INFO] CreateBook: created book %q (id=%d)", book.Title, book.ID)
	return &book, nil
}

// UpdateBook replaces every field of book id except the identifier.
func (s *libraryService) UpdateBook(ctx context.Context, id uint, book models.Book) (*models.Book, error) {
	if err := validateBook(book); err != nil {
		return nil, err
	}
	book.ID = id
	if err := s.repos.Books.Update(s.conn(ctx), &book); err != nil {
		return nil, translate(err, ErrBookNotFound)
	}
	log.Printf("[INFO] UpdateBook: updated book %d", id)
	return &book, nil
}

func (s *libraryService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.repos.Books.Delete(s.conn(ctx), id); err != nil {
		log.Printf("[ERROR] DeleteBook: failed to delete book %d: %v", id, err)
		return translate(err, ErrBookNotFound)
	}
	log.Printf("[INFO] DeleteBook: deleted book %d", id)
	return nil
}

func validateBook(book models.Book) error {
	if book.Copies < 0 {
		return invalid("copies must not be negative")
	}
	if book.Costs < 0 {
		return invalid("costs must not be negative")
	}
	return nil
}

// ─── Members ──────────────────────────────────────────────────────────────────

func (s *libraryService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.repos.Members.List(s.conn(ctx))
}

func (s *libraryService) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.repos.Members.GetByID(s.conn(ctx), id)
	if err != nil {
		return nil, translate(err, ErrMemberNotFound)
	}
	return member, nil
}

func (s *libraryService) CreateMember(ctx context.Context, member models.Member) (*models.Member, error) {
	member.ID = 0
	if err := s.repos.Members.Create(s.conn(ctx), &member); err != nil {
		log.Printf("[ERROR] CreateMember: failed to create member: %v", err)
		return nil, translate(err, ErrMemberNotFound)
	}
	log.Printf("[INFO] CreateMember: created member %d", member.ID)
	return &member, nil
}

func (s *libraryService) UpdateMember(ctx context.Context, id uint, member models.Member) (*models.Member, error) {
	member.ID = id
	if err := s.repos.Members.Update(s.conn(ctx), &member); err != nil {
		return nil, translate(err, ErrMemberNotFound)
	}
	log.Printf("[INFO] UpdateMember: updated member %d", id)
	return &member, nil
}

// DeleteMember removes the member; the store cascades to their borrow records.
func (s *libraryService) DeleteMember(ctx context.Context, id uint) error {
	if err := s.repos.Members.Delete(s.conn(ctx), id); err != nil {
		log.Printf("[ERROR] DeleteMember: failed to delete member %d: %v", id, err)
		return translate(err, ErrMemberNotFound)
	}
	log.Printf("[INFO] DeleteMember: deleted member %d", id)
	return nil
}
