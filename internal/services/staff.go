package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"library/internal/models"
)

// saltBytes keeps salt+password within bcrypt's 72-byte input limit for
// passwords up to MaxPasswordLength.
const (
	saltBytes         = 8
	MaxPasswordLength = 72 - 2*saltBytes
)

// StaffInput carries the writable fields of a staff account. Password is the
// plain-text password; on update an empty Password keeps the current one.
type StaffInput struct {
	FirstName string
	LastName  string
	Mobile    string
	Email     string
	Password  string
	Category  string
}

func (s *libraryService) ListStaff(ctx context.Context) ([]models.LibraryStaff, error) {
	return s.repos.Staff.List(s.conn(ctx))
}

func (s *libraryService) GetStaff(ctx context.Context, id uint) (*models.LibraryStaff, error) {
	staff, err := s.repos.Staff.GetByID(s.conn(ctx), id)
	if err != nil {
		return nil, translate(err, ErrStaffNotFound)
	}
	return staff, nil
}

// CreateStaff stores a staff account with a freshly salted bcrypt hash.
func (s *libraryService) CreateStaff(ctx context.Context, in StaffInput) (*models.LibraryStaff, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" {
		return nil, invalid("email is required")
	}
	if in.Password == "" {
		return nil, invalid("password is required")
	}
	hash, salt, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	staff := &models.LibraryStaff{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Mobile:       in.Mobile,
		Email:        in.Email,
		PasswordHash: hash,
		Salt:         salt,
		Category:     in.Category,
	}
	if err := s.repos.Staff.Create(s.conn(ctx), staff); err != nil {
		log.Printf("[ERROR] CreateStaff: failed to create staff %q: %v", in.Email, err)
		return nil, translate(err, ErrStaffNotFound)
	}
	log.Printf("[INFO] CreateStaff: created staff %q (id=%d)", staff.Email, staff.ID)
	return staff, nil
}

func (s *libraryService) UpdateStaff(ctx context.Context, id uint, in StaffInput) (*models.LibraryStaff, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" {
		return nil, invalid("email is required")
	}

	var updated *models.LibraryStaff
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		staff, err := s.repos.Staff.GetByID(tx, id)
		if err != nil {
			return err
		}
		staff.FirstName = in.FirstName
		staff.LastName = in.LastName
		staff.Mobile = in.Mobile
		staff.Email = in.Email
		staff.Category = in.Category
		if in.Password != "" {
			if staff.PasswordHash, staff.Salt, err = hashPassword(in.Password); err != nil {
				return err
			}
		}
		if err := s.repos.Staff.Update(tx, staff); err != nil {
			return err
		}
		updated = staff
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] UpdateStaff: failed to update staff %d: %v", id, err)
		return nil, translate(err, ErrStaffNotFound)
	}
	log.Printf("[INFO] UpdateStaff: updated staff %d", id)
	return updated, nil
}

// DeleteStaff removes the account; the store cascades to the borrow records it approved.
func (s *libraryService) DeleteStaff(ctx context.Context, id uint) error {
	if err := s.repos.Staff.Delete(s.conn(ctx), id); err != nil {
		log.Printf("[ERROR] DeleteStaff: failed to delete staff %d: %v", id, err)
		return translate(err, ErrStaffNotFound)
	}
	log.Printf("[INFO] DeleteStaff: deleted staff %d", id)
	return nil
}

// AuthenticateStaff checks password against the stored hash for email. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (s *libraryService) AuthenticateStaff(ctx context.Context, email, password string) (*models.LibraryStaff, error) {
	staff, err := s.repos.Staff.GetByEmail(s.conn(ctx), normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] AuthenticateStaff: unknown email %q", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(staff.Salt+password)); err != nil {
		log.Printf("[WARN] AuthenticateStaff: wrong password for staff %d", staff.ID)
		return nil, ErrInvalidCredentials
	}
	return staff, nil
}

// hashPassword returns the bcrypt hash of salt+password and the new salt.
func hashPassword(password string) (string, string, error) {
	if len(password) > MaxPasswordLength {
		return "", "", invalid("password must be at most %d bytes", MaxPasswordLength)
	}
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt := hex.EncodeToString(raw)
	hash, err := bcrypt.GenerateFromPassword([]byte(salt+password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return string(hash), salt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
