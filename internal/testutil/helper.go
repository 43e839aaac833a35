// Package testutil arranges a migrated sqlite store and seed rows for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library/internal/config"
	"library/internal/database"
	"library/internal/models"
)

// GivenDB opens a fresh, migrated sqlite database in a temporary directory.
func GivenDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.db")
	cfg := &config.Config{
		DatabaseDriver:  config.DriverSQLite,
		DatabaseURL:     fmt.Sprintf("file:%s?_foreign_keys=1", path),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
	db, err := database.Open(cfg)
	require.NoError(t, err, "error in arranging test database")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db), "error in migrating test database")
	return db
}

func GivenBook(t testing.TB, db *gorm.DB, title string) models.Book {
	t.Helper()
	book := models.Book{
		Title:     title,
		Edition:   "1st",
		Author:    "Author of " + title,
		Publisher: "Contoso Press",
		Copies:    3,
		Costs:     12.5,
	}
	require.NoError(t, db.Create(&book).Error, "error in arranging book")
	return book
}

func GivenMember(t testing.TB, db *gorm.DB, firstName string) models.Member {
	t.Helper()
	member := models.Member{
		FirstName:   firstName,
		LastName:    "Reader",
		DateOfBirth: models.NewDate(1990, time.May, 17),
		Gender:      "female",
		Mobile:      "08030000000",
		Email:       firstName + "@example.com",
	}
	require.NoError(t, db.Create(&member).Error, "error in arranging member")
	return member
}

// GivenStaff stores a staff account with a placeholder hash; it cannot log in.
func GivenStaff(t testing.TB, db *gorm.DB, email string) models.LibraryStaff {
	t.Helper()
	staff := models.LibraryStaff{
		FirstName:    "Staff",
		LastName:     "Member",
		Email:        email,
		PasswordHash: "not-a-bcrypt-hash",
		Salt:         "00",
		Category:     "librarian",
	}
	require.NoError(t, db.Create(&staff).Error, "error in arranging staff")
	return staff
}

func GivenBorrowRecord(t testing.TB, db *gorm.DB, memberID, staffID uint, borrowed models.Date) models.BorrowRecord {
	t.Helper()
	record := models.BorrowRecord{
		MemberID:      memberID,
		StaffID:       staffID,
		DateBorrowed:  borrowed,
		DueReturnDate: models.DateOf(borrowed.Time().AddDate(0, 0, 14)),
	}
	require.NoError(t, db.Omit("Member", "Staff").Create(&record).Error, "error in arranging borrow record")
	return record
}

func GivenBorrowDetail(t testing.TB, db *gorm.DB, borrowRecordID, bookID uint) models.BorrowRecordDetail {
	t.Helper()
	detail := models.BorrowRecordDetail{
		BorrowRecordID: borrowRecordID,
		BookID:         bookID,
		NumberOfCopies: 1,
	}
	require.NoError(t, db.Omit("BorrowRecord", "Book").Create(&detail).Error, "error in arranging borrow detail")
	return detail
}
