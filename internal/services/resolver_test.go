package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library/internal/models"
)

// fakeLookup keeps detail rows in insertion order and books by id.
type fakeLookup struct {
	details []models.BorrowRecordDetail
	books   map[uint]models.Book
	err     error

	detailCalls int
	bookCalls   int
}

func (f *fakeLookup) FirstDetail(_ context.Context, borrowRecordID uint) (*models.BorrowRecordDetail, error) {
	f.detailCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.details {
		if d.BorrowRecordID == borrowRecordID {
			d := d
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLookup) Book(_ context.Context, bookID uint) (*models.Book, error) {
	f.bookCalls++
	book, ok := f.books[bookID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &book, nil
}

func TestResolveBooksSkipsRecordWithoutDetail(t *testing.T) {
	lookup := &fakeLookup{
		details: []models.BorrowRecordDetail{{ID: 1, BorrowRecordID: 1, BookID: 10}},
		books:   map[uint]models.Book{10: {ID: 10, Title: "X"}},
	}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), []uint{1, 2})

	require.NoError(t, err)
	assert.Equal(t, []models.Book{{ID: 10, Title: "X"}}, books)
}

func TestResolveBooksEmptyInput(t *testing.T) {
	lookup := &fakeLookup{}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
	assert.Zero(t, lookup.detailCalls)
	assert.Zero(t, lookup.bookCalls)
}

func TestResolveBooksNoDetailsAtAll(t *testing.T) {
	lookup := &fakeLookup{books: map[uint]models.Book{10: {ID: 10}}}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), []uint{1, 2, 3})

	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Zero(t, lookup.bookCalls)
}

func TestResolveBooksPreservesOrderAndDuplicates(t *testing.T) {
	lookup := &fakeLookup{
		details: []models.BorrowRecordDetail{
			{ID: 1, BorrowRecordID: 3, BookID: 30},
			{ID: 2, BorrowRecordID: 1, BookID: 10},
			{ID: 3, BorrowRecordID: 2, BookID: 10},
		},
		books: map[uint]models.Book{
			10: {ID: 10, Title: "Ten"},
			30: {ID: 30, Title: "Thirty"},
		},
	}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), []uint{2, 3, 1, 3})

	require.NoError(t, err)
	require.Len(t, books, 4)
	assert.Equal(t, []uint{10, 30, 10, 30}, []uint{books[0].ID, books[1].ID, books[2].ID, books[3].ID})
}

func TestResolveFollowsFirstDetailOnly(t *testing.T) {
	lookup := &fakeLookup{
		details: []models.BorrowRecordDetail{
			{ID: 1, BorrowRecordID: 1, BookID: 10},
			{ID: 2, BorrowRecordID: 1, BookID: 11},
		},
		books: map[uint]models.Book{10: {ID: 10}, 11: {ID: 11}},
	}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), []uint{1})

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, uint(10), books[0].ID)
}

func TestResolveReportsOutcomePerRecord(t *testing.T) {
	lookup := &fakeLookup{
		details: []models.BorrowRecordDetail{
			{ID: 1, BorrowRecordID: 1, BookID: 10},
			{ID: 2, BorrowRecordID: 3, BookID: 99},
		},
		books: map[uint]models.Book{10: {ID: 10, Title: "X"}},
	}

	resolutions, err := NewBookResolver(lookup).Resolve(context.Background(), []uint{1, 2, 3})

	require.NoError(t, err)
	require.Len(t, resolutions, 3)

	assert.Equal(t, OutcomeResolved, resolutions[0].Outcome)
	assert.Equal(t, "X", resolutions[0].Book.Title)

	assert.Equal(t, uint(2), resolutions[1].BorrowRecordID)
	assert.Equal(t, OutcomeMissingDetail, resolutions[1].Outcome)
	assert.Nil(t, resolutions[1].Book)

	assert.Equal(t, OutcomeMissingBook, resolutions[2].Outcome)
	assert.Equal(t, uint(99), resolutions[2].BookID)
	assert.Nil(t, resolutions[2].Book)

	assert.Len(t, Books(resolutions), 1)
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	lookup := &fakeLookup{err: storeErr}

	_, err := NewBookResolver(lookup).ResolveBooks(context.Background(), []uint{1})

	assert.ErrorIs(t, err, storeErr)
}

func TestResolveBooksOneDetailPerRecord(t *testing.T) {
	lookup := &fakeLookup{books: map[uint]models.Book{}}
	ids := make([]uint, 0, 20)
	for i := uint(1); i <= 20; i++ {
		lookup.details = append(lookup.details, models.BorrowRecordDetail{ID: i, BorrowRecordID: i, BookID: 100 + i})
		lookup.books[100+i] = models.Book{ID: 100 + i}
		ids = append(ids, 21-i)
	}

	books, err := NewBookResolver(lookup).ResolveBooks(context.Background(), ids)

	require.NoError(t, err)
	require.Len(t, books, len(ids))
	for i, id := range ids {
		assert.Equal(t, 100+id, books[i].ID)
	}
}
