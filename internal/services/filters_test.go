package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library/internal/models"
)

func TestWithinDuration(t *testing.T) {
	today := models.NewDate(2024, time.March, 31)

	tests := []struct {
		name     string
		borrowed models.Date
		days     int
		want     bool
	}{
		{name: "same_day", borrowed: today, days: 30, want: true},
		{name: "inside_window", borrowed: models.NewDate(2024, time.March, 15), days: 30, want: true},
		{name: "boundary_is_inclusive", borrowed: models.NewDate(2024, time.March, 1), days: 30, want: true},
		{name: "one_day_past_boundary", borrowed: models.NewDate(2024, time.February, 29), days: 30, want: false},
		{name: "zero_window_today", borrowed: today, days: 0, want: true},
		{name: "zero_window_yesterday", borrowed: models.NewDate(2024, time.March, 30), days: 0, want: false},
		{name: "future_date_always_matches", borrowed: models.NewDate(2024, time.June, 1), days: 0, want: true},
		{name: "across_year_boundary", borrowed: models.NewDate(2023, time.December, 31), days: 91, want: true},
		{name: "centuries_old_outside_window", borrowed: models.NewDate(1500, time.January, 1), days: 150000, want: false},
		{name: "centuries_old_inside_window", borrowed: models.NewDate(1500, time.January, 1), days: 200000, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinDuration(tt.borrowed, today, tt.days))
		})
	}
}

func TestWithinDurationIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC)

	assert.True(t, WithinDuration(models.DateOf(early), models.DateOf(late), 30))
}

func TestWithinBracket(t *testing.T) {
	from := models.NewDate(2024, time.January, 10)
	to := models.NewDate(2024, time.January, 20)

	tests := []struct {
		name     string
		borrowed models.Date
		want     bool
	}{
		{name: "before", borrowed: models.NewDate(2024, time.January, 9), want: false},
		{name: "lower_bound", borrowed: from, want: true},
		{name: "inside", borrowed: models.NewDate(2024, time.January, 15), want: true},
		{name: "upper_bound", borrowed: to, want: true},
		{name: "after", borrowed: models.NewDate(2024, time.January, 21), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinBracket(tt.borrowed, from, to))
		})
	}
}

func TestWithinBracketInvertedMatchesNothing(t *testing.T) {
	from := models.NewDate(2024, time.January, 20)
	to := models.NewDate(2024, time.January, 10)

	for d := models.NewDate(2024, time.January, 1); !d.After(models.NewDate(2024, time.January, 31)); d = models.DateOf(d.Time().AddDate(0, 0, 1)) {
		assert.False(t, WithinBracket(d, from, to), "date %s", d)
	}
}

func TestWithinBracketSingleDay(t *testing.T) {
	day := models.NewDate(2024, time.February, 29)

	assert.True(t, WithinBracket(day, day, day))
	assert.False(t, WithinBracket(models.NewDate(2024, time.March, 1), day, day))
}
