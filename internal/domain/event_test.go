package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anumc/clubsite/internal/domain"
)

func TestEvent_IsFull(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		want      bool
	}{
		{"spots remaining", 10, 5, false},
		{"no spots left", 10, 0, true},
		{"all spots open", 10, 10, false},
		{"unlimited capacity never full", 0, 0, false},
		{"single spot taken", 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.Event{SpotsTotal: tt.total, SpotsAvailable: tt.available}
			assert.Equal(t, tt.want, e.IsFull())
		})
	}
}

func TestEvent_SpotsDisplay(t *testing.T) {
	e := domain.Event{SpotsTotal: 10, SpotsAvailable: 5}
	assert.Equal(t, "5 / 10 spots left", e.SpotsDisplay())

	e.SpotsAvailable = 0
	assert.Equal(t, "Full", e.SpotsDisplay())

	// Unlimited-capacity events keep the counter text rather than claiming Full.
	e = domain.Event{SpotsTotal: 0, SpotsAvailable: 0}
	assert.Equal(t, "0 / 0 spots left", e.SpotsDisplay())
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range []domain.Category{
		domain.CategoryClimbing, domain.CategoryKayaking, domain.CategorySkiing,
		domain.CategoryHiking, domain.CategorySocial, domain.CategoryGeneral,
	} {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}
	assert.False(t, domain.Category("spelunking").Valid())
	assert.False(t, domain.Category("").Valid())
}

func TestRegistrationMethod_Valid(t *testing.T) {
	assert.True(t, domain.RegistrationFCFS.Valid())
	assert.True(t, domain.RegistrationPicky.Valid())
	assert.False(t, domain.RegistrationMethod("lottery").Valid())
}

func TestApprovalStatus_Valid(t *testing.T) {
	assert.True(t, domain.ApprovalPending.Valid())
	assert.True(t, domain.ApprovalApproved.Valid())
	assert.False(t, domain.ApprovalStatus("rejected").Valid())
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range []domain.Difficulty{
		domain.DifficultyNone, domain.DifficultyEasy,
		domain.DifficultyModerate, domain.DifficultyHard,
	} {
		assert.True(t, d.Valid(), "difficulty %q should be valid", d)
	}
	assert.False(t, domain.Difficulty("extreme").Valid())
}
