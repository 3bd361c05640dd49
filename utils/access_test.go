package utils

import (
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestEvaluateAccess(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	activeCourse := &models.Course{IsActive: true, CourseType: models.CourseTypeRecorded}
	inactiveCourse := &models.Course{IsActive: false, CourseType: models.CourseTypeRecorded}

	tests := []struct {
		name             string
		enrollment       *models.Enrollment
		course           *models.Course
		wantAccess       bool
		wantReason       string
		wantDeactivation bool
	}{
		{
			name:       "active enrollment before expiry",
			enrollment: &models.Enrollment{IsActive: true, ExpiryDate: timePtr(now.AddDate(0, 3, 0))},
			course:     activeCourse,
			wantAccess: true,
			wantReason: AccessReasonGranted,
		},
		{
			name:             "expiry exactly now is already expired",
			enrollment:       &models.Enrollment{IsActive: true, ExpiryDate: timePtr(now)},
			course:           activeCourse,
			wantReason:       AccessReasonExpired,
			wantDeactivation: true,
		},
		{
			name:             "expiry in the past",
			enrollment:       &models.Enrollment{IsActive: true, ExpiryDate: timePtr(now.AddDate(0, 0, -1))},
			course:           activeCourse,
			wantReason:       AccessReasonExpired,
			wantDeactivation: true,
		},
		{
			name:       "deactivated enrollment",
			enrollment: &models.Enrollment{IsActive: false, ExpiryDate: timePtr(now.AddDate(0, 3, 0))},
			course:     activeCourse,
			wantReason: AccessReasonInactive,
		},
		{
			name:       "no expiry date never expires",
			enrollment: &models.Enrollment{IsActive: true},
			course:     &models.Course{IsActive: true, CourseType: models.CourseTypeLive},
			wantAccess: true,
			wantReason: AccessReasonGranted,
		},
		{
			name:       "deactivated course denies regardless of enrollment",
			enrollment: &models.Enrollment{IsActive: true, ExpiryDate: timePtr(now.AddDate(0, 3, 0))},
			course:     inactiveCourse,
			wantReason: AccessReasonCourseUnavailable,
		},
		{
			name:       "missing course",
			enrollment: &models.Enrollment{IsActive: true},
			course:     nil,
			wantReason: AccessReasonCourseUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateAccess(tt.enrollment, tt.course, now)
			assert.Equal(t, tt.wantAccess, result.HasAccess)
			assert.Equal(t, tt.wantReason, result.Reason)
			assert.Equal(t, tt.wantDeactivation, result.NeedsDeactivation)
		})
	}
}

func TestCalculateExpiryDate(t *testing.T) {
	purchase := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC), CalculateExpiryDate(purchase, 6))
	assert.Equal(t, time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC), CalculateExpiryDate(purchase, 3))

	// Zero or negative validity falls back to the 6-month default
	assert.Equal(t, time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC), CalculateExpiryDate(purchase, 0))
	assert.Equal(t, time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC), CalculateExpiryDate(purchase, -2))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"exactly seven days", now.AddDate(0, 0, 7), 7},
		{"partial day rounds up", now.AddDate(0, 0, 7).Add(-time.Hour), 7},
		{"just over seven days rounds to eight", now.AddDate(0, 0, 7).Add(time.Hour), 8},
		{"one hour left counts as one day", now.Add(time.Hour), 1},
		{"expiring now", now, 0},
		{"already expired", now.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.expiry, now))
		})
	}
}

func TestShouldSendExpiryWarning(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, ShouldSendExpiryWarning(now.AddDate(0, 0, 7), now))
	assert.True(t, ShouldSendExpiryWarning(now.AddDate(0, 0, 7).Add(-time.Hour), now))
	assert.False(t, ShouldSendExpiryWarning(now.AddDate(0, 0, 8), now))
	assert.False(t, ShouldSendExpiryWarning(now.AddDate(0, 0, 6), now))
	assert.False(t, ShouldSendExpiryWarning(now, now))
}
