package utils

import (
	"lms/models"
	"math"
	"time"
)

// Access decision reasons
const (
	AccessReasonGranted           = "granted"
	AccessReasonInactive          = "inactive"
	AccessReasonExpired           = "expired"
	AccessReasonCourseUnavailable = "course unavailable"
)

// ExpiryWarningDays is how many days before expiry the renewal warning fires
const ExpiryWarningDays = 7

// DefaultValidityMonths is the fallback validity window for recorded courses
const DefaultValidityMonths = 6

// AccessResult is the outcome of the admission decision for one enrollment
// at a point in time.
type AccessResult struct {
	HasAccess         bool   `json:"has_access"`
	Reason            string `json:"reason"`
	NeedsDeactivation bool   `json:"-"` // caller must persist IsActive=false (lazy expiry)
}

// EvaluateAccess decides whether the enrolled user currently has access to
// the course. It never touches storage; when NeedsDeactivation is set the
// caller applies the correction on its own write path.
func EvaluateAccess(enrollment *models.Enrollment, course *models.Course, now time.Time) AccessResult {
	if course == nil || !course.IsActive {
		return AccessResult{Reason: AccessReasonCourseUnavailable}
	}

	if !enrollment.IsActive {
		return AccessResult{Reason: AccessReasonInactive}
	}

	// Inclusive boundary: now == expiry already counts as expired.
	// Live-course enrollments carry no expiry date and never hit this.
	if enrollment.ExpiryDate != nil && !now.Before(*enrollment.ExpiryDate) {
		return AccessResult{Reason: AccessReasonExpired, NeedsDeactivation: true}
	}

	return AccessResult{HasAccess: true, Reason: AccessReasonGranted}
}

// CalculateExpiryDate returns the expiry for a recorded-course purchase.
// Set exactly once at enrollment creation, never recomputed.
func CalculateExpiryDate(purchaseDate time.Time, validityMonths int) time.Time {
	if validityMonths <= 0 {
		validityMonths = DefaultValidityMonths
	}
	return purchaseDate.AddDate(0, validityMonths, 0)
}

// DaysRemaining returns the number of days until expiry, rounded up so any
// partial day counts as a full one. Values <= 0 mean expired.
func DaysRemaining(expiryDate, now time.Time) int {
	return int(math.Ceil(expiryDate.Sub(now).Hours() / 24))
}

// ShouldSendExpiryWarning reports whether the enrollment sits exactly on the
// renewal-warning threshold.
func ShouldSendExpiryWarning(expiryDate, now time.Time) bool {
	return DaysRemaining(expiryDate, now) == ExpiryWarningDays
}
