package utils

import (
	"errors"
	"fmt"
	"lms/models"
	"time"

	"gorm.io/gorm"
)

// ErrPaymentNotSuccessful is returned when an enrollment is requested for a
// payment that has not passed the gateway signature check.
var ErrPaymentNotSuccessful = errors.New("payment is not successful")

// CreateEnrollmentFromPayment converts a verified payment into access. It is
// idempotent per (user, course): a duplicate gateway callback returns the
// existing enrollment unchanged. The composite unique index on enrollments
// backs the concurrent case - when two calls race, the loser's insert fails
// and it re-reads the winner's row.
func CreateEnrollmentFromPayment(db *gorm.DB, payment *models.Payment, course *models.Course, now time.Time) (*models.Enrollment, error) {
	if payment.Status != models.PaymentStatusSuccess {
		return nil, ErrPaymentNotSuccessful
	}

	var existing models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := models.Enrollment{
		UserID:       payment.UserID,
		CourseID:     payment.CourseID,
		PurchaseDate: now,
		IsActive:     true,
		PaymentID:    payment.ID,
	}

	// Expiry applies to recorded courses only; live enrollments never expire
	if course.CourseType == models.CourseTypeRecorded {
		expiry := CalculateExpiryDate(now, course.ValidityMonths)
		enrollment.ExpiryDate = &expiry
	}

	if err := db.Create(&enrollment).Error; err != nil {
		// A concurrent call may have won the unique-index race
		if ferr := db.Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create enrollment: %v", err)
	}

	return &enrollment, nil
}

// RecordVideoProgress upserts the watch state for one video within one
// enrollment. Watched duration is clamped to the video length; completion is
// derived once playback passes 90% of the duration and never reverts.
func RecordVideoProgress(db *gorm.DB, enrollment *models.Enrollment, video *models.Video, watchedDuration int) (*models.VideoProgress, error) {
	if watchedDuration < 0 {
		watchedDuration = 0
	}
	if video.Duration > 0 && watchedDuration > video.Duration {
		watchedDuration = video.Duration
	}

	completed := video.Duration > 0 && float64(watchedDuration)/float64(video.Duration) >= 0.9

	var progress models.VideoProgress
	err := db.Where("enrollment_id = ? AND video_id = ?", enrollment.ID, video.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.VideoProgress{
			EnrollmentID:    enrollment.ID,
			VideoID:         video.ID,
			WatchedDuration: watchedDuration,
			Completed:       completed,
		}
		if cerr := db.Create(&progress).Error; cerr != nil {
			return nil, cerr
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}

	progress.WatchedDuration = watchedDuration
	if completed {
		progress.Completed = true // one-way ratchet
	}
	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}

	return &progress, nil
}
