package utils

import (
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCourse(t *testing.T, db *gorm.DB, courseType string, validityMonths int) *models.Course {
	t.Helper()
	course := models.Course{
		Name:           "Options Masterclass",
		CourseType:     courseType,
		Price:          4999,
		ValidityMonths: validityMonths,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func seedPayment(t *testing.T, db *gorm.DB, userID, courseID uint, status string) *models.Payment {
	t.Helper()
	payment := models.Payment{
		UserID:          userID,
		CourseID:        courseID,
		Amount:          4999,
		Currency:        "INR",
		RazorpayOrderID: "order_" + time.Now().Format("150405.000000000"),
		Status:          status,
	}
	require.NoError(t, db.Create(&payment).Error)
	return &payment
}

func TestCreateEnrollmentFromPaymentRecorded(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	course := seedCourse(t, db, models.CourseTypeRecorded, 6)
	payment := seedPayment(t, db, 1, course.ID, models.PaymentStatusSuccess)

	enrollment, err := CreateEnrollmentFromPayment(db, payment, course, now)
	require.NoError(t, err)

	assert.True(t, enrollment.IsActive)
	assert.Equal(t, now, enrollment.PurchaseDate)
	assert.Equal(t, payment.ID, enrollment.PaymentID)
	require.NotNil(t, enrollment.ExpiryDate)
	assert.Equal(t, now.AddDate(0, 6, 0), *enrollment.ExpiryDate)
}

func TestCreateEnrollmentFromPaymentLiveHasNoExpiry(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	course := seedCourse(t, db, models.CourseTypeLive, 0)
	payment := seedPayment(t, db, 1, course.ID, models.PaymentStatusSuccess)

	enrollment, err := CreateEnrollmentFromPayment(db, payment, course, now)
	require.NoError(t, err)

	assert.True(t, enrollment.IsActive)
	assert.Nil(t, enrollment.ExpiryDate)
}

func TestCreateEnrollmentFromPaymentIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	course := seedCourse(t, db, models.CourseTypeRecorded, 6)
	payment := seedPayment(t, db, 1, course.ID, models.PaymentStatusSuccess)

	first, err := CreateEnrollmentFromPayment(db, payment, course, now)
	require.NoError(t, err)

	// A duplicate gateway callback must return the same row, not create one
	second, err := CreateEnrollmentFromPayment(db, payment, course, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateEnrollmentFromPaymentRejectsNonSuccess(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, models.CourseTypeRecorded, 6)

	for _, status := range []string{models.PaymentStatusPending, models.PaymentStatusFailed} {
		payment := seedPayment(t, db, 2, course.ID, status)
		_, err := CreateEnrollmentFromPayment(db, payment, course, time.Now())
		assert.ErrorIs(t, err, ErrPaymentNotSuccessful)
	}

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnrollmentUniqueIndexBlocksDuplicates(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	first := models.Enrollment{UserID: 1, CourseID: 1, PurchaseDate: now, IsActive: true, PaymentID: 1}
	require.NoError(t, db.Create(&first).Error)

	duplicate := models.Enrollment{UserID: 1, CourseID: 1, PurchaseDate: now, IsActive: true, PaymentID: 2}
	assert.Error(t, db.Create(&duplicate).Error)
}

func TestRecordVideoProgressUpsert(t *testing.T) {
	db := newTestDB(t)

	enrollment := models.Enrollment{UserID: 1, CourseID: 1, PurchaseDate: time.Now(), IsActive: true, PaymentID: 1}
	require.NoError(t, db.Create(&enrollment).Error)
	video := models.Video{CourseID: 1, Title: "Intro", Duration: 600}
	require.NoError(t, db.Create(&video).Error)

	progress, err := RecordVideoProgress(db, &enrollment, &video, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, progress.WatchedDuration)
	assert.False(t, progress.Completed)

	// Second write for the same video overwrites in place
	progress, err = RecordVideoProgress(db, &enrollment, &video, 300)
	require.NoError(t, err)
	assert.Equal(t, 300, progress.WatchedDuration)

	var count int64
	require.NoError(t, db.Model(&models.VideoProgress{}).
		Where("enrollment_id = ? AND video_id = ?", enrollment.ID, video.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordVideoProgressCompletionRatchet(t *testing.T) {
	db := newTestDB(t)

	enrollment := models.Enrollment{UserID: 1, CourseID: 1, PurchaseDate: time.Now(), IsActive: true, PaymentID: 1}
	require.NoError(t, db.Create(&enrollment).Error)
	video := models.Video{CourseID: 1, Title: "Deep Dive", Duration: 1000}
	require.NoError(t, db.Create(&video).Error)

	// 90% of the duration marks the video completed
	progress, err := RecordVideoProgress(db, &enrollment, &video, 900)
	require.NoError(t, err)
	assert.True(t, progress.Completed)

	// Rewatching from the start must not un-complete it
	progress, err = RecordVideoProgress(db, &enrollment, &video, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.WatchedDuration)
	assert.True(t, progress.Completed)
}

func TestRecordVideoProgressClampsToDuration(t *testing.T) {
	db := newTestDB(t)

	enrollment := models.Enrollment{UserID: 1, CourseID: 1, PurchaseDate: time.Now(), IsActive: true, PaymentID: 1}
	require.NoError(t, db.Create(&enrollment).Error)
	video := models.Video{CourseID: 1, Title: "Short Clip", Duration: 300}
	require.NoError(t, db.Create(&video).Error)

	progress, err := RecordVideoProgress(db, &enrollment, &video, 5000)
	require.NoError(t, err)
	assert.Equal(t, 300, progress.WatchedDuration)
	assert.True(t, progress.Completed)

	progress, err = RecordVideoProgress(db, &enrollment, &video, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.WatchedDuration)
}
