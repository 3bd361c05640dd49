package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SweepSummary reports the outcome of one expiry-sweep run
type SweepSummary struct {
	ExpiredCount int  `json:"expired_count"`
	WarningCount int  `json:"warning_count"`
	Success      bool `json:"success"`
}

// InitializeExpiryScheduler sets up the daily enrollment expiry check
func InitializeExpiryScheduler() {
	log.Println("[EXPIRY-SCHEDULER] Initializing enrollment expiry scheduler...")

	c := cron.New()

	// Run daily at 9 AM to deactivate expired enrollments and queue warnings
	c.AddFunc("0 9 * * *", func() {
		log.Println("[EXPIRY-SCHEDULER] Running daily enrollment expiry check...")
		RunExpirySweep(database.Database.Db, time.Now())
	})

	c.Start()
	log.Println("[EXPIRY-SCHEDULER] Expiry scheduler started - runs daily at 9 AM")
}

// RunExpirySweep reconciles all active, expiry-bearing enrollments against
// now. Expired ones are deactivated one row at a time; a failure on one
// record is logged and the sweep continues with the rest. Live-course
// enrollments carry no expiry date and never match the query.
func RunExpirySweep(db *gorm.DB, now time.Time) SweepSummary {
	summary := SweepSummary{Success: true}

	var enrollments []models.Enrollment
	if err := db.
		Where("is_active = ? AND expiry_date IS NOT NULL", true).
		Find(&enrollments).Error; err != nil {
		log.Printf("[EXPIRY-SCHEDULER] Error fetching enrollments: %v", err)
		summary.Success = false
		return summary
	}

	log.Printf("[EXPIRY-SCHEDULER] Checking %d active enrollments", len(enrollments))

	for i := range enrollments {
		enrollment := &enrollments[i]

		var course models.Course
		if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
			log.Printf("[EXPIRY-SCHEDULER] Error fetching course %d for enrollment %d: %v", enrollment.CourseID, enrollment.ID, err)
			summary.Success = false
			continue
		}

		result := EvaluateAccess(enrollment, &course, now)

		if result.NeedsDeactivation {
			if err := db.Model(enrollment).Update("is_active", false).Error; err != nil {
				log.Printf("[EXPIRY-SCHEDULER] Error deactivating enrollment %d: %v", enrollment.ID, err)
				summary.Success = false
				continue
			}
			summary.ExpiredCount++
			log.Printf("[EXPIRY-SCHEDULER] Deactivated enrollment %d (expired %s)", enrollment.ID, enrollment.ExpiryDate.Format("2006-01-02"))

			var user models.User
			if err := db.Where("id = ?", enrollment.UserID).First(&user).Error; err == nil {
				SendCourseExpiredEmail(user.Email, user.Name, course.Name)
			}
			continue
		}

		if !result.HasAccess {
			// Inactive enrollment or deactivated course; nothing for the sweep to do
			continue
		}

		// Renewal warning at exactly 7 days out, once per enrollment
		if ShouldSendExpiryWarning(*enrollment.ExpiryDate, now) && enrollment.WarnedAt == nil {
			if err := db.Model(enrollment).Update("warned_at", now).Error; err != nil {
				log.Printf("[EXPIRY-SCHEDULER] Error marking warning for enrollment %d: %v", enrollment.ID, err)
				summary.Success = false
				continue
			}
			summary.WarningCount++
			log.Printf("[EXPIRY-SCHEDULER] Expiry warning queued for enrollment %d (%d days remaining)", enrollment.ID, ExpiryWarningDays)

			var user models.User
			if err := db.Where("id = ?", enrollment.UserID).First(&user).Error; err == nil {
				SendExpiryWarningEmail(user.Email, user.Name, course.Name, *enrollment.ExpiryDate)
			}
		}
	}

	log.Printf("[EXPIRY-SCHEDULER] Sweep completed: %d expired, %d warnings", summary.ExpiredCount, summary.WarningCount)
	return summary
}
