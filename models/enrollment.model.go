package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment grants one user access to one course, created from a successful
// payment. The composite unique index enforces at most one enrollment per
// (user, course) pair at the storage layer; concurrent duplicate purchases
// race on it and exactly one row wins.
type Enrollment struct {
	gorm.Model
	UserID       uint            `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID     uint            `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	PurchaseDate time.Time       `json:"purchase_date" gorm:"not null"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty" gorm:"index"` // set for RECORDED courses, null for LIVE
	IsActive     bool            `json:"is_active" gorm:"default:true;index"`
	WarnedAt     *time.Time      `json:"warned_at,omitempty"` // last renewal-warning timestamp
	PaymentID    uint            `json:"payment_id" gorm:"not null"`
	Progress     []VideoProgress `json:"progress" gorm:"constraint:OnDelete:CASCADE"`
	User         User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course       Course          `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// VideoProgress is the watch state for one video within one enrollment.
// At most one row per (enrollment, video); updates overwrite in place.
type VideoProgress struct {
	gorm.Model
	EnrollmentID    uint `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_video;not null"`
	VideoID         uint `json:"video_id" gorm:"uniqueIndex:idx_enrollment_video;not null"`
	WatchedDuration int  `json:"watched_duration" gorm:"default:0"` // in seconds
	Completed       bool `json:"completed" gorm:"default:false"`
}
