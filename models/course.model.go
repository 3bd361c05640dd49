package models

import (
	"time"

	"gorm.io/gorm"
)

// Course types
const (
	CourseTypeRecorded = "RECORDED"
	CourseTypeLive     = "LIVE"
)

// Course represents a purchasable offering. RECORDED courses carry modules,
// videos and a validity window; LIVE courses carry a date range and a weekly
// schedule. The fields of the other type stay zero-valued.
type Course struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CourseType  string  `json:"course_type" gorm:"index;not null"` // RECORDED, LIVE
	Price       float64 `json:"price" gorm:"not null"`
	Thumbnail   string  `json:"thumbnail"`

	// RECORDED course fields
	ValidityMonths int            `json:"validity_months" gorm:"default:6"`
	Modules        []CourseModule `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Videos         []Video        `json:"videos,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	// LIVE course fields
	DurationDays int            `json:"duration_days,omitempty"`
	StartDate    *time.Time     `json:"start_date,omitempty"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	Schedule     []ScheduleSlot `json:"schedule,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedBy uint `json:"created_by" gorm:"index"`
	IsActive  bool `json:"is_active" gorm:"default:true;index"` // soft delete, never hard-deleted
}

// CourseModule is a named grouping of videos within a recorded course
type CourseModule struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Module order in course
}

// Video represents one recorded lesson
type Video struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	ModuleID   uint   `json:"module_id" gorm:"index"`
	Title      string `json:"title"`
	URL        string `json:"url"` // source locator, hidden from non-enrolled users
	Duration   int    `json:"duration" gorm:"default:0"` // duration in seconds
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}

// ScheduleSlot is one weekly recurring live-session entry
type ScheduleSlot struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	DayOfWeek   int    `json:"day_of_week"` // 0-6 (Sunday to Saturday)
	Time        string `json:"time"`        // HH:MM format
	MeetingLink string `json:"meeting_link"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
