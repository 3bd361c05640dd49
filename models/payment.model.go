package models

import "gorm.io/gorm"

// Payment statuses
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// Payment represents one attempted transaction against the payment gateway.
// Created PENDING when an order is opened; moves to SUCCESS only after the
// gateway signature check passes, and never moves back.
type Payment struct {
	gorm.Model
	UserID            uint    `json:"user_id" gorm:"index;not null"`
	CourseID          uint    `json:"course_id" gorm:"index;not null"`
	Amount            float64 `json:"amount" gorm:"not null"`
	Currency          string  `json:"currency" gorm:"default:'INR'"`
	RazorpayOrderID   string  `json:"razorpay_order_id" gorm:"uniqueIndex;not null"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpaySignature string  `json:"razorpay_signature"`
	Status            string  `json:"status" gorm:"default:'PENDING';index"` // PENDING, SUCCESS, FAILED
	User              User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course            Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
