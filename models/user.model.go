package models

import "gorm.io/gorm"

// User mirrors an account minted by the external identity provider. The
// provider owns credentials and the role claim; only the subject id and
// profile basics are stored locally, synced at first login.
type User struct {
	gorm.Model
	SubjectID string `json:"subject_id" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Name      string `json:"name" gorm:"default:''"`
	Phone     string `json:"phone" gorm:"default:''"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	IsDeleted bool   `gorm:"default:false"`
}
