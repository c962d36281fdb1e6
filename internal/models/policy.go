package models

import "time"

type Policy struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	OwnerID      int       `gorm:"column:owner" json:"owner"`
	Date         time.Time `json:"date"`
	Votes        int       `gorm:"default:0" json:"votes"`
	AcademicYear int       `gorm:"index" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePolicyRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Date         int64  `json:"date"` // epoch seconds
	AcademicYear int    `json:"academic_year"`
}

// PolicyYearGroup is one entry of the grouped listing, newest academic year first.
type PolicyYearGroup struct {
	AcademicYear int      `json:"academic_year"`
	Policies     []Policy `json:"policies"`
}
