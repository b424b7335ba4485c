package player

import (
	"mime/multipart"
	"time"

	"gorm.io/gorm"
)

// Player application statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidDecision reports whether s is a status an admin may move a player to.
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

type Player struct {
	gorm.Model
	FullName          string    `gorm:"not null" json:"fullName"`
	DOB               time.Time `gorm:"not null" json:"dob"`
	AadhaarNumber     string    `json:"aadhaarNumber,omitempty"`
	PrimaryPhone      string    `gorm:"not null" json:"primaryPhone"`
	AlternatePhone    string    `json:"alternatePhone,omitempty"`
	BloodGroup        string    `gorm:"not null" json:"bloodGroup"`
	MedicalConditions string    `json:"medicalConditions,omitempty"`
	PrimaryRole       string    `gorm:"not null" json:"primaryRole"`
	BattingProfile    string    `json:"battingProfile,omitempty"`
	BowlingStyle      string    `json:"bowlingStyle,omitempty"`
	AllRounderType    string    `json:"allRounderType,omitempty"`
	ShirtSize         string    `gorm:"not null" json:"shirtSize"`
	PantSize          string    `gorm:"not null" json:"pantSize"`
	PreviousLeagues   string    `json:"previousLeagues,omitempty"`
	Instagram         string    `gorm:"not null" json:"instagram"`
	PhotoURL          string    `gorm:"not null" json:"photoUrl"`
	AadhaarPhotoURL   string    `gorm:"not null" json:"aadhaarPhotoUrl"`
	Status            string    `gorm:"not null;default:PENDING;index" json:"status"`
	UserID            *uint     `json:"userId,omitempty"` // unset on the public registration path
}

// RegisterRequest is the public registration multipart form.
type RegisterRequest struct {
	FullName          string `form:"fullName" binding:"required"`
	DOB               string `form:"dob" binding:"required"`
	AadhaarNumber     string `form:"aadhaarNumber"`
	PrimaryPhone      string `form:"primaryPhone" binding:"required"`
	AlternatePhone    string `form:"alternatePhone"`
	BloodGroup        string `form:"bloodGroup" binding:"required"`
	MedicalConditions string `form:"medicalConditions"`
	PrimaryRole       string `form:"primaryRole" binding:"required,oneof=Batsman Bowler All-Rounder"`
	BattingProfile    string `form:"battingProfile"`
	BowlingStyle      string `form:"bowlingStyle"`
	AllRounderType    string `form:"allRounderType"`
	ShirtSize         string `form:"shirtSize" binding:"required"`
	PantSize          string `form:"pantSize" binding:"required"`
	PreviousLeagues   string `form:"previousLeagues"`
	Instagram         string `form:"instagram" binding:"required"`

	Photo        *multipart.FileHeader `form:"photo" binding:"required"`
	AadhaarPhoto *multipart.FileHeader `form:"aadhaarPhoto" binding:"required"`
}

// StatusRequest is the body of a single moderation decision.
type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"APPROVED"`
}

// BulkStatusRequest applies one decision to a batch of players.
type BulkStatusRequest struct {
	PlayerIDs []uint `json:"player_ids" binding:"required,min=1"`
	Status    string `json:"status" binding:"required" example:"APPROVED"`
}
