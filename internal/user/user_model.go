package user

import "gorm.io/gorm"

const RoleAdmin = "ADMIN"

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:ADMIN" json:"role"`
}
