package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a library member or administrator.
type User struct {
	ID       string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:16;not null;default:'user';check:chk_user_role,role IN ('admin','user')"`
	Year     string `json:"year" gorm:"size:8;not null"`
	Branch   string `json:"branch" gorm:"size:8;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password string `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
}

// TableName keeps the table name singular.
func (User) TableName() string { return "user" }

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
