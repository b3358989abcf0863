package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a catalogue title with copy counters.
// NumberOfAvailable counts the copies not currently on loan.
type Book struct {
	ID                string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title             string `json:"title" gorm:"uniqueIndex;size:255;not null"`
	Author            string `json:"author" gorm:"size:255;not null"`
	NumberOfCopies    int    `json:"number_of_copies" gorm:"column:number_of_copies;not null;default:1"`
	NumberOfAvailable int    `json:"number_of_available" gorm:"column:number_of_available_books;not null;default:1"`
}

// NewBook returns a book with a single available copy.
func NewBook(title, author string) *Book {
	return &Book{
		ID:                uuid.New().String(),
		Title:             title,
		Author:            author,
		NumberOfCopies:    1,
		NumberOfAvailable: 1,
	}
}

func (Book) TableName() string { return "book" }

// BeforeCreate sets UUID before creating the record.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
