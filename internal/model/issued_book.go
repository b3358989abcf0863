package model

// DateLayout is the format of BorrowDate and ReturnDate.
const DateLayout = "2006-01-02"

// IssuedBook is a loan of one copy of a book to a user.
type IssuedBook struct {
	ID         string `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);not null;index"`
	BookID     string `json:"book_id" gorm:"type:varchar(36);not null;index"`
	BorrowDate string `json:"borrow_date" gorm:"type:varchar(10);not null"`
	ReturnDate string `json:"return_date" gorm:"type:varchar(10);not null;index"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Book *Book `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

func (IssuedBook) TableName() string { return "issuedBook" }
