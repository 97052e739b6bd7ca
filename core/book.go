package core

import "time"

// Book is a book submission owned by a user
type Book struct {
	UID           string    `json:"uid"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	UserUID       string    `json:"user_uid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Review is a user's review of a book, rating 1-5
type Review struct {
	UID        string    `json:"uid"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	UserUID    string    `json:"user_uid"`
	BookUID    string    `json:"book_uid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
