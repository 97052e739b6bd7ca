package http

import (
	"net/http"

	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/service"
	"github.com/gin-gonic/gin"
)

// BookHandlers contains HTTP handlers for book endpoints
type BookHandlers struct {
	books *service.BookService
}

// NewBookHandlers creates new book handlers
func NewBookHandlers(books *service.BookService) *BookHandlers {
	return &BookHandlers{books: books}
}

// BookRequest carries a book's fields for create and update
type BookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Publisher     string `json:"publisher" binding:"required"`
	PublishedDate string `json:"published_date" binding:"required"`
	PageCount     int    `json:"page_count" binding:"required"`
	Language      string `json:"language" binding:"required"`
}

// List returns all books
func (h *BookHandlers) List(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// ListByUser returns all books submitted by one user
func (h *BookHandlers) ListByUser(c *gin.Context) {
	books, err := h.books.ListByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create stores a new book owned by the authenticated user. The owner comes
// straight from the token claims; no identity lookup is needed here.
func (h *BookHandlers) Create(c *gin.Context) {
	claims, ok := tokenClaims(c)
	if !ok {
		abortWithError(c, core.ErrMissingToken)
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	book := &core.Book{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	}

	if err := h.books.Create(c.Request.Context(), book, claims.User.UserUID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// Get returns a book by uid
func (h *BookHandlers) Get(c *gin.Context) {
	book, err := h.books.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update rewrites a book's fields
func (h *BookHandlers) Update(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	book, err := h.books.Update(c.Request.Context(), c.Param("uid"), service.BookUpdate{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book by uid
func (h *BookHandlers) Delete(c *gin.Context) {
	if err := h.books.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
