package domain

import (
	"fmt"
	"strings"
	"time"
)

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == PostDraft || s == PostPublished
}

// ParsePostStatus accepts "draft" or "published" in any case.
func ParsePostStatus(s string) (PostStatus, error) {
	st := PostStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown post status %q", ErrValidation, s)
	}
	return st, nil
}

// Post is a content record owned by exactly one user for its whole lifetime.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"author_id"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostPatch carries the mutable fields of a post. Nil fields are left untouched.
// AuthorID cannot be patched.
type PostPatch struct {
	Title   *string
	Content *string
	Status  *PostStatus
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Status == nil
}

// Apply copies the set fields of the patch onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Status != nil {
		post.Status = *p.Status
	}
}
