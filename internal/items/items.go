// Package items stores the sample items served by the JSON API.
package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the created_at format, RFC 3339 in UTC.
const TimeLayout = "2006-01-02T15:04:05Z"

var (
	ErrNotFound    = errors.New("item not found")
	ErrInvalidItem = errors.New("invalid item")
)

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// NewItem is the create request. Name is required.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate reports ErrInvalidItem when the name is missing.
func (n NewItem) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	return nil
}

// Repository is the item store.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, in NewItem) (Item, error)
	Ping(ctx context.Context) error
}

// Seed returns the two items every fresh store starts with.
func Seed() []Item {
	return []Item{
		{ID: 1, Name: "Item A", Description: "The first sample item.", CreatedAt: "2024-01-15T10:00:00Z"},
		{ID: 2, Name: "Item B", Description: "The second sample item.", CreatedAt: "2024-01-16T11:00:00Z"},
	}
}

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
