package item

import (
	"strings"
	"time"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// Comment is feedback left on an item by a user who has rented it.
type Comment struct {
	id         int64
	itemID     int64
	authorID   int64
	authorName string
	text       string
	created    time.Time
}

// NewComment creates a comment with non-blank text.
func NewComment(itemID, authorID int64, authorName, text string, created time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text must not be blank")
	}
	return &Comment{
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    created,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data (no validation).
func ReconstructComment(id, itemID, authorID int64, authorName, text string, created time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    created,
	}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) AuthorName() string { return c.authorName }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) Created() time.Time { return c.created }

// AssignID sets the identifier issued by the store on first save.
func (c *Comment) AssignID(id int64) {
	c.id = id
}
