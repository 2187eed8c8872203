package board

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Sentinel categories that disable filtering.
var allCategories = map[string]struct{}{
	"all":   {},
	"todos": {},
}

// IsAllCategory reports whether category means "no filter".
func IsAllCategory(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return true
	}
	_, ok := allCategories[c]
	return ok
}

// IdentitySet is a set of anonymous identities stored as a postgres text[].
type IdentitySet []string

func (s IdentitySet) Value() (driver.Value, error) {
	if s == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(s).Value()
}

func (s *IdentitySet) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*s = IdentitySet(arr)
	return nil
}

func (IdentitySet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (s IdentitySet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Dedup returns a copy without duplicates or blank entries, preserving order.
func (s IdentitySet) Dedup() IdentitySet {
	out := make(IdentitySet, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, v := range s {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Toggle returns a copy with id removed when present, added otherwise.
// Duplicates are collapsed.
func (s IdentitySet) Toggle(id string) (IdentitySet, bool) {
	out := make(IdentitySet, 0, len(s)+1)
	seen := make(map[string]struct{}, len(s)+1)
	removed := false
	for _, v := range s {
		if v == id {
			removed = true
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if !removed {
		out = append(out, id)
	}
	return out, !removed
}

// Post is a board message. UserHash and LikedBy stay server-side; Liked is
// filled per reader.
type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserHash string    `gorm:"column:user_hash;type:text;not null;index" json:"-"`
	Content  string    `gorm:"column:content;type:text;not null" json:"content"`
	Category string    `gorm:"column:category;type:text;not null;index" json:"category"`

	LikesCount int         `gorm:"column:likes_count;not null;default:0" json:"likes_count"`
	LikedBy    IdentitySet `gorm:"column:liked_by;not null;default:'{}'" json:"-"`
	Version    int64       `gorm:"column:version;not null;default:0" json:"-"`

	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "post" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LikedBy == nil {
		p.LikedBy = IdentitySet{}
	}
	return nil
}
