package repository

import (
	"strings"

	"gorm.io/gorm"
)

// FeedCondition is a single predicate on the pins table. Conditions are
// combined with AND by FeedFilter.
type FeedCondition interface {
	clause() (string, []any)
}

// TextMatch matches pins whose title or description contains the query,
// case-insensitively.
type TextMatch struct {
	Query string
}

func (t TextMatch) clause() (string, []any) {
	pattern := "%" + escapeLike(t.Query) + "%"
	return "(LOWER(pins.title) LIKE LOWER(?) OR LOWER(pins.description) LIKE LOWER(?))",
		[]any{pattern, pattern}
}

// TagMatch matches pins whose tag set contains the given tag exactly.
// Tags are stored as a JSON array string, so matching the quoted tag as a
// substring is an exact membership test.
type TagMatch struct {
	Tag string
}

func (t TagMatch) clause() (string, []any) {
	pattern := `%"` + escapeLike(strings.ToLower(t.Tag)) + `"%`
	return "pins.tags LIKE ?", []any{pattern}
}

// OwnerPins restricts the feed to pins created by one user.
type OwnerPins struct {
	UserID uint
}

func (o OwnerPins) clause() (string, []any) {
	return "pins.creator_id = ?", []any{o.UserID}
}

// OwnerSaves restricts the feed to pins saved by one user.
type OwnerSaves struct {
	UserID uint
}

func (o OwnerSaves) clause() (string, []any) {
	return "pins.id IN (SELECT pin_id FROM saves WHERE saves.user_id = ?)", []any{o.UserID}
}

// SentinelEmpty matches no rows. It replaces owner conditions when the
// requested owner does not exist or the viewer may not see their pins, so
// the query still runs and returns an empty page rather than an error.
type SentinelEmpty struct{}

func (SentinelEmpty) clause() (string, []any) {
	return "pins.creator_id = 0", nil
}

// FeedFilter accumulates conditions for a feed query. The zero value is an
// unfiltered feed.
type FeedFilter struct {
	conds []FeedCondition
}

// Add appends a condition to the filter.
func (f *FeedFilter) Add(c FeedCondition) *FeedFilter {
	f.conds = append(f.conds, c)
	return f
}

// Conditions returns the accumulated conditions in insertion order.
func (f *FeedFilter) Conditions() []FeedCondition {
	return f.conds
}

// Empty reports whether no conditions have been added.
func (f *FeedFilter) Empty() bool {
	return len(f.conds) == 0
}

// Apply attaches every condition to the query as an AND-combined WHERE chain.
func (f *FeedFilter) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range f.conds {
		sql, args := c.clause()
		db = db.Where(sql, args...)
	}
	return db
}

// escapeLike neutralizes LIKE metacharacters in user-supplied query text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
