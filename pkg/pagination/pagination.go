// Package pagination implements keyset pagination over (created_at, id).
// Donation and ledger listings page newest-first; the opaque cursor names the
// last row of the previous page so a page boundary never shifts when new rows
// are inserted above it.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size when the caller does not ask for one.
	DefaultLimit = 25
	// MaxLimit bounds a single page regardless of what the caller asks for.
	MaxLimit = 100
)

// Params carries the raw pagination inputs from a listing request.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded keyset position. Both fields participate in the
// where-clause tuple comparison; the id breaks ties between rows created in
// the same instant.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested limit into [1, MaxLimit], substituting
// DefaultLimit for zero or negative values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer is the fetch size for one page: one extra row signals that
// another page exists without a separate count query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes a position as base64("<rfc3339nano>|<uuid>").
// The timestamp is normalized to UTC so the cursor round-trips regardless of
// the server timezone.
func EncodeCursor(cursor Cursor) string {
	raw := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + cursor.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a client-supplied cursor. An empty string is a valid
// "first page" cursor and yields (nil, nil); anything else that does not
// round-trip through EncodeCursor is rejected.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	stamp, rawID, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil, fmt.Errorf("invalid cursor format")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
