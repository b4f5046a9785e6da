package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit and MaxLimit bound page sizes for list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Cursor is the position of the last item of a page. Listings are ordered by
// (transaction_date DESC, transaction_id DESC), so the next page starts strictly after it.
type Cursor struct {
	TransactionDate time.Time
	TransactionID   string
}

// EncodeToken creates an opaque, URL-safe token for the given cursor.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.TransactionDate.Format(timeFormat), c.TransactionID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (transaction date parse): %w", err)
	}
	return Cursor{TransactionDate: date, TransactionID: parts[1]}, nil
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit], using DefaultLimit for
// anything non-positive.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
