package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an identifier unique with overwhelming probability
// within a process lifetime: a base-36 millisecond timestamp followed
// by a random fragment. No cross-process coordination is needed.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	frag := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return ts + "-" + frag
}
