package db

import (
	"errors"
	"slices"
	"strings"
)

// Sentinel errors for database operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	// ErrQueryRejected means the engine understood the request but refused the query itself.
	ErrQueryRejected = errors.New("db: query rejected")
)

// Op constants map to Redis command names for error context.
const (
	OpCreateIndex = "FT.CREATE"
	OpDropIndex   = "FT.DROPINDEX"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpHGetAll     = "HGETALL"
	OpHSet        = "HSET"
	OpSAdd        = "SADD"
	OpSMembers    = "SMEMBERS"
	OpSRandMember = "SRANDMEMBER"
	OpSCard       = "SCARD"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Reply classes of an unavailable or refusing server. These are never query faults.
var unavailableClasses = []string{
	"LOADING", "BUSY", "READONLY", "NOAUTH", "WRONGPASS", "NOPERM", "OOM",
	"MASTERDOWN", "CLUSTERDOWN", "TRYAGAIN", "MOVED", "ASK", "NOREPLICAS", "MISCONF",
}

// Fragments of the search module's replies to a query it cannot parse or apply.
var rejectionMarkers = []string{
	"syntax error", "unknown field", "no such field", "bad arguments",
	"unknown argument", "invalid", "expected",
}

// IsQueryRejection reports whether a server error reply blames the query itself.
// Timeouts and the server-state classes above are backend failures.
func IsQueryRejection(msg string) bool {
	class, _, _ := strings.Cut(msg, " ")
	if slices.Contains(unavailableClasses, class) {
		return false
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "timeout") {
		return false
	}
	for _, m := range rejectionMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
