package db

import (
	"errors"
	"testing"
)

func TestIsQueryRejection(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Syntax error at offset 3 near title", true},
		{"Unknown field at offset 0 near nope", true},
		{"Bad arguments for FILTER: Could not convert argument to expected type", true},
		{"Invalid numeric range", true},
		{"Expected a number", true},
		{"LOADING Redis is loading the dataset in memory", false},
		{"BUSY Redis is busy running a script", false},
		{"READONLY You can't write against a read only replica.", false},
		{"NOAUTH Authentication required.", false},
		{"WRONGPASS invalid username-password pair or user is disabled.", false},
		{"OOM command not allowed when used memory > 'maxmemory'.", false},
		{"Timeout limit was reached", false},
		{"ERR something unexpected happened", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := IsQueryRejection(tt.msg); got != tt.want {
				t.Errorf("IsQueryRejection(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpSearch, Err: ErrQueryRejected}
	if !errors.Is(err, ErrQueryRejected) {
		t.Error("expected errors.Is through *Error")
	}
	if err.Error() != "FT.SEARCH: db: query rejected" {
		t.Errorf("Error() = %q", err.Error())
	}
}
