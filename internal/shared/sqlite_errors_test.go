package shared

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsSQLiteConflictError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", errors.New("exec: SQLITE_BUSY"), true},
		{"locked", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"wrapped", fmt.Errorf("record activity: %w", errors.New("database is locked")), true},
		{"other", errors.New("no such table: activities"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSQLiteConflictError(tt.err); got != tt.want {
				t.Errorf("IsSQLiteConflictError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsSQLiteBusyError_NotLocked(t *testing.T) {
	err := errors.New("database is locked")
	if IsSQLiteBusyError(err) {
		t.Error("plain lock message should not classify as SQLITE_BUSY")
	}
	if !IsSQLiteLockedError(err) {
		t.Error("expected lock message to classify as locked")
	}
}
