package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
		name string
	}{
		{NotFound("player %s not found", "p1"), ErrNotFound, "NOT_FOUND"},
		{DataValidation("table %s is missing required columns: %s", "players", "name"), ErrDataValidation, "DATA_VALIDATION"},
		{MissingDependency("postgres export requires DATABASE_URL"), ErrMissingDependency, "MISSING_DEPENDENCY"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.kind)
		assert.Equal(t, tt.name, Kind(tt.err))
		assert.Equal(t, tt.name, Kind(fmt.Errorf("outer: %w", tt.err)))
	}
	assert.Equal(t, "INTERNAL", Kind(errors.New("boom")))
	assert.Equal(t, "", Kind(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrDataValidation, os.ErrClosed, "read parquet table %s", "games")

	assert.ErrorIs(t, err, ErrDataValidation)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, "read parquet table games: "+os.ErrClosed.Error(), err.Error())
}
