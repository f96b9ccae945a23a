package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCauseAndCode(t *testing.T) {
	err := Wrap(CodeDataAccess, sql.ErrConnDone, "query products")
	wrapped := fmt.Errorf("generate quote: %w", err)

	require.True(t, IsCode(wrapped, CodeDataAccess))
	assert.ErrorIs(t, wrapped, sql.ErrConnDone)
	assert.Equal(t, "query products", As(wrapped).Message())
	assert.Contains(t, err.Error(), "DATA_ACCESS_FAULT")
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Nil(t, As(nil))
	assert.False(t, IsCode(nil, CodeProductNotFound))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, CodeProductNotFound.Recoverable())
	assert.True(t, CodeInvalidQuantity.Recoverable())
	assert.False(t, CodeDataAccess.Recoverable())
	assert.False(t, CodeSchemaMismatch.Recoverable())
}

func TestNilError(t *testing.T) {
	var e *Error
	assert.Equal(t, CodeInternal, e.Code())
	assert.Equal(t, "", e.Error())
	assert.Nil(t, e.Unwrap())
}
