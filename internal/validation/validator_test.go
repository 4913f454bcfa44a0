package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/domain"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()
	typ := domain.NoteType("recipe")
	long := strings.Repeat("x", 201)

	err := v.Struct(&domain.NoteFields{Type: &typ, Title: &long, Count: domain.Qty(-1)})
	require.Error(t, err)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "must be one of: history harvest", ve.Fields["type"])
	assert.Equal(t, "must not exceed 200 characters", ve.Fields["title"])
	assert.Equal(t, "must be greater than or equal to 0", ve.Fields["count"])
}

func TestStructAcceptsMinimalInput(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(&domain.CultureFields{}))
	assert.NoError(t, v.Struct(&domain.CultureFields{Name: domain.String("Pepper"), PlantCount: domain.Qty(0)}))
	assert.NoError(t, v.Struct(&domain.HarvestFields{Count: domain.Qty(15)}))
}

func TestVar(t *testing.T) {
	v := New()

	err := v.Var("name", "", "required")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "name is required")

	assert.NoError(t, v.Var("name", "Pepper", "required"))
}

func TestIsValidationErrorWrapped(t *testing.T) {
	err := fmt.Errorf("create culture: %w", &Error{Message: "validation failed"})
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("disk full")))
}
