package schema_test

import (
	"testing"

	"github.com/gabinete-digital/gabinete-api/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	cols := schema.Columns{
		"id":   {Required: true},
		"name": {Required: false},
	}

	tests := []struct {
		name            string
		cols            schema.Columns
		payload         any
		notAllowed      []string
		missingRequired []string
	}{
		{
			name:            "empty payload reports required columns",
			cols:            cols,
			payload:         map[string]any{},
			notAllowed:      []string{},
			missingRequired: []string{"id"},
		},
		{
			name:            "unknown field is not allowed",
			cols:            schema.Columns{"id": {Required: true}},
			payload:         map[string]any{"id": "x", "extra": "y"},
			notAllowed:      []string{"extra"},
			missingRequired: []string{},
		},
		{
			name:            "non map payload",
			cols:            cols,
			payload:         []any{"id"},
			notAllowed:      []string{},
			missingRequired: []string{"id"},
		},
		{
			name:            "nil payload",
			cols:            cols,
			payload:         nil,
			notAllowed:      []string{},
			missingRequired: []string{"id"},
		},
		{
			name:            "null and empty string count as missing",
			cols:            schema.Columns{"a": {Required: true}, "b": {Required: true}, "c": {Required: true}},
			payload:         map[string]any{"a": nil, "b": "", "c": 0},
			notAllowed:      []string{},
			missingRequired: []string{"a", "b"},
		},
		{
			name:            "false and zero are present values",
			cols:            schema.Columns{"ativo": {Required: true}, "n": {Required: true}},
			payload:         map[string]any{"ativo": false, "n": 0.0},
			notAllowed:      []string{},
			missingRequired: []string{},
		},
		{
			name:            "both problems sorted",
			cols:            schema.Columns{"z": {Required: true}, "m": {Required: true}, "opt": {}},
			payload:         map[string]any{"q": 1, "b": 2, "opt": "x"},
			notAllowed:      []string{"b", "q"},
			missingRequired: []string{"m", "z"},
		},
		{
			name:            "named map type",
			cols:            cols,
			payload:         map[string]string{"id": "x"},
			notAllowed:      []string{},
			missingRequired: []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := schema.Validate(tc.cols, tc.payload)
			assert.Equal(t, tc.notAllowed, result.NotAllowed)
			assert.Equal(t, tc.missingRequired, result.MissingRequired)
			assert.Equal(t, len(tc.notAllowed) == 0 && len(tc.missingRequired) == 0, result.Valid())
		})
	}
}

func TestValidateReportsEachUnknownKeyOnce(t *testing.T) {
	t.Parallel()

	cols := schema.Columns{"id": {Required: true}}
	payload := map[string]any{"id": "1", "x": 1, "y": 2, "z": 3}

	result := schema.Validate(cols, payload)
	assert.ElementsMatch(t, []string{"x", "y", "z"}, result.NotAllowed)
	assert.Len(t, result.NotAllowed, 3)
}

func TestColumnsNames(t *testing.T) {
	t.Parallel()

	cols := schema.Columns{"b": {}, "a": {Required: true}}
	assert.Equal(t, []string{"a", "b"}, cols.Names())
	assert.True(t, cols.Has("a"))
	assert.False(t, cols.Has("c"))
}
