package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid text", "buy milk", false},
		{"surrounding spaces", "  walk dog  ", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
		{"newline", "\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskText(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "TaskText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestTaskTextField(t *testing.T) {
	require.NoError(t, TaskTextField("text", "buy milk"))

	err := TaskTextField("text", " ")
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "text", fieldErrs[0].Field)
	assert.ErrorIs(t, fieldErrs[0].Err, ErrBlankText)
}

func TestTaskTexts(t *testing.T) {
	require.NoError(t, TaskTexts("records", []string{"a", "b"}))
	require.NoError(t, TaskTexts("records", nil))

	err := TaskTexts("records", []string{"a", "", "c", "  "})
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "records[1].text", fieldErrs[0].Field)
	assert.Equal(t, "records[3].text", fieldErrs[1].Field)
}
