// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// ErrBlankText is returned for task text that is empty after trimming.
var ErrBlankText = errors.New("text is required")

// TaskText validates task text is non-empty after trimming whitespace.
func TaskText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankText
	}
	return nil
}

// TaskTextField returns a criterio validator for task text.
func TaskTextField(field, text string) error {
	return criterio.Run(field, text, TaskText)
}

// TaskTexts validates every text, reporting failures as "<prefix>[i].text"
// field errors. Returns nil when all texts are valid.
func TaskTexts(prefix string, texts []string) error {
	var errs criterio.FieldErrorsBuilder
	for i, text := range texts {
		if err := TaskText(text); err != nil {
			errs = errs.Append(fmt.Sprintf("%s[%d].text", prefix, i), err)
		}
	}
	return errs.ToError()
}
