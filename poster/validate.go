package poster

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Form limits.
const (
	MaxCodeLen         = 5
	MaxRequirementsLen = 180
)

var (
	// ErrIncomplete marks a record that cannot be exported yet.
	ErrIncomplete = errors.New("poster incomplete")
	// ErrInvalid marks a field that breaks a form limit.
	ErrInvalid = errors.New("poster invalid")
)

// Complete reports whether p can be exported.
func (p PosterData) Complete() bool {
	return !blank(p.Title) && !blank(p.Location) && !blank(p.Code)
}

// Complete reports whether c can be exported.
func (c CompiledPosterData) Complete() bool {
	return !blank(c.Location) && len(c.FilledJobs()) > 0
}

// Validate lists every reason p cannot be exported. Rendering never calls
// it: an incomplete record still renders with placeholders.
func (p PosterData) Validate() error {
	var errs []error
	if blank(p.Title) {
		errs = append(errs, fmt.Errorf("%w: title is empty", ErrIncomplete))
	}
	if blank(p.Location) {
		errs = append(errs, fmt.Errorf("%w: location is empty", ErrIncomplete))
	}
	if blank(p.Code) {
		errs = append(errs, fmt.Errorf("%w: code is empty", ErrIncomplete))
	} else if n := utf8.RuneCountInString(strings.TrimSpace(p.Code)); n > MaxCodeLen {
		errs = append(errs, fmt.Errorf("%w: code has %d characters, limit is %d", ErrInvalid, n, MaxCodeLen))
	}
	if err := checkRequirements(p.Requirements); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate lists every reason c cannot be exported.
func (c CompiledPosterData) Validate() error {
	var errs []error
	if blank(c.Location) {
		errs = append(errs, fmt.Errorf("%w: location is empty", ErrIncomplete))
	}
	if len(c.FilledJobs()) == 0 {
		errs = append(errs, fmt.Errorf("%w: no job has both code and title", ErrIncomplete))
	}
	if c.Variant == VariantWEG {
		errs = append(errs, fmt.Errorf("%w: compiled posters do not support %q", ErrInvalid, c.Variant))
	}
	if err := checkRequirements(c.Requirements); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkRequirements(s string) error {
	if n := utf8.RuneCountInString(s); n > MaxRequirementsLen {
		return fmt.Errorf("%w: requirements have %d characters, limit is %d", ErrInvalid, n, MaxRequirementsLen)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
