package klv

import (
	"errors"
)

// Warnings is a list of non-fatal problems encountered while
// reading, writing or merging KLV data.
type Warnings []error

// Add appends a warning. It is a no-op on a nil receiver.
func (w *Warnings) Add(err error) {
	if w != nil && err != nil {
		*w = append(*w, err)
	}
}

// Extend appends all warnings of another list.
func (w *Warnings) Extend(o Warnings) {
	if w != nil {
		*w = append(*w, o...)
	}
}

// Err joins the warnings into a single error, or returns nil.
func (w Warnings) Err() error {
	return errors.Join(w...)
}
