// Package repository wraps the record store so every read, update and delete
// is confined to the caller's own records. Absent records and records owned
// by someone else are both reported as ErrNotFound; callers can never tell
// the two apart.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound covers both "no such record" and "record owned by another
// identity".
var ErrNotFound = errors.New("repository: record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
