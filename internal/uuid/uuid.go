// Package uuid binds UUIDs in URI paths and query strings.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that gin can bind from a parameter.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses a path or query parameter. An empty parameter is
// the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}

// IsNil reports whether the UUID is the Nil UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}
