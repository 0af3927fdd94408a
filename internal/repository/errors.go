// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by read paths when no entity has the requested id.
// Callers treat it as a control path, not a failure.
var ErrNotFound = errors.New("entity not found")

// ErrInvalid is returned when a record is rejected before any write
var ErrInvalid = errors.New("invalid record")

// translateError maps driver-level errors onto the repository sentinels
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
