package database

import (
	"errors"

	"socialfeed/internal/core/errs"

	"gorm.io/gorm"
)

// translate نبودن رکورد را به errs.ErrNotFound تبدیل می‌کند
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}
