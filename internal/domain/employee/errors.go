package employee

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrEmployeeNotFound      = fmt.Errorf("employee %w", ErrNotFound)
	ErrCertificationNotFound = fmt.Errorf("certification %w", ErrNotFound)
	ErrConfirmationRequired  = errors.New("deletion must be confirmed")
)
