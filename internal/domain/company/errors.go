package company

import "errors"

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrManagerCodeNotFound  = errors.New("manager code not found")
	ErrDuplicateCompanyCode = errors.New("company code already exists")
	ErrDuplicateManagerCode = errors.New("manager code already exists in this company")
	ErrInvalidCompanyCode   = errors.New("invalid company code")
	ErrInvalidManagerCode   = errors.New("invalid manager code")
)
