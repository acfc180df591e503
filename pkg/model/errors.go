package model

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrLecturerNotFound   = errors.New("lecturer not found")
)
