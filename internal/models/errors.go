package models

import "errors"

var (
	// ErrNotFound marks a Lambda function or log group that no longer exists
	ErrNotFound = errors.New("resource not found")

	// ErrEnumeration marks a failure to list log groups, which aborts the scan
	ErrEnumeration = errors.New("log group enumeration failed")
)
