// Package errors provides the sentinel errors of the admin service.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrReportNotFound = errors.New("report not found")

var ErrInvalidStatus = errors.New("invalid order status")
var ErrInvalidCategory = errors.New("invalid category")
var ErrNegativePrice = errors.New("price must not be negative")
var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")
var ErrValidation = errors.New("validation failed")

var ErrDateRangeRequired = errors.New("please select a date range")
var ErrInvalidDateRange = errors.New("date range start must not be after end")
var ErrUnknownReportType = errors.New("unknown report type")

var ErrMalformedCSV = errors.New("CSV must have header and at least one product")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
