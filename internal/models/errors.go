package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrReferenceNotFound = errors.New("a resource referenced by your request does not exist")
	ErrResourceInUse     = errors.New("the resource is still referenced by other resources and cannot be deleted")
)

var (
	ErrWeekNotUnique     = errors.New("a week with this year and number already exists")
	ErrWeekNumberInvalid = errors.New("the week number must be between 1 and 53")
	ErrWeekDatesInvalid  = errors.New("the end date of a week must not be before its start date")
)

var (
	ErrArticleReferenceNotUnique = errors.New("the article reference must be unique")
	ErrArticleReferenceEmpty     = errors.New("the article reference must not be empty")
	ErrTimePerUnitNegative       = errors.New("the time per unit must not be negative")
)

var (
	ErrOrderNumberNotUnique = errors.New("the order number must be unique")
	ErrOrderNumberEmpty     = errors.New("the order number must not be empty")
	ErrOrderQuantityInvalid = errors.New("the order quantity must not be negative")
)

var (
	ErrAllocationNotUnique        = errors.New("there already is an allocation for this order and week")
	ErrAllocationQuantityNegative = errors.New("allocation quantities must not be negative")
)
