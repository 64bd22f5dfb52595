package httputil

import "errors"

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)

// ValidationError is returned by BindData when the body could be parsed,
// but a value is not allowed.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return "the field '" + e.Field + "' must be set"
	case "gt", "gte", "lt", "lte", "min", "max":
		return "the value of '" + e.Field + "' must be " + e.Tag + " " + e.Param
	case "oneof":
		return "the value of '" + e.Field + "' must be one of: " + e.Param
	}

	return "the value of '" + e.Field + "' is invalid"
}
