package analyses

import "strings"

// ValidationError reports one invalid query input.
type ValidationError struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Param + ": " + e.Message
}

// ValidationErrors collects every invalid input of one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
