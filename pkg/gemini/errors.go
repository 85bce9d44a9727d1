package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// QuotaError indicates the API key's quota is exhausted (HTTP 429 /
// RESOURCE_EXHAUSTED). Callers recover by rotating credentials.
type QuotaError struct {
	Model  string
	Status string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("gemini: quota exceeded for model %s (%s)", e.Model, e.Status)
}

// ModelNotFoundError indicates the requested model does not exist or is not
// supported by the API version (HTTP 404 / NOT_FOUND). Callers recover by
// falling back to the next candidate model.
type ModelNotFoundError struct {
	Model  string
	Status string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("gemini: model %s not found (%s)", e.Model, e.Status)
}

// IsQuota reports whether the error chain contains a quota-exhaustion failure.
func IsQuota(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}

// IsModelNotFound reports whether the error chain contains an unknown-model
// failure. A string heuristic covers providers that report missing models as
// generic errors rather than a 404.
func IsModelNotFound(err error) bool {
	if err == nil {
		return false
	}
	var me *ModelNotFoundError
	if errors.As(err, &me) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
