package recommendation

import "fmt"

// RecommendationError is a request the service refused to rank.
type RecommendationError struct {
	Code    string
	Message string
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidRequest = "invalidRequest"
	CodeInvalidWeights = "invalidWeights"
)

func newValidationError(format string, args ...any) error {
	return &RecommendationError{
		Code:    CodeInvalidRequest,
		Message: fmt.Sprintf(format, args...),
	}
}
