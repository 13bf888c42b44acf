package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorParams                 = 200001
	ErrorMissingClientID        = 200002
	ErrorMalformedOverrideQuery = 200003
	ErrorModelCompletion        = 200004
	ErrorBackendUnavailable     = 200005
	ErrorDB                     = 200006
)

var ErrorMessages = map[int]string{
	ErrorParams:                 "invalid request parameters",
	ErrorMissingClientID:        "client identifier is missing",
	ErrorMalformedOverrideQuery: "override query is not valid JSON",
	ErrorModelCompletion:        "model completion failed",
	ErrorBackendUnavailable:     "backend unavailable",
	ErrorDB:                     "db error",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"-"`
}

// Error keeps the backend/parse reason attached: MalformedOverrideQuery and
// BackendUnavailable must surface the underlying detail to the caller.
func (err Error) Error() string {
	if err.InnerError != nil {
		return fmt.Sprintf("%s: %v", err.Message, err.InnerError)
	}
	return err.Message
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: innerError,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}
