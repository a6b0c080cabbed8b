package domain

import (
	"errors"
	"fmt"
)

var (
	ErrParse              = errors.New("knowledge base parse error")
	ErrEmptyKnowledgeBase = errors.New("knowledge base is empty")
	ErrEmptyQuery         = errors.New("query is empty")
	ErrInvalidParameter   = errors.New("invalid parameter")
)

// ParseError reports a knowledge base source that could not be read.
type ParseError struct {
	Source string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse " + e.Source + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError builds a ParseError with a formatted reason.
func NewParseError(source string, err error, format string, args ...any) *ParseError {
	return &ParseError{Source: source, Reason: fmt.Sprintf(format, args...), Err: err}
}
