/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package windowerr defines the error kinds raised while constructing windows.
package windowerr

import (
	"errors"
	"fmt"
)

// ErrKind classifies a window error
type ErrKind int16

const (
	Eval     ErrKind = iota // The condition or return evaluator failed
	Internal                // Invalid clause or out of range access, never recoverable
	Unknown                 // Unknown err kind
)

func (ek ErrKind) String() string {
	switch ek {
	case Eval:
		return "EvalError"
	case Internal:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// WindowError carries the kind of failure together with an optional cause.
type WindowError struct {
	errKind    ErrKind
	errMessage string
	cause      error
}

func New(kind ErrKind, msg string) *WindowError {
	return &WindowError{
		errKind:    kind,
		errMessage: msg,
	}
}

func Newf(kind ErrKind, format string, args ...any) *WindowError {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap returns a WindowError of the given kind whose cause is err.
func Wrap(kind ErrKind, err error, msg string) *WindowError {
	return &WindowError{
		errKind:    kind,
		errMessage: msg,
		cause:      err,
	}
}

func (e *WindowError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.errKind, e.errMessage, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.errKind, e.errMessage)
}

func (e *WindowError) Unwrap() error {
	return e.cause
}

func (e *WindowError) ErrorKind() ErrKind {
	return e.errKind
}

func (e *WindowError) ErrorMessage() string {
	return e.errMessage
}

// FromError gets error information from the WindowError
func FromError(err error) (winErr *WindowError, ok bool) {
	if err == nil {
		return nil, true
	}
	var we *WindowError
	if errors.As(err, &we) {
		return we, true
	}
	return &WindowError{errKind: Unknown, errMessage: err.Error(), cause: err}, false
}

// IsInternal reports whether err, or any error it wraps, is an InternalError.
func IsInternal(err error) bool {
	we, ok := FromError(err)
	return ok && we != nil && we.ErrorKind() == Internal
}

// IsEval reports whether err, or any error it wraps, is an EvalError.
func IsEval(err error) bool {
	we, ok := FromError(err)
	return ok && we != nil && we.ErrorKind() == Eval
}
