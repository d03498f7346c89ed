package errors

import (
	"bytes"
	"fmt"
	"maps"
	"sync/atomic"
	"text/template"
)

type Code string

// New declares a sentinel error for the code. Sentinels are never mutated:
// WithDetail and WithCause return copies that still match the sentinel
// through errors.Is.
func (c Code) New(msg string) *Error {
	return &Error{
		Code:    c,
		Message: msg,
		Details: make(map[string]any),
	}
}

// WithPrefix returns a generator of sequential codes such as APP_0001.
func WithPrefix(prefix string) func() Code {
	var counter atomic.Int64
	return func() Code {
		return Code(fmt.Sprintf("%s_%04d", prefix, counter.Add(1)))
	}
}

type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *Error) Error() string {
	msg := e.render()
	if msg == "" {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) render() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = e.Message
		}
	}()

	t, err := template.New("error").Option("missingkey=zero").Parse(e.Message)
	if err != nil {
		return e.Message
	}

	var buf bytes.Buffer
	if err = t.Execute(&buf, e.Details); err != nil {
		return e.Message
	}
	return buf.String()
}

func (e *Error) clone() *Error {
	details := make(map[string]any, len(e.Details)+1)
	maps.Copy(details, e.Details)
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

func (e *Error) WithCause(err error) *Error {
	cp := e.clone()
	cp.Cause = err
	return cp
}

func (e *Error) WithDetail(key string, value any) *Error {
	cp := e.clone()
	cp.Details[key] = value
	return cp
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
