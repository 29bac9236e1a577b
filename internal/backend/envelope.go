// Package backend is the command/query boundary the UI talks to. Every call
// answers with an Envelope carrying either data or an error message, the way a
// remote process would.
package backend

import (
	"errors"
	"fmt"
)

var ErrBackend = errors.New("backend: request failed")

type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

func Fail[T any](err error) Envelope[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Envelope[T]{Error: msg}
}

// Unwrap returns the payload of a successful envelope or an error wrapping
// ErrBackend.
func (e Envelope[T]) Unwrap() (T, error) {
	if !e.Success {
		var zero T
		msg := e.Error
		if msg == "" {
			msg = "no error message"
		}
		return zero, fmt.Errorf("%w: %s", ErrBackend, msg)
	}
	return e.Data, nil
}
