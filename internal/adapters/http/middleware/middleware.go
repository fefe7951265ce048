// Package middleware
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

type Stack struct {
	middlewares []Middleware
}

func New() *Stack {
	return &Stack{}
}

func (s *Stack) Use(mw Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Then wraps handler with the stack, outermost first.
func (s *Stack) Then(handler http.Handler) http.Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	return handler
}

func (s *Stack) Apply(handler http.Handler) http.Handler {
	return s.Then(handler)
}
