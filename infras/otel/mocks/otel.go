package mocks

import (
	"context"
	"sync"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
)

// Recorder is an in-memory otel.Otel. Every scope it opens writes into the same Recorder.
type Recorder struct {
	mu         sync.Mutex
	spans      []string
	events     []string
	errors     []error
	attributes map[string]any
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{attributes: map[string]any{}}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, &scope{recorder: r}
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

// Attribute returns the last value set for key by any scope.
func (r *Recorder) Attribute(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.attributes[key]

	return value, ok
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *scope) AddEvent(name string) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.events = append(s.recorder.events, name)
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.attributes[key] = value
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
