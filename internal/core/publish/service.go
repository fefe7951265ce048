// Package publish
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"pulsehub/internal/domain"
	"pulsehub/internal/event"
	"pulsehub/internal/logger"

	"github.com/google/uuid"
)

type Service struct {
	bus  *event.Registry
	repo domain.EventRepository
	log  logger.Logger
}

func NewService(bus *event.Registry, repo domain.EventRepository, log logger.Logger) *Service {
	return &Service{
		bus:  bus,
		repo: repo,
		log:  log,
	}
}

// Publish stamps the request into an envelope, records it on the audit
// trail and dispatches it through the registry. Dispatch is synchronous:
// every subscriber has run by the time Publish returns.
func (s *Service) Publish(ctx context.Context, req domain.PublishRequest) (*domain.Envelope, error) {
	env := &domain.Envelope{
		ID:      uuid.New(),
		Name:    req.Name,
		Source:  req.Source,
		Payload: req.Payload,
		At:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, &domain.EventRecord{
		ID:      env.ID,
		Name:    env.Name,
		Source:  env.Source,
		Payload: env.Payload,
		At:      env.At,
	}); err != nil {
		return nil, fmt.Errorf("audit insert failed: %w", err)
	}

	s.bus.Emit(env.Name, env)

	return env, nil
}

// Emit is the internal producer path: it wraps payload in an envelope and
// dispatches it like Publish. A failed audit write is logged but does not
// suppress dispatch.
func (s *Service) Emit(name string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("event: payload marshal failed", "event", name, "error", err)
		return
	}

	env := &domain.Envelope{
		ID:      uuid.New(),
		Name:    name,
		Source:  "pulsehub",
		Payload: raw,
		At:      time.Now().UTC(),
	}

	if err := s.repo.Insert(context.Background(), &domain.EventRecord{
		ID:      env.ID,
		Name:    env.Name,
		Source:  env.Source,
		Payload: env.Payload,
		At:      env.At,
	}); err != nil {
		s.log.Error("event: audit insert failed", "event", name, "error", err)
	}

	s.bus.Emit(env.Name, env)
}

// Fail reports err through the conventional "error" event. When nothing
// listens, the failure is escalated instead of swallowed; the registry
// itself never special-cases the name.
func (s *Service) Fail(err error) {
	if s.bus.ListenerCount(domain.ErrorEvent) == 0 {
		panic(fmt.Sprintf("unhandled error event: %v", err))
	}

	s.bus.Emit(domain.ErrorEvent, err)
}

func (s *Service) List(ctx context.Context, opts domain.EventListOptions) ([]*domain.EventRecord, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		opts.Limit = 20
	}

	return s.repo.List(ctx, opts)
}

// Listeners reports the current subscription table, sorted by event name.
func (s *Service) Listeners() []domain.ListenerInfo {
	names := s.bus.EventNames()
	sort.Strings(names)

	infos := make([]domain.ListenerInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, domain.ListenerInfo{
			Name:  name,
			Count: s.bus.ListenerCount(name),
		})
	}
	return infos
}
