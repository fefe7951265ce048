package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pulsehub/internal/domain"
	"pulsehub/internal/event"
	"pulsehub/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	inserted  []*domain.EventRecord
	insertErr error
}

func (f *fakeEventRepo) Insert(_ context.Context, rec *domain.EventRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, _ domain.EventListOptions) ([]*domain.EventRecord, int64, error) {
	return f.inserted, int64(len(f.inserted)), nil
}

func (f *fakeEventRepo) DeleteBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func (nopLogger) With(...any) logger.Logger { return nopLogger{} }

func TestPublishDispatchesEnvelope(t *testing.T) {
	bus := event.NewRegistry()
	repo := &fakeEventRepo{}
	svc := NewService(bus, repo, nopLogger{})

	var got *domain.Envelope
	bus.On("deploy.finished", func(args ...any) {
		got = args[0].(*domain.Envelope)
	})

	env, err := svc.Publish(context.Background(), domain.PublishRequest{
		Name:    "deploy.finished",
		Source:  "ci",
		Payload: json.RawMessage(`{"ok":true}`),
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, env, got)
	assert.Equal(t, "deploy.finished", got.Name)
	assert.Equal(t, "ci", got.Source)
	assert.JSONEq(t, `{"ok":true}`, string(got.Payload))
	assert.False(t, got.At.IsZero())

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, env.ID, repo.inserted[0].ID)
}

func TestPublishAuditFailureSkipsDispatch(t *testing.T) {
	bus := event.NewRegistry()
	repo := &fakeEventRepo{insertErr: errors.New("db down")}
	svc := NewService(bus, repo, nopLogger{})

	dispatched := false
	bus.On("deploy.finished", func(args ...any) { dispatched = true })

	_, err := svc.Publish(context.Background(), domain.PublishRequest{Name: "deploy.finished"})
	require.ErrorContains(t, err, "db down")
	assert.False(t, dispatched)
}

func TestEmitDispatchesDespiteAuditFailure(t *testing.T) {
	bus := event.NewRegistry()
	repo := &fakeEventRepo{insertErr: errors.New("db down")}
	svc := NewService(bus, repo, nopLogger{})

	var got *domain.Envelope
	bus.On(domain.UserRegisteredEvent, func(args ...any) {
		got = args[0].(*domain.Envelope)
	})

	svc.Emit(domain.UserRegisteredEvent, domain.EventUserRegistered{Email: "a@b.c"})

	require.NotNil(t, got)
	assert.Equal(t, "pulsehub", got.Source)
	assert.Contains(t, string(got.Payload), "a@b.c")
}

func TestFailEscalatesWithoutErrorListeners(t *testing.T) {
	bus := event.NewRegistry()
	svc := NewService(bus, &fakeEventRepo{}, nopLogger{})

	assert.Panics(t, func() {
		svc.Fail(errors.New("boom"))
	})
}

func TestFailDispatchesToErrorListeners(t *testing.T) {
	bus := event.NewRegistry()
	svc := NewService(bus, &fakeEventRepo{}, nopLogger{})

	var got error
	bus.On(domain.ErrorEvent, func(args ...any) {
		got = args[0].(error)
	})

	require.NotPanics(t, func() {
		svc.Fail(errors.New("boom"))
	})
	require.EqualError(t, got, "boom")
}

func TestListClampsPagination(t *testing.T) {
	bus := event.NewRegistry()
	repo := &fakeEventRepo{}
	svc := NewService(bus, repo, nopLogger{})

	_, _, err := svc.List(context.Background(), domain.EventListOptions{Page: -1, Limit: 5000})
	require.NoError(t, err)
}

func TestListenersSortedByName(t *testing.T) {
	bus := event.NewRegistry()
	svc := NewService(bus, &fakeEventRepo{}, nopLogger{})

	bus.On("zeta", func(args ...any) {})
	bus.On("alpha", func(args ...any) {})
	bus.On("alpha", func(args ...any) {})

	infos := svc.Listeners()
	require.Len(t, infos, 2)
	assert.Equal(t, domain.ListenerInfo{Name: "alpha", Count: 2}, infos[0])
	assert.Equal(t, domain.ListenerInfo{Name: "zeta", Count: 1}, infos[1])
}
