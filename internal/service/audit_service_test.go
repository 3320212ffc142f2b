package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/service"
)

type fakeStream struct {
	enabled bool
	err     error
	entries []map[string]any
	streams []string
}

func (f *fakeStream) Enabled() bool { return f.enabled }

func (f *fakeStream) AppendStream(_ context.Context, stream string, values map[string]any) error {
	f.streams = append(f.streams, stream)
	f.entries = append(f.entries, values)
	return f.err
}

type authCounter struct {
	events []string
}

func (a *authCounter) RecordAuthEvent(eventType string) {
	a.events = append(a.events, eventType)
}

func TestAuditService_RecordsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	stream := &fakeStream{enabled: true}
	counter := &authCounter{}
	service.NewAuditService(dispatcher, nil, stream, counter).RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, "u-1", "stu1234")))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginFailed, "", "ghost")))

	assert.Equal(t, []string{"user_registered", "login_failed"}, counter.events)
	require.Len(t, stream.entries, 2)
	assert.Equal(t, []string{service.AuditStream, service.AuditStream}, stream.streams)
	assert.Equal(t, "u-1", stream.entries[0]["user_id"])
	assert.Equal(t, "ghost", stream.entries[1]["login_code"])
}

func TestAuditService_DisabledStream(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	stream := &fakeStream{enabled: false}
	service.NewAuditService(dispatcher, nil, stream, nil).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventUserLoggedIn, "u-1", "stu1234")))
	assert.Empty(t, stream.entries)
}

func TestAuditService_StreamFailureDoesNotFailLogin(t *testing.T) {
	f := newAuthFixture(t)
	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, nil, &fakeStream{enabled: true, err: errors.New("redis down")}, nil).RegisterHandlers()

	svc, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:   f.users,
		Hasher:     hasherForTests(),
		Tokens:     f.tokens,
		Dispatcher: dispatcher,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), service.RegisterInput{LoginCode: "stu1234", Password: "s3cret1"})
	assert.NoError(t, err)
}

type stalledStream struct{}

func (stalledStream) Enabled() bool { return true }

func (stalledStream) AppendStream(ctx context.Context, _ string, _ map[string]any) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestAuditService_StreamAppendIsBounded(t *testing.T) {
	f := newAuthFixture(t)
	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, nil, stalledStream{}, nil).
		WithStreamTimeout(20 * time.Millisecond).
		RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, "", "ghost"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	svc, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:   f.users,
		Hasher:     hasherForTests(),
		Tokens:     f.tokens,
		Dispatcher: dispatcher,
	})
	require.NoError(t, err)

	started := time.Now()
	_, err = svc.Register(context.Background(), service.RegisterInput{LoginCode: "stu1234", Password: "s3cret1"})
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 2*time.Second)
}
