package application

import (
	"context"
	"errors"

	"sojasapi/internal/domain/entities"
	"sojasapi/internal/infrastructure/memory"
)

type fakeSource struct {
	pages map[int]entities.RemotePage
	err   error
	calls []int
}

func (f *fakeSource) FetchEvents(_ context.Context, page int) (entities.RemotePage, error) {
	if page < 1 {
		page = 1
	}
	f.calls = append(f.calls, page)
	if f.err != nil {
		return entities.RemotePage{}, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return entities.RemotePage{}, errors.New("page not provided")
	}
	p.Page = page
	return p, nil
}

// failingEvents stores into a memory.Store but fails for one event ID.
type failingEvents struct {
	*memory.Store
	failOn int64
	err    error
}

func (f *failingEvents) UpsertRemote(ctx context.Context, event entities.RemoteEvent) error {
	if event.ID == f.failOn {
		return f.err
	}
	return f.Store.UpsertRemote(ctx, event)
}

type fakeProvider struct {
	loginFn    func(context.Context, string, string) (entities.LoginResult, error)
	validateFn func(context.Context, string) error
	validated  int
}

func (f *fakeProvider) Login(ctx context.Context, username, password string) (entities.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, password)
	}
	return entities.LoginResult{}, errors.New("loginFn not provided")
}

func (f *fakeProvider) ValidateToken(ctx context.Context, token string) error {
	f.validated++
	if f.validateFn != nil {
		return f.validateFn(ctx, token)
	}
	return nil
}

func remoteEvent(id int64, title string) entities.RemoteEvent {
	return entities.RemoteEvent{
		ID:      id,
		Title:   title,
		URL:     "https://pinkpolitiek.nl/event/" + title,
		Payload: []byte(`{"id":1}`),
	}
}
