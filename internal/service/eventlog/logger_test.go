package eventlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"katalog/internal/domain/models"
)

type fakeEventLogRepo struct {
	err     error
	actions []string
	details []string
}

func (f *fakeEventLogRepo) Add(ctx context.Context, action, details string) error {
	f.actions = append(f.actions, action)
	f.details = append(f.details, details)
	return f.err
}

func (f *fakeEventLogRepo) Latest(ctx context.Context, limit int) ([]models.EventLogEntry, error) {
	return nil, nil
}

func TestLog(t *testing.T) {
	repo := &fakeEventLogRepo{}
	l := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	l.Log(context.Background(), "ADD_PRODUCT", "Added product \"Krem\"")

	if len(repo.actions) != 1 || repo.actions[0] != "ADD_PRODUCT" {
		t.Errorf("actions = %v", repo.actions)
	}
	if repo.details[0] != "Added product \"Krem\"" {
		t.Errorf("details = %q", repo.details[0])
	}
}

func TestLog_SwallowsStorageFailure(t *testing.T) {
	repo := &fakeEventLogRepo{err: errors.New("connection refused")}
	l := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Must not panic and must not surface the error in any way.
	l.Log(context.Background(), "ASK_QUERY", "Question: ...")
}
