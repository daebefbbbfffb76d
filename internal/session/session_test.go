package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pdfbinder/internal/batch"
	"go-pdfbinder/internal/bookmark"
)

func TestCreateSession(t *testing.T) {
	sm := NewSessionManager()
	s := sm.CreateSession("/out", bookmark.Defaults(), 0)

	got, ok := sm.GetSession(s.ID)
	require.True(t, ok)
	v := got.View()
	assert.Equal(t, "/out", v.OutputDir)
	assert.Equal(t, StatusIdle, v.Status)
	assert.Len(t, v.Bookmarks, 5)

	sm.DeleteSession(s.ID)
	_, ok = sm.GetSession(s.ID)
	assert.False(t, ok)
}

func TestRunLifecycle(t *testing.T) {
	s := NewSessionManager().CreateSession("/out", nil, 0)
	s.SetFolders("/in", "")
	_, err := s.AddBookmark("1", "封面")
	require.NoError(t, err)

	ctx, req, err := s.BeginRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/in", req.InputDir)
	assert.Equal(t, "/out", req.OutputDir)
	require.Len(t, req.Rows, 1)

	_, err = s.AddBookmark("2", "正文")
	require.NoError(t, err)
	assert.Len(t, req.Rows, 1, "request is a snapshot")

	_, _, err = s.BeginRun(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	assert.True(t, s.Cancel())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	s.FinishRun(batch.Summary{Dirs: 1}, ctx.Err())

	v := s.View()
	assert.Equal(t, StatusCancelled, v.Status)
	assert.Equal(t, 1, v.Summary.Dirs)
	assert.False(t, s.Cancel())
}

func TestFinishRunStatuses(t *testing.T) {
	s := NewSessionManager().CreateSession("/out", nil, 0)

	_, _, err := s.BeginRun(context.Background())
	require.NoError(t, err)
	s.FinishRun(batch.Summary{}, errors.New("boom"))
	assert.Equal(t, StatusFailed, s.View().Status)
	assert.Equal(t, "boom", s.View().LastError)

	_, _, err = s.BeginRun(context.Background())
	require.NoError(t, err)
	s.FinishRun(batch.Summary{Merged: 2}, nil)
	assert.Equal(t, StatusDone, s.View().Status)
	assert.Empty(t, s.View().LastError)
}

func TestExpireKeepsRunningSessions(t *testing.T) {
	sm := NewSessionManager()
	idle := sm.CreateSession("/out", nil, 0)
	running := sm.CreateSession("/out", nil, 0)
	_, _, err := running.BeginRun(context.Background())
	require.NoError(t, err)

	idle.CreatedAt = time.Now().Add(-time.Hour)
	running.CreatedAt = time.Now().Add(-time.Hour)

	assert.Equal(t, 1, sm.Expire(time.Minute))
	_, ok := sm.GetSession(idle.ID)
	assert.False(t, ok)
	_, ok = sm.GetSession(running.ID)
	assert.True(t, ok)
}
