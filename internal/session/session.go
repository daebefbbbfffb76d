// Package session manages operator sessions of the HTTP shell.
//
// Types:
//   - Session: One operator's folder fields, bookmark table, log and run state.
//   - SessionManager: Manages all active sessions.
//
// Expected outputs:
// - Session IDs are unique (UUID)
// - At most one batch runs per session at a time
// - Cleanup cancels a running batch
//
// The session is the only mutable state the shell keeps. Starting a run
// snapshots its folders and rows into a batch.Request, so edits made while a
// run is in progress never affect that run.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-pdfbinder/internal/batch"
	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/utils"
)

const (
	StatusIdle      = "idle"
	StatusRunning   = "running"
	StatusDone      = "done"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

var ErrRunInProgress = errors.New("a run is already in progress")

type Session struct {
	ID        string
	InputDir  string
	OutputDir string
	Table     *bookmark.Table
	Log       *logsink.Sink
	CreatedAt time.Time
	Status    string
	Summary   batch.Summary
	LastError string
	cancel    context.CancelFunc
	Mutex     sync.Mutex
}

// View is a consistent copy of a session for rendering.
type View struct {
	ID        string         `json:"id"`
	InputDir  string         `json:"inputDir"`
	OutputDir string         `json:"outputDir"`
	Bookmarks []bookmark.Row `json:"bookmarks"`
	Status    string         `json:"status"`
	Summary   batch.Summary  `json:"summary"`
	LastError string         `json:"lastError,omitempty"`
}

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession(outputDir string, rows []bookmark.Row, logLimit int) *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := &Session{
		ID:        utils.GenerateUUID(),
		OutputDir: outputDir,
		Table:     bookmark.NewTable(rows...),
		Log:       logsink.New(nil, logLimit),
		CreatedAt: time.Now(),
		Status:    StatusIdle,
	}
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	delete(sm.Sessions, id)
}

// Expire removes idle sessions older than maxAge. Running sessions are kept.
func (sm *SessionManager) Expire(maxAge time.Duration) int {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	n := 0
	for id, s := range sm.Sessions {
		if time.Since(s.CreatedAt) > maxAge && !s.Running() {
			s.Cleanup()
			delete(sm.Sessions, id)
			n++
		}
	}
	return n
}

func (s *Session) View() View {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return View{
		ID:        s.ID,
		InputDir:  s.InputDir,
		OutputDir: s.OutputDir,
		Bookmarks: s.Table.Rows(),
		Status:    s.Status,
		Summary:   s.Summary,
		LastError: s.LastError,
	}
}

// SetFolders updates the folder fields. Empty values leave a field unchanged.
func (s *Session) SetFolders(inputDir, outputDir string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if inputDir != "" {
		s.InputDir = inputDir
	}
	if outputDir != "" {
		s.OutputDir = outputDir
	}
}

func (s *Session) AddBookmark(page, label string) (bookmark.Row, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.Table.Add(page, label)
}

func (s *Session) RemoveBookmark(id string) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.Table.Remove(id)
}

func (s *Session) Running() bool {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.Status == StatusRunning
}

// BeginRun marks the session running and returns the request to execute
// together with a context that Cancel will cancel.
func (s *Session) BeginRun(parent context.Context) (context.Context, batch.Request, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Status == StatusRunning {
		return nil, batch.Request{}, ErrRunInProgress
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.Status = StatusRunning
	s.Summary = batch.Summary{}
	s.LastError = ""
	return ctx, batch.Request{
		InputDir:  s.InputDir,
		OutputDir: s.OutputDir,
		Rows:      s.Table.Rows(),
	}, nil
}

// FinishRun records the outcome of the run started by BeginRun.
func (s *Session) FinishRun(sum batch.Summary, err error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.Summary = sum
	switch {
	case errors.Is(err, context.Canceled):
		s.Status = StatusCancelled
	case err != nil:
		s.Status = StatusFailed
		s.LastError = err.Error()
	default:
		s.Status = StatusDone
	}
}

// Cancel asks a running batch to stop after the current folder. It reports
// whether a run was in progress.
func (s *Session) Cancel() bool {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Status != StatusRunning || s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

func (s *Session) Cleanup() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
