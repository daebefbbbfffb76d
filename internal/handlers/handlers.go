// Package handlers provides HTTP handlers for the PDF binder API.
//
// This package contains the endpoints behind the operator shell: session
// management, folder selection, the bookmark table editor, starting and
// cancelling a batch, and polling the progress log.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, outputDir, rows, logLimit)
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"go-pdfbinder/internal/batch"
	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/session"

	"github.com/go-chi/chi/v5"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	OutputDir      string
	DefaultRows    []bookmark.Row
	LogLimit       int

	runs sync.WaitGroup
}

func NewAPIHandler(sm *session.SessionManager, outputDir string, rows []bookmark.Row, logLimit int) *APIHandler {
	return &APIHandler{SessionManager: sm, OutputDir: outputDir, DefaultRows: rows, LogLimit: logLimit}
}

// Wait blocks until every batch started by this handler has finished.
func (h *APIHandler) Wait() {
	h.runs.Wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (h *APIHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	s, exists := h.SessionManager.GetSession(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
	}
	return s, exists
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a session pre-populated with the default bookmark rows and output folder
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.SessionManager.CreateSession(h.OutputDir, h.DefaultRows, h.LogLimit)
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": s.ID})
}

// GetSession godoc
// @Summary      Get session state
// @Description  Returns folders, bookmark rows, run status and the last run summary
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  session.View
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID} [get]
func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// UpdateFolders godoc
// @Summary      Set input and output folders
// @Description  Sets the folders used by the next run; empty fields are left unchanged
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        folders    body      object  true  "{ inputDir: string, outputDir: string }"
// @Success      200  {object}  session.View
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/folders [put]
func (h *APIHandler) UpdateFolders(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var folders struct {
		InputDir  string `json:"inputDir"`
		OutputDir string `json:"outputDir"`
	}
	if err := json.NewDecoder(r.Body).Decode(&folders); err != nil {
		http.Error(w, "Invalid folder data", http.StatusBadRequest)
		return
	}
	s.SetFolders(folders.InputDir, folders.OutputDir)
	writeJSON(w, http.StatusOK, s.View())
}

// AddBookmark godoc
// @Summary      Add a bookmark row
// @Description  Appends a row to the bookmark table; page and label must not be empty
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        bookmark   body      object  true  "{ page: string, label: string }"
// @Success      200  {object}  bookmark.Row
// @Failure      400  {string}  string  "Page and label must not be empty"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/bookmarks [post]
func (h *APIHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Page  json.RawMessage `json:"page"`
		Label string          `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid bookmark data", http.StatusBadRequest)
		return
	}
	row, err := s.AddBookmark(pageText(req.Page), req.Label)
	if errors.Is(err, bookmark.ErrEmptyField) {
		http.Error(w, "Page and label must not be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to add bookmark", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// pageText accepts the page cell either as a JSON string or a bare number.
func pageText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// RemoveBookmark godoc
// @Summary      Remove a bookmark row
// @Description  Removes the selected row from the bookmark table
// @Tags         bookmarks
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        rowID      path      string  true  "Bookmark row ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {string}  string  "Session or bookmark not found"
// @Router       /api/sessions/{sessionID}/bookmarks/{rowID} [delete]
func (h *APIHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveBookmark(chi.URLParam(r, "rowID")); err != nil {
		http.Error(w, "Bookmark not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RunBatch godoc
// @Summary      Start processing
// @Description  Merges and bookmarks every folder under the input folder; progress is reported through the log
// @Tags         actions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      202  {object}  map[string]string  "{ status: running }"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "Run already in progress"
// @Router       /api/sessions/{sessionID}/actions/run [post]
func (h *APIHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx, req, err := s.BeginRun(context.Background())
	if err != nil {
		http.Error(w, "Run already in progress", http.StatusConflict)
		return
	}

	h.runs.Add(1)
	go func() {
		defer h.runs.Done()
		sum, err := batch.NewRunner(s.Log).Run(ctx, req)
		if err != nil {
			log.Printf("Batch for session %s ended with error: %v", s.ID, err)
		}
		s.FinishRun(sum, err)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": session.StatusRunning})
}

// CancelRun godoc
// @Summary      Cancel processing
// @Description  Stops a running batch after the folder currently being processed
// @Tags         actions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  map[string]bool  "{ cancelled: bool }"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/actions/cancel [post]
func (h *APIHandler) CancelRun(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": s.Cancel()})
}

// GetLog godoc
// @Summary      Read the progress log
// @Description  Returns log lines with a sequence number greater than since
// @Tags         log
// @Produce      json
// @Param        sessionID  path      string  true   "Session ID"
// @Param        since      query     int     false  "Last sequence number already seen"
// @Success      200  {object}  map[string]interface{}  "{ lines: [{seq, ts, text}], next: int }"
// @Failure      400  {string}  string  "Invalid since"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/log [get]
func (h *APIHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var since uint64
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "Invalid since", http.StatusBadRequest)
			return
		}
		since = n
	}
	lines := s.Log.Since(since)
	next := since
	if len(lines) > 0 {
		next = lines[len(lines)-1].Seq
	}
	if lines == nil {
		lines = []logsink.Line{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines, "next": next})
}
