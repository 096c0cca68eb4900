// Package qstashtest provides an in-memory QStash server for tests.
package qstashtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Token is the bearer token the fake server accepts.
const Token = "test-qstash-token"

// Message is a published message as seen by the server.
type Message struct {
	ID          string
	Destination string
	Body        string
	NotBefore   string
	Delay       string
}

// Schedule is a stored schedule in wire form.
type Schedule struct {
	ScheduleID       string `json:"scheduleId"`
	Cron             string `json:"cron"`
	Destination      string `json:"destination"`
	Body             string `json:"body,omitempty"`
	Label            string `json:"label,omitempty"`
	IsPaused         bool   `json:"isPaused"`
	CreatedAt        int64  `json:"createdAt"`
	NextScheduleTime int64  `json:"nextScheduleTime,omitempty"`
	LastScheduleTime int64  `json:"lastScheduleTime,omitempty"`
}

// Server fakes the subset of the QStash REST API the client uses.
// The handler routes by hand because destinations embedded in paths
// contain "//", which http.ServeMux would redirect.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	seq       int
	order     []string
	schedules map[string]*Schedule
	messages  []Message
	requests  []string
}

// NewServer starts a fake server. Close it when done.
func NewServer() *Server {
	s := &Server{schedules: make(map[string]*Schedule)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Requests returns "METHOD path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Messages returns the published messages.
func (s *Server) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Schedule returns a copy of a stored schedule.
func (s *Server) Schedule(id string) (Schedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, ok := s.schedules[id]
	if !ok {
		return Schedule{}, false
	}
	return *sch, true
}

// AddSchedule stores a schedule directly and returns its id.
func (s *Server) AddSchedule(sch Schedule) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sch.ScheduleID == "" {
		sch.ScheduleID = s.nextID("scd")
	}
	s.schedules[sch.ScheduleID] = &sch
	s.order = append(s.order, sch.ScheduleID)
	return sch.ScheduleID
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s_%04d", prefix, s.seq)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := r.URL.EscapedPath()
	s.requests = append(s.requests, r.Method+" "+path)

	if r.Header.Get("Authorization") != "Bearer "+Token {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, _ := io.ReadAll(r.Body)

	switch {
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/v2/publish/"):
		id := s.nextID("msg")
		s.messages = append(s.messages, Message{
			ID:          id,
			Destination: strings.TrimPrefix(path, "/v2/publish/"),
			Body:        string(body),
			NotBefore:   r.Header.Get("Upstash-Not-Before"),
			Delay:       r.Header.Get("Upstash-Delay"),
		})
		writeJSON(w, map[string]string{"messageId": id})

	case r.Method == http.MethodPost && strings.HasPrefix(path, "/v2/schedules/"):
		id := s.nextID("scd")
		s.schedules[id] = &Schedule{
			ScheduleID:  id,
			Cron:        r.Header.Get("Upstash-Cron"),
			Destination: strings.TrimPrefix(path, "/v2/schedules/"),
			Body:        string(body),
			Label:       r.Header.Get("Upstash-Label"),
			CreatedAt:   time.Now().UnixMilli(),
		}
		s.order = append(s.order, id)
		writeJSON(w, map[string]string{"scheduleId": id})

	case r.Method == http.MethodGet && path == "/v2/schedules":
		list := make([]*Schedule, 0, len(s.order))
		for _, id := range s.order {
			if sch, ok := s.schedules[id]; ok {
				list = append(list, sch)
			}
		}
		writeJSON(w, list)

	case strings.HasPrefix(path, "/v2/schedules/"):
		s.handleSchedule(w, r.Method, strings.TrimPrefix(path, "/v2/schedules/"))

	default:
		writeError(w, http.StatusNotFound, "route not found")
	}
}

func (s *Server) handleSchedule(w http.ResponseWriter, method, rest string) {
	id, action, _ := strings.Cut(rest, "/")
	sch, ok := s.schedules[id]
	if !ok {
		writeError(w, http.StatusNotFound, "schedule "+id+" not found")
		return
	}

	switch {
	case method == http.MethodGet && action == "":
		writeJSON(w, sch)
	case method == http.MethodPatch && action == "pause":
		sch.IsPaused = true
		w.WriteHeader(http.StatusOK)
	case method == http.MethodPatch && action == "resume":
		sch.IsPaused = false
		w.WriteHeader(http.StatusOK)
	case method == http.MethodDelete && action == "":
		delete(s.schedules, id)
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
