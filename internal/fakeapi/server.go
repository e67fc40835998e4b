// Package fakeapi is an in-memory implementation of the Yusra REST backend.
// It backs the dev-server command and the client tests.
package fakeapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/models"
)

type user struct {
	id       string
	name     string
	email    string
	password string
}

type failure struct {
	method string
	path   string
	status int
}

// Server holds every entity in memory, guarded by one mutex
type Server struct {
	mu  sync.Mutex
	log *slog.Logger

	users  map[string]*user // by email
	tokens map[string]string

	workspaces     map[string]*models.Workspace
	workspaceOwner map[string]string
	workspaceOrder []string

	boards     map[string]*models.Board
	boardOrder []string

	columns     map[string]*models.Column
	boardColumn map[string][]string // board id -> ordered column ids

	failures []failure
	requests []string
}

// New creates an empty backend
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		log:            logger,
		users:          make(map[string]*user),
		tokens:         make(map[string]string),
		workspaces:     make(map[string]*models.Workspace),
		workspaceOwner: make(map[string]string),
		boards:         make(map[string]*models.Board),
		columns:        make(map[string]*models.Column),
		boardColumn:    make(map[string][]string),
	}
}

// Handler returns the router serving every endpoint under prefix (e.g. "/api")
func (s *Server) Handler(prefix string) http.Handler {
	r := mux.NewRouter()
	root := r.PathPrefix(prefix).Subrouter()
	root.Use(s.record)

	root.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	root.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	authed := root.NewRoute().Subrouter()
	authed.Use(s.authenticate)

	authed.HandleFunc("/workspaces", s.handleListWorkspaces).Methods(http.MethodGet)
	authed.HandleFunc("/workspaces", s.handleCreateWorkspace).Methods(http.MethodPost)
	authed.HandleFunc("/workspaces/{id}", s.handleGetWorkspace).Methods(http.MethodGet)
	authed.HandleFunc("/workspaces/{id}", s.handleRenameWorkspace).Methods(http.MethodPatch)
	authed.HandleFunc("/workspaces/{id}", s.handleDeleteWorkspace).Methods(http.MethodDelete)

	authed.HandleFunc("/boards/workspace/{id}", s.handleListBoards).Methods(http.MethodGet)
	authed.HandleFunc("/boards", s.handleCreateBoard).Methods(http.MethodPost)
	authed.HandleFunc("/boards/{id}", s.handleGetBoard).Methods(http.MethodGet)
	authed.HandleFunc("/boards/{id}", s.handleRenameBoard).Methods(http.MethodPatch)
	authed.HandleFunc("/boards/{id}", s.handleDeleteBoard).Methods(http.MethodDelete)

	authed.HandleFunc("/columns/reorder", s.handleReorderColumns).Methods(http.MethodPost)
	authed.HandleFunc("/columns", s.handleCreateColumn).Methods(http.MethodPost)
	authed.HandleFunc("/columns/{id}", s.handleRenameColumn).Methods(http.MethodPatch)
	authed.HandleFunc("/columns/{id}", s.handleDeleteColumn).Methods(http.MethodDelete)

	authed.HandleFunc("/cards/move", s.handleMoveCard).Methods(http.MethodPost)
	authed.HandleFunc("/cards", s.handleCreateCard).Methods(http.MethodPost)
	authed.HandleFunc("/cards/{id}", s.handleRenameCard).Methods(http.MethodPatch)
	authed.HandleFunc("/cards/{id}", s.handleDeleteCard).Methods(http.MethodDelete)

	return r
}

// FailNext makes the next request matching method and path (relative to the
// prefix) answer with status instead of being handled.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Requests returns "METHOD /path" for every request received so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// CreateUser registers an account directly and returns its access token
func (s *Server) CreateUser(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{id: uuid.NewString(), name: name, email: strings.ToLower(email), password: password}
	s.users[u.email] = u
	return s.issueToken(u)
}

func (s *Server) issueToken(u *user) string {
	token := uuid.NewString()
	s.tokens[token] = u.id
	return token
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+path)
		var injected *failure
		for i, f := range s.failures {
			if f.method == r.Method && strings.HasSuffix(path, f.path) {
				injected = &s.failures[i]
				s.failures = append(s.failures[:i:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		s.log.Debug("fakeapi request", "method", r.Method, "path", path)
		if injected != nil {
			writeError(w, injected.status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, known := s.tokens[token]
		s.mu.Unlock()
		if !ok || !known {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) userID(r *http.Request) string {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return s.tokens[token]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Message: message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
