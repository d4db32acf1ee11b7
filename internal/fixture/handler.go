package fixture

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"roster-cli/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Options struct {
	// Latency delays every response. Requests whose context ends first are dropped.
	Latency time.Duration
	Logger  zerolog.Logger
}

type server struct {
	db   *DB
	opts Options
}

// NewHandler serves db under /api the way json-server would.
func NewHandler(db *DB, opts Options) http.Handler {
	s := &server{db: db, opts: opts}

	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests, s.delay)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/employees", s.listEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees", s.createEmployee).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id:[0-9]+}", s.getEmployee).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id:[0-9]+}", s.updateEmployee).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/employees/{id:[0-9]+}", s.deleteEmployee).Methods(http.MethodDelete)
	api.HandleFunc("/departments", s.listDepartments).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	return r
}

func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.opts.Logger.Info().
			Str("request_id", w.Header().Get("X-Request-ID")).
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("fixture request")
	})
}

func (s *server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Latency > 0 {
			t := time.NewTimer(s.opts.Latency)
			select {
			case <-t.C:
			case <-r.Context().Done():
				t.Stop()
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) listEmployees(w http.ResponseWriter, r *http.Request) {
	p := ParseListParams(r.URL.Query())
	items, total := s.db.List(p)
	if p.Page > 0 {
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		w.Header().Set("Access-Control-Expose-Headers", "X-Total-Count")
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	e, ok := s.db.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in model.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	writeJSON(w, http.StatusCreated, s.db.Create(in))
}

func (s *server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var in model.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	e, ok := s.db.Update(id, in)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if !s.db.Delete(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *server) listDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.Departments())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
