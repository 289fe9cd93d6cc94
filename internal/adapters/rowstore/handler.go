package rowstore

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Handler serves the Baserow list and create row endpoints from a
// MemoryStore so BaserowClient can run against a local process.
type Handler struct {
	store *MemoryStore
	token string
}

// NewHandler returns a Handler backed by store. When token is not empty,
// requests must carry "Authorization: Token <token>".
func NewHandler(store *MemoryStore, token string) *Handler {
	return &Handler{store: store, token: token}
}

// Register attaches the row endpoints to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle(rowsPath, h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && r.Header.Get("Authorization") != "Token "+h.token {
		writeDetail(w, http.StatusUnauthorized, "ERROR_INVALID_ACCESS_TOKEN")
		return
	}
	table := strings.Trim(strings.TrimPrefix(r.URL.Path, rowsPath), "/")
	if table == "" || strings.Contains(table, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, table)
	case http.MethodPost:
		h.create(w, r, table)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeDetail(w, http.StatusMethodNotAllowed, "ERROR_METHOD_NOT_ALLOWED")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, table string) {
	q := r.URL.Query()
	page, err := positiveInt(q.Get("page"), 1)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "ERROR_INVALID_PAGE")
		return
	}
	size, err := positiveInt(q.Get("size"), 100)
	if err != nil || size > maxPageSize {
		writeDetail(w, http.StatusBadRequest, "ERROR_INVALID_SIZE")
		return
	}

	total := h.store.Count(table)
	offset := (page - 1) * size
	if offset > 0 && offset >= total {
		writeDetail(w, http.StatusNotFound, "ERROR_INVALID_PAGE")
		return
	}
	resp := listResponse{
		Count:   total,
		Results: h.store.Slice(table, offset, size),
	}
	if offset+size < total {
		resp.Next = pageLink(r, page+1, size)
	}
	if page > 1 {
		resp.Previous = pageLink(r, page-1, size)
	}
	writeBody(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, table string) {
	var row RawRow
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&row); err != nil || row == nil {
		writeDetail(w, http.StatusBadRequest, "ERROR_REQUEST_BODY_VALIDATION")
		return
	}
	h.store.Append(table, row)
	writeBody(w, http.StatusOK, row)
}

func pageLink(r *http.Request, page, size int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}

func positiveInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidToken
	}
	return n, nil
}

func writeDetail(w http.ResponseWriter, status int, code string) {
	writeBody(w, status, map[string]string{"error": code, "detail": http.StatusText(status)})
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
