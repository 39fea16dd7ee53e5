package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/server/models"
)

const maxRequestBodySize = 1 << 20 // 1MB

const defaultPageLimit = 10
const maxPageLimit = 100

// Catalog is the slice of the catalog service the API needs.
type Catalog interface {
	ListPage(ctx context.Context, page, limit int) ([]models.Record, error)
	Upsert(ctx context.Context, rec *models.Record) error
	GetPresignedPutUrl(ctx context.Context, id int64) (string, string, error)
}

// Users is the slice of the user service the API needs.
type Users interface {
	Login(ctx context.Context, login, password string) (string, error)
}

type Deps struct {
	Catalog   Catalog
	Users     Users
	SecretKey []byte
	Logger    logging.Logger
}

// NewHandler builds the full route tree. The record listing is public;
// everything under /api except login requires a valid admin token.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/pokemon", handleListRecords(deps))
	r.Post("/api/login", handleLogin(deps))

	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(deps.SecretKey))
		r.Post("/api/pokemon", handleUpsertRecord(deps))
		r.Post("/api/images/presign", handlePresignImage(deps))
	})

	return r
}

func handleListRecords(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parseIntParam(r, "page", 1, 0)
		limit := parseIntParam(r, "limit", defaultPageLimit, maxPageLimit)

		batch, err := deps.Catalog.ListPage(r.Context(), page, limit)
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid page parameters")
				return
			}
			deps.Logger.Error(r.Context(), "failed to list records", "page", page, "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list records")
			return
		}

		out := make([]wireRecord, 0, len(batch))
		for i := range batch {
			out = append(out, toWire(&batch[i]))
		}

		writeJSON(w, out)
	}
}

func handleLogin(deps Deps) http.HandlerFunc {
	type loginRequest struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		token, err := deps.Users.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid credentials")
				return
			}
			deps.Logger.Error(r.Context(), "login failed", "login", req.Login, "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "login failed")
			return
		}

		writeJSON(w, map[string]string{"token": token})
	}
}

func handleUpsertRecord(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req wireRecord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		rec := fromWire(&req)
		if err := deps.Catalog.Upsert(r.Context(), &rec); err != nil {
			if errors.Is(err, common.ErrorInternal) {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid record: %v", err)
				return
			}
			deps.Logger.Error(r.Context(), "failed to store record", "record_id", rec.ID, "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to store record")
			return
		}

		writeJSON(w, map[string]string{"status": "ok"})
	}
}

func handlePresignImage(deps Deps) http.HandlerFunc {
	type presignRequest struct {
		ID int64 `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req presignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.ID <= 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "id is required")
			return
		}

		key, url, err := deps.Catalog.GetPresignedPutUrl(r.Context(), req.ID)
		if err != nil {
			deps.Logger.Error(r.Context(), "failed to presign upload", "record_id", req.ID, "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to presign upload")
			return
		}

		writeJSON(w, map[string]string{"key": key, "url": url})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// httpError writes a JSON error payload with the given status code.
func httpError(w http.ResponseWriter, status int, code, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"type":    code,
			"message": fmt.Sprintf(format, args...),
		},
	})
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
