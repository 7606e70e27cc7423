package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/server/services"
)

const (
	MsgEntryAdded       = "Entry added successfully"
	MsgInvalidToken     = "Invalid or expired token"
	MsgTokenAlreadyUsed = "Token has already been used"
)

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Success           bool   `json:"success"`
	UserID            string `json:"userId,omitempty"`
	SessionCredential string `json:"sessionCredential,omitempty"`
	Message           string `json:"message,omitempty"`
}

type entryRequest struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

type entryResponse struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     string    `json:"userId"`
	ArchiveKey string    `json:"archiveKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *HTTPServer) verifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		writeFailure(w, http.StatusBadRequest, "Token is required")
		return
	}

	userID, credential, err := s.tokens.Verify(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenAlreadyUsed):
			writeFailure(w, http.StatusUnauthorized, MsgTokenAlreadyUsed)
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
			writeFailure(w, http.StatusUnauthorized, MsgInvalidToken)
		default:
			s.logger.Error(ctx, "token verification error", "error", err)
			writeFailure(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(ctx, "login token verified", "user_id", userID)
	writeJSON(w, http.StatusOK, verifyResponse{Success: true, UserID: userID, SessionCredential: credential})
}

func (s *HTTPServer) addEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, _ := UserIDFromContext(ctx)

	var req entryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := s.entries.Add(ctx, callerID, services.NewEntry{
		URL:     req.URL,
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			writeFailure(w, http.StatusForbidden, "User ID does not match session")
		case errors.Is(err, common.ErrValidation):
			writeFailure(w, http.StatusBadRequest, "URL is required")
		default:
			s.logger.Error(ctx, "add entry error", "error", err)
			writeFailure(w, http.StatusInternalServerError, "Failed to add entry")
		}
		return
	}

	s.logger.Info(ctx, "entry added", "entry_id", e.ID, "user_id", callerID)

	if strings.Contains(r.Header.Get(common.PreferHeaderName), common.PreferReturnMinimal) {
		w.WriteHeader(http.StatusCreated)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Success: true, Message: MsgEntryAdded})
}

func (s *HTTPServer) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	list, err := s.entries.List(ctx, userID, limit)
	if err != nil {
		s.logger.Error(ctx, "list entries error", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to list entries")
		return
	}

	out := make([]entryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, entryResponse{
			ID:         e.ID,
			URL:        e.URL,
			Title:      e.Title,
			Content:    e.Content,
			UserID:     e.UserID,
			ArchiveKey: e.ArchiveKey,
			CreatedAt:  e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	return dec.Decode(v)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ackResponse{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
