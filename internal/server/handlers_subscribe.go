package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/jonathan/catalitium/internal/db"
	"github.com/jonathan/catalitium/internal/types"
)

// Store persists subscribers and the search log
type Store interface {
	AddSubscriber(ctx context.Context, email string) (*db.Subscriber, error)
	LogSearch(ctx context.Context, term, country string) error
}

// SubscribeResponse is returned by POST /subscribe
type SubscribeResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

const (
	statusSubscribed        = "subscribed"
	statusAlreadySubscribed = "already_subscribed"
	maxSubscribeBody        = 4 << 10
)

// handleSubscribe adds an email address to the newsletter list. The address
// is read from a JSON body or from the "email" form field.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubscribeBody)

	req, err := decodeSubscribe(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "email", Message: "please enter a valid email"})
		return
	}

	if s.store == nil {
		s.failure(w, r, &ErrUnavailable{Component: "subscriber store"})
		return
	}

	_, err = s.store.AddSubscriber(r.Context(), req.Email)
	switch {
	case errors.Is(err, db.ErrAlreadySubscribed):
		s.jsonResponse(w, http.StatusOK, SubscribeResponse{Status: statusAlreadySubscribed, Email: req.Email})
	case err != nil:
		s.failure(w, r, err)
	default:
		s.jsonResponse(w, http.StatusCreated, SubscribeResponse{Status: statusSubscribed, Email: req.Email})
	}
}

func decodeSubscribe(r *http.Request) (types.SubscribeRequest, error) {
	var req types.SubscribeRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Email = r.PostFormValue("email")
	return req, nil
}
