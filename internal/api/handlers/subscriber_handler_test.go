package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/internal/api/handlers"
	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

type stubSubscriberRepo struct {
	subscribers    map[string]*entities.Subscriber
	createConflict bool
}

func newStubSubscriberRepo() *stubSubscriberRepo {
	return &stubSubscriberRepo{subscribers: make(map[string]*entities.Subscriber)}
}

func (s *stubSubscriberRepo) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	if sub, ok := s.subscribers[email]; ok {
		return sub, nil
	}
	return nil, apperrors.NewNotFoundError("subscriber not found")
}

func (s *stubSubscriberRepo) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	if s.createConflict {
		return apperrors.NewConflictError("email already subscribed")
	}
	if _, ok := s.subscribers[subscriber.Email]; ok {
		return apperrors.NewConflictError("email already subscribed")
	}
	s.subscribers[subscriber.Email] = subscriber
	return nil
}

func (s *stubSubscriberRepo) DeleteByEmail(ctx context.Context, email string) error {
	delete(s.subscribers, email)
	return nil
}

func TestSubscriberHandler_Subscribe_Success(t *testing.T) {
	repo := newStubSubscriberRepo()
	handler := handlers.NewSubscriberHandler(repo)

	body := `{"email":"Fan@Example.com","name":"Fan"}`
	req := httptest.NewRequest("POST", "/api/subscribe", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Subscribe(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// email is normalized to lowercase
	sub, ok := repo.subscribers["fan@example.com"]
	assert.True(t, ok)
	assert.Equal(t, "website", sub.Source)

	var response struct {
		Success bool   `json:"success"`
		Email   string `json:"email"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "fan@example.com", response.Email)
}

func TestSubscriberHandler_Subscribe_AlreadySubscribed(t *testing.T) {
	repo := newStubSubscriberRepo()
	repo.subscribers["fan@example.com"] = &entities.Subscriber{ID: "s1", Email: "fan@example.com"}
	handler := handlers.NewSubscriberHandler(repo)

	body := `{"email":"fan@example.com"}`
	req := httptest.NewRequest("POST", "/api/subscribe", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Subscribe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success           bool `json:"success"`
		AlreadySubscribed bool `json:"alreadySubscribed"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.True(t, response.AlreadySubscribed)
}

func TestSubscriberHandler_Subscribe_InsertRaceMapsToAlreadySubscribed(t *testing.T) {
	// The email is not found at lookup time but a concurrent subscribe wins
	// the insert, so Create comes back with a conflict.
	repo := newStubSubscriberRepo()
	repo.createConflict = true
	handler := handlers.NewSubscriberHandler(repo)

	body := `{"email":"fan@example.com"}`
	req := httptest.NewRequest("POST", "/api/subscribe", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Subscribe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success           bool `json:"success"`
		AlreadySubscribed bool `json:"alreadySubscribed"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.True(t, response.AlreadySubscribed)
}

func TestSubscriberHandler_Subscribe_InvalidEmail(t *testing.T) {
	handler := handlers.NewSubscriberHandler(newStubSubscriberRepo())

	for _, body := range []string{
		`{"email":""}`,
		`{"email":"not-an-email"}`,
		`{}`,
	} {
		req := httptest.NewRequest("POST", "/api/subscribe", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Subscribe(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestSubscriberHandler_Unsubscribe(t *testing.T) {
	repo := newStubSubscriberRepo()
	repo.subscribers["fan@example.com"] = &entities.Subscriber{ID: "s1", Email: "fan@example.com"}
	handler := handlers.NewSubscriberHandler(repo)

	req := httptest.NewRequest("DELETE", "/api/subscribe?email=Fan@example.com", nil)
	w := httptest.NewRecorder()

	handler.Unsubscribe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.subscribers)
}

func TestSubscriberHandler_Unsubscribe_RequiresEmail(t *testing.T) {
	handler := handlers.NewSubscriberHandler(newStubSubscriberRepo())

	req := httptest.NewRequest("DELETE", "/api/subscribe", nil)
	w := httptest.NewRecorder()

	handler.Unsubscribe(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
