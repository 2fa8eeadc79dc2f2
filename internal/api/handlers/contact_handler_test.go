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

type stubContactRepo struct {
	contacts []*entities.Contact
}

func (s *stubContactRepo) Create(ctx context.Context, contact *entities.Contact) error {
	s.contacts = append(s.contacts, contact)
	return nil
}

func (s *stubContactRepo) List(ctx context.Context) ([]*entities.Contact, error) {
	return s.contacts, nil
}

func (s *stubContactRepo) GetByID(ctx context.Context, id string) (*entities.Contact, error) {
	for _, c := range s.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("contact not found")
}

func (s *stubContactRepo) UpdateStatus(ctx context.Context, id string, status entities.ContactStatus) (*entities.Contact, error) {
	for _, c := range s.contacts {
		if c.ID == id {
			c.Status = status
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("contact not found")
}

func (s *stubContactRepo) Delete(ctx context.Context, id string) error {
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("contact not found")
}

func TestContactHandler_SubmitContact_Success(t *testing.T) {
	repo := &stubContactRepo{}
	handler := handlers.NewContactHandler(repo)

	body := `{"name":"Jess","email":"jess@example.com","message":"Love the site"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitContact(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.contacts, 1)
	assert.Equal(t, entities.ContactStatusPending, repo.contacts[0].Status)

	var contact entities.Contact
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&contact))
	assert.NotEmpty(t, contact.ID)
}

func TestContactHandler_SubmitContact_MissingFields(t *testing.T) {
	handler := handlers.NewContactHandler(&stubContactRepo{})

	for _, body := range []string{
		`{"email":"jess@example.com","message":"hi"}`,
		`{"name":"Jess","message":"hi"}`,
		`{"name":"Jess","email":"jess@example.com"}`,
		`{"name":"  ","email":"jess@example.com","message":"hi"}`,
	} {
		req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.SubmitContact(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestContactHandler_UpdateContactStatus(t *testing.T) {
	repo := &stubContactRepo{contacts: []*entities.Contact{
		{ID: "c1", Name: "Jess", Email: "jess@example.com", Message: "hi", Status: entities.ContactStatusPending},
	}}
	handler := handlers.NewContactHandler(repo)

	req := httptest.NewRequest("PUT", "/api/contact/c1", strings.NewReader(`{"status":"completed"}`))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	handler.UpdateContactStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ContactStatusCompleted, repo.contacts[0].Status)
}

func TestContactHandler_UpdateContactStatus_InvalidStatus(t *testing.T) {
	repo := &stubContactRepo{contacts: []*entities.Contact{
		{ID: "c1", Status: entities.ContactStatusPending},
	}}
	handler := handlers.NewContactHandler(repo)

	req := httptest.NewRequest("PUT", "/api/contact/c1", strings.NewReader(`{"status":"resolved"}`))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	handler.UpdateContactStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entities.ContactStatusPending, repo.contacts[0].Status)
}

func TestContactHandler_ListContacts(t *testing.T) {
	repo := &stubContactRepo{contacts: []*entities.Contact{
		{ID: "c1"}, {ID: "c2"},
	}}
	handler := handlers.NewContactHandler(repo)

	req := httptest.NewRequest("GET", "/api/contact", nil)
	w := httptest.NewRecorder()

	handler.ListContacts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}
