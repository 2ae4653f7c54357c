package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
	"github.com/diamondgarment/backend/services"
	"github.com/diamondgarment/backend/utils"
)

// memContacts is an in-memory contact collection.
type memContacts struct {
	mu   sync.Mutex
	docs map[string]models.Contact
}

func newMemContacts() *memContacts {
	return &memContacts{docs: map[string]models.Contact{}}
}

func (m *memContacts) List(_ context.Context, _ repositories.Filter) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Contact, 0, len(m.docs))
	for _, c := range m.docs {
		out = append(out, c)
	}
	return out, nil
}

func (m *memContacts) FindByID(_ context.Context, id string) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m *memContacts) Create(_ context.Context, doc *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID.Hex()] = *doc
	return nil
}

func (m *memContacts) Replace(_ context.Context, id string, doc *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	m.docs[id] = *doc
	return nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var body struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Data
}

func TestContactRoundTrip(t *testing.T) {
	store := newMemContacts()
	ts := newTestServer(t, Options{}, func(d *Dependencies) {
		d.Contacts = services.NewContactService(store, utils.NewValidator(), nil)
	})
	ts.addUser(t, "admin@x.com", "secret", models.RoleAdmin)
	token := ts.login(t, "admin@x.com", "secret")

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{
			name: "status omitted",
			payload: map[string]string{
				"name": "Anita Desai", "email": "anita@stmarys.edu", "phone": "+91 98200 11111",
				"product": "School Uniform", "message": "We need 300 sets before June.",
			},
		},
		{
			name: "status supplied by the form is ignored",
			payload: map[string]string{
				"name": "Farhan Ali", "email": "farhan@cityhospital.in", "phone": "022 2345 6789",
				"message": "Quote for OT gowns please.", "status": "responded",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/api/contact", tt.payload, "")
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			created := decodeData[models.Contact](t, rec)

			rec = ts.do(http.MethodGet, "/api/contact/"+created.ID.Hex(), nil, token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			fetched := decodeData[models.Contact](t, rec)

			assert.Equal(t, created, fetched)
			assert.Equal(t, tt.payload["name"], fetched.Name)
			assert.Equal(t, tt.payload["email"], fetched.Email)
			assert.Equal(t, tt.payload["phone"], fetched.Phone)
			assert.Equal(t, tt.payload["product"], fetched.Product)
			assert.Equal(t, tt.payload["message"], fetched.Message)
			assert.Equal(t, models.ContactStatusNew, fetched.Status)
			assert.False(t, fetched.CreatedAt.IsZero())
		})
	}

	// Only the admin status endpoint moves an enquiry on.
	contacts, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	id := contacts[0].ID.Hex()

	rec := ts.do(http.MethodPut, "/api/contact/"+id+"/status", map[string]string{"status": "responded"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/contact/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ContactStatusResponded, decodeData[models.Contact](t, rec).Status)
}
