package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clubsite/internal/adapters/email"
	contactStore "clubsite/internal/adapters/storage/contact"
	"clubsite/internal/config"
	contactDomain "clubsite/internal/domain/contact"
)

// --- Mocks ---

type mockContactStore struct {
	submissions map[string]contactDomain.Submission
	saveErr     error
	failOn      int // 1-based call that returns saveErr; 0 fails every call
	calls       int
}

// Save implements contact.Store for testing.
// PRE: submission has a valid ID
// POST: submission is stored in memory or saveErr is returned
func (m *mockContactStore) Save(_ context.Context, s contactDomain.Submission) error {
	m.calls++
	if m.saveErr != nil && (m.failOn == 0 || m.failOn == m.calls) {
		return m.saveErr
	}
	if m.submissions == nil {
		m.submissions = make(map[string]contactDomain.Submission)
	}
	m.submissions[s.ID] = s
	return nil
}

// GetByID implements contact.Store for testing.
// PRE: id is non-empty
// POST: returns the submission or sql.ErrNoRows
func (m *mockContactStore) GetByID(_ context.Context, id string) (contactDomain.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return contactDomain.Submission{}, sql.ErrNoRows
}

// List implements contact.Store for testing.
// PRE: none
// POST: returns every stored submission
func (m *mockContactStore) List(_ context.Context, _ contactStore.ListFilter) ([]contactDomain.Submission, error) {
	var list []contactDomain.Submission
	for _, s := range m.submissions {
		list = append(list, s)
	}
	return list, nil
}

// only returns the single stored submission.
func (m *mockContactStore) only(t *testing.T) contactDomain.Submission {
	t.Helper()
	if len(m.submissions) != 1 {
		t.Fatalf("stored %d submissions, want 1", len(m.submissions))
	}
	for _, s := range m.submissions {
		return s
	}
	return contactDomain.Submission{}
}

type mockSender struct {
	requests []email.SendRequest
	err      error
}

// Send captures the request instead of delivering it.
// PRE: none
// POST: req recorded; returns err if set
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}

// setupContact installs fresh globals for a handler test.
func setupContact(t *testing.T) (*mockContactStore, *mockSender) {
	t.Helper()
	store := &mockContactStore{}
	sender := &mockSender{}
	stores = &Stores{ContactStore: store}
	site = config.Default()
	perfCollector = nil
	SetEmailSender(sender, "Harriers <noreply@harriers.example>")
	return store, sender
}

func postContact(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/contact-us/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handleContactSubmit(rec, req)
	return rec
}

// --- Pages ---

// TestHandleHome renders the homepage markdown inside the layout.
func TestHandleHome(t *testing.T) {
	site = config.Default()
	rec := httptest.NewRecorder()
	handleHome(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"<h1>Welcome</h1>", site.Title, `href="/contact-us/"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

// TestHandleTraining serves the calculator shell without computing paces server-side.
func TestHandleTraining(t *testing.T) {
	site = config.Default()
	rec := httptest.NewRecorder()
	handleTraining(rec, httptest.NewRequest("GET", "/training/", nil))

	body := rec.Body.String()
	for _, want := range []string{`id="time-input"`, `id="paces-output"`, "/static/pace.js", "/static/wasm_exec.js", `aria-current="page"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "<td>") && strings.Contains(body, "Half marathon") {
		t.Error("paces must not be rendered by the server")
	}
}

// TestHandleContactForm renders an empty form with the three fields.
func TestHandleContactForm(t *testing.T) {
	setupContact(t)
	rec := httptest.NewRecorder()
	handleContactForm(rec, httptest.NewRequest("GET", "/contact-us/", nil))

	body := rec.Body.String()
	for _, want := range []string{`name="name"`, `name="from"`, `name="message"`, `action="/contact-us/submit"`} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
}

// --- Contact submit ---

// TestHandleContactSubmit_Named relays the message with a reply-to and shows the thank-you page.
func TestHandleContactSubmit_Named(t *testing.T) {
	store, sender := setupContact(t)

	rec := postContact(url.Values{
		"name":    {"Pat"},
		"from":    {"pat@example.com"},
		"message": {"Is there a beginners group?"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Thank you for your feedback.") {
		t.Errorf("missing thank-you text: %s", rec.Body.String())
	}
	if len(sender.requests) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.requests))
	}
	req := sender.requests[0]
	if req.To[0] != config.Default().Email || req.ReplyTo != "pat@example.com" || req.Subject != contactDomain.Subject {
		t.Errorf("unexpected request: %+v", req)
	}
	if !strings.Contains(req.Text, "from Pat via") || !strings.HasSuffix(req.Text, "Is there a beginners group?") {
		t.Errorf("Text = %q", req.Text)
	}
	if s := store.only(t); s.Status != contactDomain.StatusSent {
		t.Errorf("stored status = %s", s.Status)
	}
}

// TestHandleContactSubmit_Anonymous omits the reply-to header.
func TestHandleContactSubmit_Anonymous(t *testing.T) {
	_, sender := setupContact(t)

	rec := postContact(url.Values{"message": {"Great marshalling on Saturday."}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if sender.requests[0].ReplyTo != "" {
		t.Errorf("ReplyTo = %q, want empty", sender.requests[0].ReplyTo)
	}
}

// TestHandleContactSubmit_ValidationErrors re-render the form with status 400.
func TestHandleContactSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{"blank message", url.Values{"name": {"Pat"}, "message": {"   "}}, "Please enter a message."},
		{"bad reply-to", url.Values{"from": {"pat at example"}, "message": {"hi"}}, "single valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, sender := setupContact(t)
			rec := postContact(tt.form)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.wantMsg) {
				t.Errorf("missing error %q in %s", tt.wantMsg, body)
			}
			if name := tt.form.Get("name"); name != "" && !strings.Contains(body, `value="`+name+`"`) {
				t.Errorf("form did not keep name %q", name)
			}
			if len(sender.requests) != 0 || len(store.submissions) != 0 {
				t.Error("invalid submission must not be sent or stored")
			}
		})
	}
}

// TestHandleContactSubmit_DispatchFailure still thanks the sender.
func TestHandleContactSubmit_DispatchFailure(t *testing.T) {
	store, sender := setupContact(t)
	sender.err = errors.New("relay unavailable")

	rec := postContact(url.Values{"message": {"hello"}})

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Thank you") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if s := store.only(t); s.Status != contactDomain.StatusFailed {
		t.Errorf("stored status = %s, want failed", s.Status)
	}
}

// TestHandleContactSubmit_StoreError still relays the message and thanks the sender.
func TestHandleContactSubmit_StoreError(t *testing.T) {
	for _, failOn := range []int{0, 1, 2} {
		store, sender := setupContact(t)
		store.saveErr = errors.New("database is locked")
		store.failOn = failOn

		rec := postContact(url.Values{"message": {"hello"}})

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Thank you") {
			t.Fatalf("failOn=%d: status=%d body=%s", failOn, rec.Code, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "locked") {
			t.Errorf("failOn=%d: internal error details leaked to client", failOn)
		}
		if len(sender.requests) != 1 {
			t.Errorf("failOn=%d: attempts = %d, want 1", failOn, len(sender.requests))
		}
	}
}

// TestHandleContactSubmit_NoClubAddress returns a generic 500.
func TestHandleContactSubmit_NoClubAddress(t *testing.T) {
	setupContact(t)
	site.Email = ""

	rec := postContact(url.Values{"message": {"hello"}})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
}
