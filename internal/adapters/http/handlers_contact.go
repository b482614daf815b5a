package web

import (
	"errors"
	"net/http"

	"clubsite/internal/application/orchestrators"
	contactDomain "clubsite/internal/domain/contact"
)

// contactForm is the data behind the contact template.
type contactForm struct {
	Name    string
	From    string
	Message string
	Error   string
}

// handleContactForm renders the empty feedback form.
func handleContactForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "contact.html", page{
		Title:   "Contact us",
		Content: pageContent("contact"),
		Data:    contactForm{},
	})
}

// handleContactSubmit relays a feedback form post to the club inbox.
// PRE: form fields name, from (reply-to) and message; CSRF token checked by middleware
// POST: thank-you page on success, including when mail dispatch fails;
// 400 with the form re-rendered when validation fails
func handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := contactForm{
		Name:    r.PostFormValue("name"),
		From:    r.PostFormValue("from"),
		Message: r.PostFormValue("message"),
	}

	deps := orchestrators.SubmitContactDeps{
		ContactStore: stores.ContactStore,
		EmailSender:  emailSender,
		Now:          timeNow,
		ClubAddress:  site.Email,
		FromAddress:  emailFromAddress,
	}
	if perfCollector != nil {
		deps.Metrics = perfCollector
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactCommand{
		ID:      generateID(),
		Name:    form.Name,
		ReplyTo: form.From,
		Message: form.Message,
	}, deps)
	switch {
	case errors.Is(err, contactDomain.ErrEmptyMessage):
		form.Error = "Please enter a message."
	case errors.Is(err, contactDomain.ErrInvalidReplyTo):
		form.Error = "Please enter a single valid email address, or leave it blank."
	case err != nil:
		internalError(w, err)
		return
	default:
		renderTemplate(w, r, "thanks.html", page{Title: "Form submitted"})
		return
	}

	renderTemplateStatus(w, r, http.StatusBadRequest, "contact.html", page{
		Title:   "Contact us",
		Content: pageContent("contact"),
		Data:    form,
	})
}
