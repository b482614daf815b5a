package web

import "net/http"

// registerRoutes binds every page and endpoint to mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /training/{$}", handleTraining)
	mux.HandleFunc("GET /contact-us/{$}", handleContactForm)
	mux.HandleFunc("POST /contact-us/submit", handleContactSubmit)
	mux.Handle("GET /static/", staticHandler())
	mux.HandleFunc("GET /healthz", handleHealthz)
}
