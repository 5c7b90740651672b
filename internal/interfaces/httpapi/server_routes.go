package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{league}/teams", handler.ListTeamsByLeague)
}

func registerAccessRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/access/check", handler.CheckAccess)
	mux.HandleFunc("POST /v1/checkout/sessions", handler.CreateCheckoutSession)
	mux.HandleFunc("GET /v1/checkout/return", handler.CheckoutReturn)
}

// Every request on these routes re-verifies the subscription with the provider.
func registerSubscribedRoutes(mux *http.ServeMux, handler *Handler, checker AccessChecker) {
	mux.Handle("GET /v1/predictions", RequireSubscription(checker, http.HandlerFunc(handler.GetPrediction)))
	mux.Handle("GET /v1/leagues/{league}/board", RequireSubscription(checker, http.HandlerFunc(handler.GetLeagueBoard)))
}

func registerPageRoutes(mux *http.ServeMux, page *Page) {
	mux.HandleFunc("GET /{$}", page.Index)
	mux.HandleFunc("POST /access", page.SaveEmail)
	mux.HandleFunc("POST /checkout", page.Checkout)
}
