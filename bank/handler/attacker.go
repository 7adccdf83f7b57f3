package handler

import (
	"net/http"

	"github.com/adamkadda/bank-demo/internal/tmpl"
)

// AttackerHandler serves a page that silently posts a transfer on
// behalf of whoever opens it. It lives on the bank's own server for
// convenience; hosted anywhere else it behaves the same.
type AttackerHandler struct {
	templates  tmpl.TemplateMap
	dispatcher *Dispatcher
}

func NewAttackerHandler(templates tmpl.TemplateMap, dispatcher *Dispatcher) *AttackerHandler {
	return &AttackerHandler{
		templates:  templates,
		dispatcher: dispatcher,
	}
}

func (h *AttackerHandler) RegisterRoutes(router *http.ServeMux) {
	router.Handle("GET /attacker", h.dispatcher.Handle(h.attackerGET))
}

type forgedTransfer struct {
	Action string
	To     string
	Amount string
}

func queryOr(r *http.Request, key, fallback string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return fallback
}

func (h *AttackerHandler) attackerGET(w http.ResponseWriter, r *http.Request) error {
	action := "/transfer"
	if r.URL.Query().Get("target") == "csrf" {
		action = "/transfer-csrf"
	}

	return render(w, r, h.templates, http.StatusOK, "attacker", forgedTransfer{
		Action: action,
		To:     queryOr(r, "to", "hacker"),
		Amount: queryOr(r, "amount", "100"),
	})
}
