package handler

import (
	"net/http"

	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/rs/cors"
)

// BalancesHandler exposes the whole ledger, unauthenticated, so a demo
// can watch money move. CORS lets the attacker page on another origin
// read it too.
type BalancesHandler struct {
	ledger *ledger.Ledger
	cors   *cors.Cors
}

func NewBalancesHandler(l *ledger.Ledger, allowedOrigins []string) *BalancesHandler {
	return &BalancesHandler{
		ledger: l,
		cors: cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}),
	}
}

func (h *BalancesHandler) RegisterRoutes(router *http.ServeMux) {
	router.Handle("GET /balances", h.cors.Handler(http.HandlerFunc(h.balancesGET)))
}

func (h *BalancesHandler) balancesGET(w http.ResponseWriter, r *http.Request) {
	l := logging.GetLogger(r)

	balances := h.ledger.Balances()

	l.Debug("Successful balances fetch")
	respondJSON(w, r, http.StatusOK, balances)
}
