package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/adamkadda/bank-demo/internal/csrf"
	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/session"
	"github.com/adamkadda/bank-demo/internal/tmpl"
)

/*
	Two copies of the same dashboard and transfer flow.

	/bank and /transfer accept any form post that arrives with the
	session cookie, wherever the form was hosted.

	/bank-csrf and /transfer-csrf bind a token to the session when the
	form is rendered and refuse submissions that do not return it.
*/

type BankHandler struct {
	ledger     *ledger.Ledger
	templates  tmpl.TemplateMap
	dispatcher *Dispatcher
}

func NewBankHandler(
	l *ledger.Ledger,
	templates tmpl.TemplateMap,
	dispatcher *Dispatcher,
) *BankHandler {
	return &BankHandler{
		ledger:     l,
		templates:  templates,
		dispatcher: dispatcher,
	}
}

func (h *BankHandler) RegisterRoutes(router *http.ServeMux) {
	router.Handle("GET /bank", h.dispatcher.Handle(h.bankGET))
	router.Handle("POST /transfer", h.dispatcher.Handle(h.transferPOST))
	router.Handle("GET /bank-csrf", h.dispatcher.Handle(h.bankCSRFGET))
	router.Handle("POST /transfer-csrf", h.dispatcher.Handle(h.transferCSRFPOST))
}

type dashboard struct {
	User      string
	Balance   int64
	CSRFToken string
}

type receipt struct {
	From    string
	To      string
	Amount  int64
	Balance int64
}

func (h *BankHandler) bankGET(w http.ResponseWriter, r *http.Request) error {
	s := session.GetSession(r)
	if !s.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}

	account := h.ledger.GetOrCreate(s.User())

	return render(w, r, h.templates, http.StatusOK, "bank", dashboard{
		User:    s.User(),
		Balance: account.Balance,
	})
}

func (h *BankHandler) bankCSRFGET(w http.ResponseWriter, r *http.Request) error {
	s := session.GetSession(r)
	if !s.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}

	account := h.ledger.GetOrCreate(s.User())
	token := csrf.Issue(s)

	return render(w, r, h.templates, http.StatusOK, "bank_csrf", dashboard{
		User:      s.User(),
		Balance:   account.Balance,
		CSRFToken: token,
	})
}

func (h *BankHandler) transferPOST(w http.ResponseWriter, r *http.Request) error {
	s, err := requireUser(r)
	if err != nil {
		return err
	}

	return h.transfer(w, r, s)
}

// The token is checked ahead of the login, so a forged post without a
// token is refused as such even when no session exists.
func (h *BankHandler) transferCSRFPOST(w http.ResponseWriter, r *http.Request) error {
	if err := csrf.Validate(session.GetSession(r), r); err != nil {
		return err
	}

	s, err := requireUser(r)
	if err != nil {
		return err
	}

	return h.transfer(w, r, s)
}

// Anything that is not a whole number counts as zero and is rejected
// by the ledger.
func parseAmount(value string) int64 {
	amount, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

func (h *BankHandler) transfer(w http.ResponseWriter, r *http.Request, s *session.Session) error {
	l := logging.GetLogger(r)

	from := s.User()
	to := strings.TrimSpace(r.PostFormValue("to"))
	amount := parseAmount(r.PostFormValue("amount"))

	if err := h.ledger.Transfer(from, to, amount); err != nil {
		l.Info("Transfer rejected",
			slog.String("from", from),
			slog.String("to", to),
			slog.Int64("amount", amount),
			slog.String("reason", err.Error()),
		)
		return err
	}

	l.Info("Transfer completed",
		slog.String("from", from),
		slog.String("to", to),
		slog.Int64("amount", amount),
	)

	account := h.ledger.GetOrCreate(from)

	return render(w, r, h.templates, http.StatusOK, "success", receipt{
		From:    from,
		To:      to,
		Amount:  amount,
		Balance: account.Balance,
	})
}
