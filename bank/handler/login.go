package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/session"
	"github.com/adamkadda/bank-demo/internal/tmpl"
)

// Anyone who submits the form without a name becomes alice.
const defaultUsername = "alice"

// Long names would push the session cookie past its size limit once a
// CSRF token is added to it.
const maxUsernameLength = 64

var ErrInvalidUsername = errors.New("invalid username")

type LoginHandler struct {
	ledger     *ledger.Ledger
	templates  tmpl.TemplateMap
	dispatcher *Dispatcher
}

func NewLoginHandler(
	l *ledger.Ledger,
	templates tmpl.TemplateMap,
	dispatcher *Dispatcher,
) *LoginHandler {
	return &LoginHandler{
		ledger:     l,
		templates:  templates,
		dispatcher: dispatcher,
	}
}

func (h *LoginHandler) RegisterRoutes(router *http.ServeMux) {
	router.Handle("GET /login", h.dispatcher.Handle(h.loginGET))
	router.Handle("POST /login", h.dispatcher.Handle(h.loginPOST))
	router.Handle("GET /logout", h.dispatcher.Handle(h.logoutGET))
}

func (h *LoginHandler) loginGET(w http.ResponseWriter, r *http.Request) error {
	return render(w, r, h.templates, http.StatusOK, "login", nil)
}

// There is no password. Whoever names a user is that user.
func (h *LoginHandler) loginPOST(w http.ResponseWriter, r *http.Request) error {
	s := session.GetSession(r)
	l := logging.GetLogger(r)

	username := strings.TrimSpace(r.PostFormValue("username"))
	if username == "" {
		username = defaultUsername
	}

	if utf8.RuneCountInString(username) > maxUsernameLength {
		l.Info("Rejected login", slog.Int("username_length", len(username)))
		return ErrInvalidUsername
	}

	s.Login(username)
	h.ledger.GetOrCreate(username)

	l.Info("Successful login", slog.String("username", username))

	http.Redirect(w, r, "/bank", http.StatusFound)
	return nil
}

func (h *LoginHandler) logoutGET(w http.ResponseWriter, r *http.Request) error {
	s := session.GetSession(r)
	l := logging.GetLogger(r)

	if s.Authenticated() {
		l.Info("Successful logout", slog.String("username", s.User()))
	}

	s.Logout()

	http.Redirect(w, r, "/login", http.StatusFound)
	return nil
}
