package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adamkadda/bank-demo/bank/handler"
	"github.com/adamkadda/bank-demo/internal/config"
	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/middleware"
	"github.com/adamkadda/bank-demo/internal/session"
	"github.com/adamkadda/bank-demo/internal/tmpl"
)

type Server struct {
	ledger *ledger.Ledger
	http   *http.Server
	router http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	// Templates are parsed once; a broken page fails startup instead
	// of a request.
	templates, err := tmpl.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	l := ledger.New(cfg.Ledger.Seed)
	manager := session.NewSessionManager(cfg.Session)

	stack := middleware.NewStack(
		logging.Middleware(),
		session.Middleware(manager),
	)

	dispatcher := handler.NewDispatcher(handler.NewCSRFErrorResponder(templates))

	router := http.NewServeMux()

	loginHandler := handler.NewLoginHandler(l, templates, dispatcher)
	loginHandler.RegisterRoutes(router)

	bankHandler := handler.NewBankHandler(l, templates, dispatcher)
	bankHandler.RegisterRoutes(router)

	balancesHandler := handler.NewBalancesHandler(l, cfg.CORS.AllowedOrigins)
	balancesHandler.RegisterRoutes(router)

	attackerHandler := handler.NewAttackerHandler(templates, dispatcher)
	attackerHandler.RegisterRoutes(router)

	router.Handle("GET /{$}", http.RedirectHandler("/login", http.StatusFound))

	s := &Server{
		ledger: l,
		router: stack(router),
	}

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	slog.Info("Bank demo listening", slog.String("addr", "http://"+s.http.Addr))
	slog.Info("Login at", slog.String("url", "http://"+s.http.Addr+"/login"))

	err := s.http.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
