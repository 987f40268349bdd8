// Package httpapi is the thin JSON surface the shop terminals call. Every
// handler only parses the request, resolves the employee, hands off to a
// usecase service, and maps the outcome back; no business logic lives here.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/kamaljewellers/reserveops-backend/internal/domain"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/ledger"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/notifier"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/reconciler"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/sequence"
)

// Server implements the terminal-facing HTTP API
type Server struct {
	Reconciler *reconciler.Service
	Ledger     *ledger.Service
	Notifier   *notifier.Service
	Tokens     *sequence.TokenService
	Orders     *sequence.OrderService
	Records    domain.TransactionRecordRepository
	Users      domain.UserRepository
}

// NewServer creates a new HTTP server instance
func NewServer(
	reconcilerSvc *reconciler.Service,
	ledgerSvc *ledger.Service,
	notifierSvc *notifier.Service,
	tokenSvc *sequence.TokenService,
	orderSvc *sequence.OrderService,
	records domain.TransactionRecordRepository,
	users domain.UserRepository,
) *Server {
	return &Server{
		Reconciler: reconcilerSvc,
		Ledger:     ledgerSvc,
		Notifier:   notifierSvc,
		Tokens:     tokenSvc,
		Orders:     orderSvc,
		Records:    records,
		Users:      users,
	}
}

// Router builds the handler chain. The health endpoint bypasses auth; all
// v1 routes sit behind the token middleware installed in cmd/server.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/exchanges/confirm", s.confirmExchange)
	mux.HandleFunc("POST /v1/sales/confirm", s.confirmSale)
	mux.HandleFunc("POST /v1/purchases/confirm", s.confirmPurchase)

	mux.HandleFunc("GET /v1/reserves", s.getReserve)
	mux.HandleFunc("GET /v1/records", s.listRecords)

	mux.HandleFunc("GET /v1/notifications/unseen", s.listUnseenNotifications)
	mux.HandleFunc("POST /v1/notifications/{id}/seen", s.markNotificationSeen)

	mux.HandleFunc("POST /v1/tokens", s.issueToken)
	mux.HandleFunc("POST /v1/orders", s.createOrder)
	mux.HandleFunc("GET /v1/orders", s.listOrders)

	return mux
}

// resolveEmployee turns the X-Employee-Email header into a display name via
// the users lookup, falling back to the raw email when the directory has no
// entry for it.
func (s *Server) resolveEmployee(ctx context.Context, r *http.Request) (string, error) {
	email := strings.TrimSpace(r.Header.Get("X-Employee-Email"))
	if email == "" {
		return "", errMissingEmployee
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return email, nil
	}
	return user.DisplayName(), nil
}
