package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/reconciler"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/valuation"
)

var errMissingEmployee = errors.New("missing X-Employee-Email header")

// Numeric request fields arrive as strings, exactly as the terminal forms
// submit them; unparsable values become zero (valuation.ParseAmount) and
// negatives are rejected here, before any policy runs.

type confirmExchangeRequest struct {
	CustomerName string `json:"customerName"`
	Metal        string `json:"metal"`
	Weight       string `json:"weight"`
	Touch        string `json:"touch"`
	Less         string `json:"less"`
	Source       string `json:"source"`
}

type confirmSaleRequest struct {
	CustomerName string `json:"customerName"`
	Metal        string `json:"metal"`
	Weight       string `json:"weight"`
	Rate         string `json:"rate"`
	Mode         string `json:"mode"`
	Source       string `json:"source"`
}

type confirmPurchaseRequest struct {
	CustomerName string `json:"customerName"`
	Metal        string `json:"metal"`
	SubType      string `json:"subType"`
	Weight       string `json:"weight"`
	Touch        string `json:"touch"`
	Less         string `json:"less"`
	Rate         string `json:"rate"`
	PaymentType  string `json:"paymentType"`
	CashMode     string `json:"cashMode"`
}

type outcomeResponse struct {
	State      string            `json:"state"`
	Source     string            `json:"source,omitempty"`
	Available  string            `json:"available,omitempty"`
	Remaining  string            `json:"remaining,omitempty"`
	NewBalance string            `json:"newBalance,omitempty"`
	RecordID   string            `json:"recordId,omitempty"`
	Figures    map[string]string `json:"figures,omitempty"`
}

func (s *Server) confirmExchange(w http.ResponseWriter, r *http.Request) {
	var req confirmExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weight := valuation.ParseAmount(req.Weight)
	touch := valuation.ParseAmount(req.Touch)
	less := valuation.ParseAmount(req.Less)
	if weight.IsNegative() || touch.IsNegative() || less.IsNegative() {
		writeError(w, http.StatusBadRequest, "numeric fields must not be negative")
		return
	}

	figures := valuation.Exchange(weight, touch, less)

	employee, err := s.resolveEmployee(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	outcome, err := s.Reconciler.Reconcile(r.Context(), employee, reconciler.ExchangeRequest{
		CustomerName: req.CustomerName,
		Metal:        domain.MetalType(req.Metal),
		Weight:       weight,
		Touch:        touch,
		Less:         less,
		LessAuto:     figures.LessAuto,
		Fine:         figures.Fine,
		Amount:       figures.Amount,
		Source:       req.Source,
	})
	s.writeOutcome(w, outcome, err, map[string]string{
		"lessAuto": figures.LessAuto.String(),
		"fine":     figures.Fine.String(),
		"amount":   figures.Amount.String(),
	})
}

func (s *Server) confirmSale(w http.ResponseWriter, r *http.Request) {
	var req confirmSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weight := valuation.ParseAmount(req.Weight)
	rate := valuation.ParseAmount(req.Rate)
	if weight.IsNegative() || rate.IsNegative() {
		writeError(w, http.StatusBadRequest, "numeric fields must not be negative")
		return
	}

	amount := valuation.SaleAmount(weight, rate)

	employee, err := s.resolveEmployee(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	outcome, err := s.Reconciler.Reconcile(r.Context(), employee, reconciler.SaleRequest{
		CustomerName: req.CustomerName,
		Metal:        domain.MetalType(req.Metal),
		Weight:       weight,
		Rate:         rate,
		Amount:       amount,
		Mode:         domain.PaymentMode(req.Mode),
		Source:       req.Source,
	})
	s.writeOutcome(w, outcome, err, map[string]string{
		"amount": amount.String(),
	})
}

func (s *Server) confirmPurchase(w http.ResponseWriter, r *http.Request) {
	var req confirmPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weight := valuation.ParseAmount(req.Weight)
	touch := valuation.ParseAmount(req.Touch)
	less := valuation.ParseAmount(req.Less)
	rate := valuation.ParseAmount(req.Rate)
	if weight.IsNegative() || touch.IsNegative() || less.IsNegative() || rate.IsNegative() {
		writeError(w, http.StatusBadRequest, "numeric fields must not be negative")
		return
	}

	subType := domain.PurchaseSubType(req.SubType)
	var figures valuation.PurchaseFigures
	switch subType {
	case domain.SubTypeKachaGold, domain.SubTypeKachaSilver:
		figures = valuation.KachaPurchase(weight, touch, less, rate)
	case domain.SubTypeFineGold, domain.SubTypeFineSilver:
		figures = valuation.FinePurchase(weight, rate)
	default:
		writeError(w, http.StatusBadRequest, "invalid purchase sub type")
		return
	}

	employee, err := s.resolveEmployee(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	outcome, err := s.Reconciler.Reconcile(r.Context(), employee, reconciler.PurchaseRequest{
		CustomerName: req.CustomerName,
		Metal:        domain.MetalType(req.Metal),
		SubType:      subType,
		Weight:       weight,
		Touch:        touch,
		Less:         less,
		LessAuto:     figures.LessAuto,
		Fine:         figures.Fine,
		Rate:         rate,
		Amount:       figures.Amount,
		PaymentType:  domain.PurchasePayment(req.PaymentType),
		CashMode:     domain.CashMode(req.CashMode),
	})
	s.writeOutcome(w, outcome, err, map[string]string{
		"fine":   figures.Fine.String(),
		"amount": figures.Amount.String(),
	})
}

// writeOutcome maps a reconciliation result onto the wire: BLOCKED is 409
// (the terminal must disable approve and show the insufficiency), storage
// faults are 502, anything else the caller got wrong is 400.
func (s *Server) writeOutcome(w http.ResponseWriter, outcome *reconciler.Outcome, err error, figures map[string]string) {
	if err != nil {
		if domain.IsStorageError(err) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := outcomeResponse{
		State:   string(outcome.State),
		Source:  outcome.Source.Name,
		Figures: figures,
	}

	if outcome.State == reconciler.StateBlocked {
		resp.Available = outcome.Available.String()
		resp.Remaining = outcome.Remaining.String()
		writeJSON(w, http.StatusConflict, resp)
		return
	}

	resp.NewBalance = outcome.NewBalance.String()
	if outcome.Record != nil {
		resp.RecordID = outcome.Record.ID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getReserve(w http.ResponseWriter, r *http.Request) {
	bucket := domain.ReserveBucket{
		Kind: domain.ReserveKind(r.URL.Query().Get("kind")),
		Name: r.URL.Query().Get("name"),
	}
	if err := bucket.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := s.Ledger.GetBalance(r.Context(), bucket.Kind, bucket.Name)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"kind":    string(bucket.Kind),
		"name":    bucket.Name,
		"balance": balance.String(),
	})
}

// listRecords serves the transaction registers, one kind per request,
// newest first.
func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	kind := domain.TransactionKind(r.URL.Query().Get("kind"))
	switch kind {
	case domain.TransactionExchange, domain.TransactionSale, domain.TransactionPurchase:
	default:
		writeError(w, http.StatusBadRequest, "kind must be EXCHANGE, SALE or PURCHASE")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	records, err := s.Records.List(r.Context(), kind, limit, offset)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	total, err := s.Records.Count(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	type recordResponse struct {
		ID           string `json:"id"`
		CustomerName string `json:"customerName"`
		Metal        string `json:"metal"`
		SubType      string `json:"subType,omitempty"`
		Weight       string `json:"weight"`
		Touch        string `json:"touch"`
		Less         string `json:"less"`
		LessAuto     string `json:"lessAuto"`
		Fine         string `json:"fine"`
		Rate         string `json:"rate"`
		Amount       string `json:"amount"`
		Mode         string `json:"mode,omitempty"`
		PaymentType  string `json:"paymentType,omitempty"`
		CashMode     string `json:"cashMode,omitempty"`
		Source       string `json:"source,omitempty"`
		Employee     string `json:"employee"`
		Date         string `json:"date"`
	}

	items := make([]recordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, recordResponse{
			ID:           record.ID.String(),
			CustomerName: record.CustomerName,
			Metal:        string(record.Metal),
			SubType:      string(record.SubType),
			Weight:       record.Weight.String(),
			Touch:        record.Touch.String(),
			Less:         record.Less.String(),
			LessAuto:     record.LessAuto.String(),
			Fine:         record.Fine.String(),
			Rate:         record.Rate.String(),
			Amount:       record.Amount.String(),
			Mode:         string(record.Mode),
			PaymentType:  string(record.PaymentType),
			CashMode:     string(record.CashMode),
			Source:       record.Source,
			Employee:     record.Employee,
			Date:         record.Date,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": items,
		"total":   total,
	})
}

func (s *Server) listUnseenNotifications(w http.ResponseWriter, r *http.Request) {
	events, err := s.Notifier.ListUnseen(r.Context(), r.URL.Query().Get("reserveType"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	type notificationResponse struct {
		ID          string `json:"id"`
		ReserveType string `json:"reserveType"`
		Message     string `json:"message"`
		Link        string `json:"link"`
		CreatedAt   string `json:"createdAt"`
	}

	resp := make([]notificationResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, notificationResponse{
			ID:          ev.ID.String(),
			ReserveType: ev.ReserveType,
			Message:     ev.Message,
			Link:        ev.Link,
			CreatedAt:   ev.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) markNotificationSeen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.Notifier.MarkSeen(r.Context(), id); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seen": true})
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Purpose string `json:"purpose"`
		Amount  string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount := valuation.ParseAmount(req.Amount)
	if amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	token, err := s.Tokens.Issue(r.Context(), req.Name, req.Purpose, amount)
	if err != nil {
		if domain.IsStorageError(err) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"tokenNo": token.TokenNo,
		"date":    token.Date,
	})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    string `json:"customerName"`
		CustomerContact string `json:"customerContact"`
		Receiver        string `json:"receiver"`
		Items           []struct {
			Metal    string `json:"metal"`
			Ornament string `json:"ornament"`
			Quantity int    `json:"quantity"`
			Weight   string `json:"weight"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &domain.Order{
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Receiver:        req.Receiver,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			Metal:    item.Metal,
			Ornament: item.Ornament,
			Quantity: item.Quantity,
			Weight:   valuation.ParseAmount(item.Weight),
		})
	}

	created, err := s.Orders.Create(r.Context(), order)
	if err != nil {
		if domain.IsStorageError(err) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"orderId": created.OrderID})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	type itemResponse struct {
		Metal    string `json:"metal"`
		Ornament string `json:"ornament"`
		Quantity int    `json:"quantity"`
		Weight   string `json:"weight"`
	}
	type orderResponse struct {
		OrderID         string         `json:"orderId"`
		CustomerName    string         `json:"customerName"`
		CustomerContact string         `json:"customerContact"`
		Receiver        string         `json:"receiver"`
		Items           []itemResponse `json:"items"`
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		o := orderResponse{
			OrderID:         order.OrderID,
			CustomerName:    order.CustomerName,
			CustomerContact: order.CustomerContact,
			Receiver:        order.Receiver,
			Items:           []itemResponse{},
		}
		for _, item := range order.Items {
			o.Items = append(o.Items, itemResponse{
				Metal:    item.Metal,
				Ornament: item.Ornament,
				Quantity: item.Quantity,
				Weight:   item.Weight.String(),
			})
		}
		resp = append(resp, o)
	}
	writeJSON(w, http.StatusOK, resp)
}
