package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	exchangev1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/exchange/v1"
	ledgerv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/ledger/v1"
	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/httplib/healthcheck"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/util"
	"github.com/shopspring/decimal"
)

const (
	// TraderHeader names the caller of a request.
	TraderHeader = "X-Trader-ID"
	// RequestIDHeader carries the request id; one is generated when absent.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

// Handler serves the exchange over JSON.
type Handler struct {
	exchange exchangev1.Exchange
	ledger   ledgerv1.Ledger
	funders  map[string]struct{}
	checks   map[string]healthcheck.Checker
	logger   logger.Interface
}

// Option configures a Handler.
type Option func(*Handler)

// WithLedger exposes approve and balance endpoints over ledger.
func WithLedger(ledger ledgerv1.Ledger) Option {
	return func(h *Handler) { h.ledger = ledger }
}

// WithDeposits exposes POST /v1/accounts/deposits to the given operators,
// who credit any trader. It needs WithLedger.
func WithDeposits(operators ...string) Option {
	return func(h *Handler) {
		if h.funders == nil {
			h.funders = make(map[string]struct{}, len(operators))
		}
		for _, op := range operators {
			if op != "" {
				h.funders[op] = struct{}{}
			}
		}
	}
}

// WithHealthCheck adds a dependency check to GET /health.
func WithHealthCheck(name string, check healthcheck.Checker) Option {
	return func(h *Handler) { h.checks[name] = check }
}

// NewHandler creates a Handler over exchange.
func NewHandler(exchange exchangev1.Exchange, log logger.Interface, opts ...Option) *Handler {
	h := &Handler{
		exchange: exchange,
		checks:   make(map[string]healthcheck.Checker),
		logger:   log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API with identity propagation and the health check.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/orders", h.placeOrder)
	mux.HandleFunc("GET /v1/orders/{id}", h.getOrder)
	mux.HandleFunc("DELETE /v1/orders/{id}", h.cancelOrder)
	mux.HandleFunc("GET /v1/book", h.getBook)

	mux.HandleFunc("GET /v1/pairs", h.listPairs)
	mux.HandleFunc("POST /v1/pairs", h.addPair)
	mux.HandleFunc("GET /v1/fees", h.getFees)
	mux.HandleFunc("PUT /v1/fees/rates", h.setFeeRates)
	mux.HandleFunc("PUT /v1/fees/recipient", h.setFeeRecipient)

	if h.ledger != nil {
		if h.funders != nil {
			mux.HandleFunc("POST /v1/accounts/deposits", h.deposit)
		}
		mux.HandleFunc("POST /v1/accounts/allowances", h.approve)
		mux.HandleFunc("GET /v1/accounts/{token}", h.account)
	}

	return healthcheck.New(h.checks).Handler(h.withIdentity(mux))
}

// withIdentity moves the request id and trader headers into the request context.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get(RequestIDHeader))
		if trader := r.Header.Get(TraderHeader); trader != "" {
			ctx = util.WithActorID(ctx, trader)
		}
		w.Header().Set(RequestIDHeader, util.GetRequestID(ctx))

		h.logger.DebugContext(ctx, "Request received",
			logger.NewField("method", r.Method),
			logger.NewField("path", r.URL.Path),
			logger.NewField("trader", util.GetActorID(ctx)),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New(errors.InvalidInput, "body", fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}

func orderID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(errors.InvalidInput, "id", fmt.Sprintf("invalid order id %q", r.PathValue("id")))
	}
	return id, nil
}

// placeOrderRequest is the body of POST /v1/orders. Quantity is a quote budget
// for a market buy.
type placeOrderRequest struct {
	Type     orderreaderv1.CommandType `json:"type"`
	Pair     string                    `json:"pair"`
	Side     orderv1.Side              `json:"side"`
	Price    decimal.Decimal           `json:"price"`
	Quantity decimal.Decimal           `json:"quantity"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	var (
		result *exchangev1.PlaceResult
		err    error
	)
	switch req.Type {
	case orderreaderv1.CommandLimit, "":
		result, err = h.exchange.PlaceLimit(ctx, req.Pair, req.Side, req.Price, req.Quantity)
	case orderreaderv1.CommandMarket:
		if !req.Price.IsZero() {
			err = errors.New(errors.InvalidInput, "price", "market orders take no price")
			break
		}
		result, err = h.exchange.PlaceMarket(ctx, req.Pair, req.Side, req.Quantity)
	case orderreaderv1.CommandIOC:
		result, err = h.exchange.PlaceIOC(ctx, req.Pair, req.Side, req.Price, req.Quantity)
	case orderreaderv1.CommandFOK:
		result, err = h.exchange.PlaceFOK(ctx, req.Pair, req.Side, req.Price, req.Quantity)
	default:
		err = errors.New(errors.InvalidInput, "type", fmt.Sprintf("unknown order type %q", req.Type))
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.exchange.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.exchange.Cancel(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	levels := 0
	if v := r.URL.Query().Get("levels"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, r, errors.New(errors.InvalidInput, "levels", fmt.Sprintf("invalid levels %q", v)))
			return
		}
		levels = n
	}

	depth, err := h.exchange.GetBookDepth(r.Context(), r.URL.Query().Get("pair"), levels)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, depth)
}

func (h *Handler) listPairs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.exchange.Pairs())
}

type addPairRequest struct {
	Base         string `json:"base"`
	Quote        string `json:"quote"`
	BaseDecimals int32  `json:"baseDecimals"`
}

func (h *Handler) addPair(w http.ResponseWriter, r *http.Request) {
	var req addPairRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.exchange.AddSupportedPair(r.Context(), req.Base, req.Quote, req.BaseDecimals)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pair)
}

func (h *Handler) getFees(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.exchange.FeeConfig())
}

type feeRatesRequest struct {
	MakerBps uint32 `json:"makerBps"`
	TakerBps uint32 `json:"takerBps"`
}

func (h *Handler) setFeeRates(w http.ResponseWriter, r *http.Request) {
	var req feeRatesRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.exchange.SetFeeRates(r.Context(), req.MakerBps, req.TakerBps); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.exchange.FeeConfig())
}

type feeRecipientRequest struct {
	Recipient string `json:"recipient"`
}

func (h *Handler) setFeeRecipient(w http.ResponseWriter, r *http.Request) {
	var req feeRecipientRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.exchange.SetFeeRecipient(r.Context(), req.Recipient); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.exchange.FeeConfig())
}

type amountRequest struct {
	Token  string          `json:"token"`
	Amount decimal.Decimal `json:"amount"`
}

// accountResponse reports one trader's position in one token.
type accountResponse struct {
	Trader    string          `json:"trader"`
	Token     string          `json:"token"`
	Balance   decimal.Decimal `json:"balance"`
	Allowance decimal.Decimal `json:"allowance"`
}

func (h *Handler) trader(r *http.Request) (string, error) {
	trader := util.GetActorID(r.Context())
	if trader == "" {
		return "", exchangev1.ErrNoActor
	}
	return trader, nil
}

// depositRequest credits Trader. Only operators may send it.
type depositRequest struct {
	Trader string          `json:"trader"`
	Token  string          `json:"token"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	operator, err := h.trader(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, ok := h.funders[operator]; !ok {
		h.writeError(w, r, fmt.Errorf("%w: %s may not deposit", exchangev1.ErrUnauthorized, operator))
		return
	}

	var req depositRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.ledger.Deposit(r.Context(), req.Trader, req.Token, req.Amount); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Deposit credited",
		logger.NewField("operator", operator),
		logger.NewField("trader", req.Trader),
		logger.NewField("token", req.Token),
		logger.NewField("amount", req.Amount.String()),
	)
	h.writeAccount(w, r, req.Trader, req.Token)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	trader, err := h.trader(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req amountRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.ledger.Approve(r.Context(), trader, req.Token, req.Amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeAccount(w, r, trader, req.Token)
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	trader, err := h.trader(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeAccount(w, r, trader, r.PathValue("token"))
}

func (h *Handler) writeAccount(w http.ResponseWriter, r *http.Request, trader, token string) {
	balance, err := h.ledger.BalanceOf(r.Context(), trader, token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	allowance, err := h.ledger.AllowanceOf(r.Context(), trader, token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		Trader:    trader,
		Token:     token,
		Balance:   balance,
		Allowance: allowance,
	})
}
