package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/handler"
	apimiddleware "github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/middleware"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/repository/docstore"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase/mocks"
)

const testEntityID = "urban-threads"

// newTestRouter wires the full stack over an in-memory store, seeded with the
// demo entity and its investment policy, clock pinned to 2025-03-03.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	backend := docstore.NewMemoryBackend()
	txManager := docstore.NewTxManager(backend)
	idGen := &mocks.StubIDGenerator{Prefix: "id"}

	clockRepo := docstore.NewClockRepo(backend)
	ledgerRepo := docstore.NewLedgerRepo(backend)
	orderRepo := docstore.NewOrderRepo(backend)
	portfolioRepo := docstore.NewPortfolioRepo(backend)
	auditRepo := docstore.NewAuditRepo(backend)
	policyRepo := docstore.NewPolicyRepo(backend)
	entityRepo := docstore.NewEntityRepo(backend)
	sessions := mocks.NewMockSessionStore()

	fundsUC := usecase.NewFundsUsecase(ledgerRepo, auditRepo, txManager, idGen)
	orderUC := usecase.NewOrderUsecase(orderRepo, ledgerRepo, portfolioRepo, policyRepo, auditRepo, clockRepo, txManager, idGen)
	settlementUC := usecase.NewSettlementUsecase(orderRepo, ledgerRepo, portfolioRepo, auditRepo, clockRepo, txManager, idGen)
	clockUC := usecase.NewClockUsecase(clockRepo, settlementUC, txManager)
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)
	authUC := usecase.NewAuthUsecase(sessions, auditRepo, entityRepo, txManager, idGen, time.Hour)
	entityUC := usecase.NewEntityUsecase(entityRepo, policyRepo, txManager)

	if err := entityUC.Seed(ctx, testEntityID, "Urban Threads Pvt Ltd", &domain.Policy{
		MinRating:             "A",
		MaxTenorDays:          364,
		ConcentrationCap:      decimal.RequireFromString("0.25"),
		MakerCheckerThreshold: decimal.RequireFromString("2500000"),
	}); err != nil {
		t.Fatalf("seed entity: %v", err)
	}

	tx, err := txManager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	clock := domain.NewClock(domain.NewDate(2025, time.March, 3), time.Now())
	if err := clockRepo.Save(ctx, tx, clock); err != nil {
		t.Fatalf("save clock: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit clock: %v", err)
	}

	logger := zerolog.Nop()

	return NewRouter(RouterConfig{
		FundsHandler:      handler.NewFundsHandler(fundsUC, settlementUC, logger),
		OrderHandler:      handler.NewOrderHandler(orderUC, settlementUC, logger),
		PortfolioHandler:  handler.NewPortfolioHandler(portfolioUC),
		AuditHandler:      handler.NewAuditHandler(auditUC),
		ClockHandler:      handler.NewClockHandler(clockUC, settlementUC, logger),
		AuthHandler:       handler.NewAuthHandler(authUC, testEntityID),
		EntityHandler:     handler.NewEntityHandler(entityUC),
		HealthHandler:     handler.NewHealthHandler(backend, nil),
		SessionMiddleware: apimiddleware.NewSessionMiddleware(sessions, testEntityID),
		Logger:            logger,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected /ready to return 200, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestRouterRegistersKeyRoutes(t *testing.T) {
	router := newTestRouter(t)

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/session",
		"POST /api/v1/funds/",
		"POST /api/v1/funds/withdraw",
		"GET /api/v1/balances",
		"GET /api/v1/ledger",
		"POST /api/v1/orders/",
		"GET /api/v1/orders/",
		"GET /api/v1/orders/{id}",
		"POST /api/v1/orders/{id}/approve",
		"POST /api/v1/orders/{id}/reject",
		"GET /api/v1/portfolio",
		"GET /api/v1/audit",
		"GET /api/v1/clock/",
		"POST /api/v1/clock/advance",
		"POST /api/v1/settlement/run",
		"GET /api/v1/entities",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestRouterLoginAndSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", `{"email":"maker@urban-threads.example","name":"Maker","role":"maker"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected login to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var login dto.SessionResponse
	decodeInto(t, rec, &login)
	if login.Token == "" {
		t.Fatal("expected login to issue a token")
	}
	if login.EntityID != testEntityID {
		t.Fatalf("expected default entity scope, got %q", login.EntityID)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	sessRec := httptest.NewRecorder()
	router.ServeHTTP(sessRec, req)
	if sessRec.Code != http.StatusOK {
		t.Fatalf("expected session lookup to return 200, got %d", sessRec.Code)
	}

	var session dto.SessionResponse
	decodeInto(t, sessRec, &session)
	if session.Email != "maker@urban-threads.example" {
		t.Fatalf("expected session to carry login email, got %+v", session)
	}

	anonRec := doJSON(t, router, http.MethodGet, "/api/v1/auth/session", "")
	if anonRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous session lookup to return 401, got %d", anonRec.Code)
	}
}

func TestRouterRejectsUnknownToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", rec.Code)
	}
}

func TestRouterFundsFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"250000","method":"UPI","reference":"UTR-1001"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected deposit to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/funds/withdraw", `{"amount":"50000","reference":"vendor payout"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected withdrawal to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/balances", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected balances to return 200, got %d", rec.Code)
	}

	var balances dto.BalancesResponse
	decodeInto(t, rec, &balances)
	if !balances.Available.Equal(decimal.RequireFromString("200000")) {
		t.Fatalf("expected available 200000, got %s", balances.Available)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/funds/withdraw", `{"amount":"500000","reference":"too much"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected overdraft to return 422, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"1000","method":"CASH","reference":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown method to return 400, got %d", rec.Code)
	}
}

func TestRouterOrderLifecycleToMaturity(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"2000000","method":"RTGS","reference":"UTR-2001"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected deposit to return 201, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders/", `{
		"instrument_slug": "axis-fd-91d",
		"instrument_name": "Axis Bank FD",
		"rating": "AA",
		"amount": "1500000",
		"expected_yield": "6.85",
		"tenor_days": 28
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected order to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var order dto.OrderResponse
	decodeInto(t, rec, &order)
	if order.Status != string(domain.OrderSettled) {
		t.Fatalf("expected same-day order to settle, got %q", order.Status)
	}
	if !order.Fee.Equal(decimal.RequireFromString("750")) {
		t.Fatalf("expected fee 750, got %s", order.Fee)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/balances", "")
	var balances dto.BalancesResponse
	decodeInto(t, rec, &balances)
	if !balances.Available.Equal(decimal.RequireFromString("500000")) {
		t.Fatalf("expected available 500000, got %s", balances.Available)
	}
	if !balances.Invested.Equal(decimal.RequireFromString("1500000")) {
		t.Fatalf("expected invested 1500000, got %s", balances.Invested)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/portfolio", "")
	var portfolio dto.PortfolioResponse
	decodeInto(t, rec, &portfolio)
	if len(portfolio.Holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(portfolio.Holdings))
	}
	if !portfolio.ProjectedInterest.Equal(decimal.RequireFromString("7882.19")) {
		t.Fatalf("expected projected interest 7882.19, got %s", portfolio.ProjectedInterest)
	}

	var advance dto.AdvanceResponse
	for i := 0; i < 28; i++ {
		rec = doJSON(t, router, http.MethodPost, "/api/v1/clock/advance", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected advance to return 200, got %d", rec.Code)
		}
		decodeInto(t, rec, &advance)
	}
	if advance.Date != "2025-03-31" {
		t.Fatalf("expected clock at 2025-03-31, got %s", advance.Date)
	}
	if len(advance.Report.MaturedHoldings) != 1 {
		t.Fatalf("expected maturity on final day, got %+v", advance.Report)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/balances", "")
	decodeInto(t, rec, &balances)
	if !balances.Available.Equal(decimal.RequireFromString("2007882.19")) {
		t.Fatalf("expected available 2007882.19 after maturity, got %s", balances.Available)
	}
	if !balances.Invested.IsZero() {
		t.Fatalf("expected invested 0 after maturity, got %s", balances.Invested)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/portfolio", "")
	decodeInto(t, rec, &portfolio)
	if len(portfolio.Holdings) != 0 {
		t.Fatalf("expected empty portfolio after maturity, got %d holdings", len(portfolio.Holdings))
	}
}

func TestRouterMakerCheckerFlow(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"4000000","method":"RTGS","reference":"UTR-3001"}`)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders/", `{
		"instrument_slug": "hdfc-fd-180d",
		"instrument_name": "HDFC Bank FD",
		"rating": "AAA",
		"amount": "3000000",
		"expected_yield": "7.1",
		"tenor_days": 180
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected order to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var order dto.OrderResponse
	decodeInto(t, rec, &order)
	if order.Status != string(domain.OrderPendingApproval) {
		t.Fatalf("expected above-threshold order to pend, got %q", order.Status)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/approve", `{"comment":"within limits"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected approval to return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &order)
	if order.Status != string(domain.OrderSettled) {
		t.Fatalf("expected approved same-day order to settle, got %q", order.Status)
	}
	if len(order.Approvals) != 1 {
		t.Fatalf("expected 1 approval on record, got %d", len(order.Approvals))
	}
}

func TestRouterOrderRejectFlow(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"4000000","method":"NEFT","reference":"UTR-4001"}`)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders/", `{
		"instrument_slug": "sbi-fd-364d",
		"instrument_name": "SBI FD",
		"rating": "AAA",
		"amount": "2600000",
		"expected_yield": "7.4",
		"tenor_days": 364
	}`)
	var order dto.OrderResponse
	decodeInto(t, rec, &order)
	if order.Status != string(domain.OrderPendingApproval) {
		t.Fatalf("expected pending order, got %q", order.Status)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/reject", `{"reason":"rates moved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected rejection to return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &order)
	if order.Status != string(domain.OrderRejected) {
		t.Fatalf("expected rejected order, got %q", order.Status)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/approve", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected approving a rejected order to return 409, got %d", rec.Code)
	}
}

func TestRouterPolicyViolationResponse(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/funds/", `{"amount":"1000000","method":"UPI","reference":"UTR-5001"}`)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders/", `{
		"instrument_slug": "junk-fd-400d",
		"instrument_name": "Junk FD",
		"rating": "BBB",
		"amount": "500000",
		"expected_yield": "9.5",
		"tenor_days": 400
	}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected policy violation to return 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var errResp dto.ErrorResponse
	decodeInto(t, rec, &errResp)
	if len(errResp.Violations) != 2 {
		t.Fatalf("expected 2 violations in response, got %+v", errResp.Violations)
	}
}

func TestRouterIdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &recordingIdempotencyStore{}
	backend := docstore.NewMemoryBackend()
	logger := zerolog.Nop()

	router := NewRouter(RouterConfig{
		FundsHandler: handler.NewFundsHandler(
			usecase.NewFundsUsecase(
				docstore.NewLedgerRepo(backend),
				docstore.NewAuditRepo(backend),
				docstore.NewTxManager(backend),
				&mocks.StubIDGenerator{Prefix: "id"},
			),
			nil,
			logger,
		),
		HealthHandler:    handler.NewHealthHandler(backend, nil),
		IdempotencyStore: store,
		Logger:           logger,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if store.checkCalls != 0 {
		t.Fatal("expected GET request to bypass idempotency store")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/funds/withdraw", strings.NewReader(`{"amount":"10"}`))
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if store.checkCalls != 1 {
		t.Fatalf("expected idempotency store to be consulted once, got %d", store.checkCalls)
	}
}

type recordingIdempotencyStore struct {
	checkCalls int
}

func (s *recordingIdempotencyStore) CheckAndSet(ctx context.Context, key string) ([]byte, bool, error) {
	s.checkCalls++
	return nil, true, nil
}

func (s *recordingIdempotencyStore) Update(ctx context.Context, key string, response []byte) error {
	return nil
}
