package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portssvc "github.com/SscSPs/recharge_backend/internal/core/ports/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/handlers"
	"github.com/SscSPs/recharge_backend/internal/middleware"
	"github.com/SscSPs/recharge_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ChargeSaleService ---
type MockChargeSaleService struct {
	mock.Mock
}

func (m *MockChargeSaleService) SubmitChargeSale(ctx context.Context, caller domain.Caller, req dto.SubmitChargeSaleRequest) (*domain.ChargeSale, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargeSale), args.Error(1)
}

func (m *MockChargeSaleService) GetChargeSale(ctx context.Context, caller domain.Caller, transactionID string) (*domain.ChargeSale, error) {
	args := m.Called(ctx, caller, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargeSale), args.Error(1)
}

func (m *MockChargeSaleService) ListChargeSales(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.ChargeSale, *string, error) {
	args := m.Called(ctx, caller, params)
	var next *string
	if n := args.Get(1); n != nil {
		next = n.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.ChargeSale), next, args.Error(2)
}

var _ portssvc.ChargeSaleSvcFacade = (*MockChargeSaleService)(nil)

// --- Mock CreditRequestService ---
type MockCreditRequestService struct {
	mock.Mock
}

func (m *MockCreditRequestService) SubmitCreditRequest(ctx context.Context, caller domain.Caller, req dto.SubmitCreditRequestRequest) (*domain.CreditRequest, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestService) ProcessCreditRequest(ctx context.Context, caller domain.Caller, requestID string, decision domain.Decision) (*domain.CreditRequest, error) {
	args := m.Called(ctx, caller, requestID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestService) GetCreditRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.CreditRequest, error) {
	args := m.Called(ctx, caller, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestService) ListCreditRequests(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.CreditRequest, *string, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.CreditRequest), nil, args.Error(2)
}

var _ portssvc.CreditRequestSvcFacade = (*MockCreditRequestService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetTarget(ctx context.Context, targetID string) (*domain.Target, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Target), args.Error(1)
}

func (m *MockAccountService) GetTargetByExternalID(ctx context.Context, externalID string) (*domain.Target, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Target), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) SumByAccount(ctx context.Context, caller domain.Caller, accountID string, filter domain.LedgerFilter) (int64, error) {
	args := m.Called(ctx, caller, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Replay(ctx context.Context, caller domain.Caller, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, caller, accountID, afterSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Reconcile(ctx context.Context, caller domain.Caller, accountID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, caller, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, caller domain.Caller, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), nil, args.Error(2)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Shared suite plumbing ---

const testJWTSecret = "test-secret-for-handler-tests"

var (
	seller = domain.Caller{
		UserID:       "seller-1",
		AccountID:    "acc-1",
		Capabilities: []domain.Capability{domain.CapabilityAccountOwner},
	}
	admin = domain.Caller{
		UserID:       "admin-1",
		Capabilities: []domain.Capability{domain.CapabilityAdministrator},
	}
)

// handlerSuite holds the router and token helpers shared by handler suites.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *handlerSuite) newRouter() *gin.RouterGroup {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	s.router = gin.New()
	return s.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
}

func (s *handlerSuite) token(caller domain.Caller) string {
	tok, err := utils.GenerateJWT(caller, testJWTSecret, time.Hour, "test")
	s.Require().NoError(err)
	return tok
}

// do sends a request as caller. A nil caller sends no Authorization header.
func (s *handlerSuite) do(method, path string, body any, caller *domain.Caller) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(*caller))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *handlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, w.Code, w.Body.String())
	var body dto.ErrorResponse
	s.decode(w, &body)
	s.Equal(code, body.Code)
	s.NotEmpty(body.Error)
}

func ptr[T any](v T) *T { return &v }
