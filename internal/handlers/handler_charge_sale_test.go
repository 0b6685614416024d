package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/core/services"
	"github.com/SscSPs/recharge_backend/internal/dto"
	"github.com/SscSPs/recharge_backend/internal/handlers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ChargeSaleHandlerTestSuite struct {
	handlerSuite
	svc *MockChargeSaleService
}

func (s *ChargeSaleHandlerTestSuite) SetupTest() {
	s.svc = new(MockChargeSaleService)
	handlers.RegisterChargeSaleRoutes(s.newRouter(), s.svc)
}

func (s *ChargeSaleHandlerTestSuite) TearDownTest() {
	s.svc.AssertExpectations(s.T())
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_Created() {
	req := dto.SubmitChargeSaleRequest{TransactionID: "tx-1", TargetID: "t-1", Amount: 50}
	sale := &domain.ChargeSale{
		TransactionID:       "tx-1",
		AccountID:           "acc-1",
		TargetID:            "t-1",
		Amount:              50,
		TargetBalanceBefore: 0,
		TargetBalanceAfter:  50,
		Status:              domain.ChargeSaleSuccessful,
		AuditFields:         domain.AuditFields{CreatedAt: time.Now()},
	}
	s.svc.On("SubmitChargeSale", mock.Anything, seller, req).Return(sale, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/charge-sales", req, &seller)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var body dto.ChargeSaleResponse
	s.decode(w, &body)
	s.Equal("tx-1", body.TransactionID)
	s.Equal(int64(50), body.TargetBalanceAfter)
	s.Equal(string(domain.ChargeSaleSuccessful), body.Status)
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient credit", fmt.Errorf("%w: balance 10", services.ErrInsufficientCredit), http.StatusUnprocessableEntity, "insufficient_credit"},
		{"duplicate transaction", services.ErrDuplicateTransaction, http.StatusConflict, "duplicate"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"target not found", services.ErrTargetNotFound, http.StatusNotFound, "not_found"},
		{"invariant", apperrors.ErrInvariantViolation, http.StatusInternalServerError, "invariant_violation"},
	}
	for i, tc := range cases {
		s.Run(tc.name, func() {
			req := dto.SubmitChargeSaleRequest{TransactionID: fmt.Sprintf("tx-%d", i), TargetID: "t-1", Amount: 50}
			s.svc.On("SubmitChargeSale", mock.Anything, seller, req).Return(nil, tc.err).Once()

			w := s.do(http.MethodPost, "/api/v1/charge-sales", req, &seller)
			s.assertError(w, tc.status, tc.code)
		})
	}
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_TransientSetsRetryAfter() {
	req := dto.SubmitChargeSaleRequest{TransactionID: "tx-busy", TargetID: "t-1", Amount: 50}
	s.svc.On("SubmitChargeSale", mock.Anything, seller, req).Return(nil, apperrors.ErrTransient).Once()

	w := s.do(http.MethodPost, "/api/v1/charge-sales", req, &seller)

	s.assertError(w, http.StatusServiceUnavailable, "transient")
	s.Equal("1", w.Header().Get("Retry-After"))
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_InternalErrorHidesDetails() {
	req := dto.SubmitChargeSaleRequest{TransactionID: "tx-x", TargetID: "t-1", Amount: 50}
	s.svc.On("SubmitChargeSale", mock.Anything, seller, req).Return(nil, fmt.Errorf("connection reset by peer")).Once()

	w := s.do(http.MethodPost, "/api/v1/charge-sales", req, &seller)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "connection reset")
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_BindingRejectsBadInput() {
	for name, body := range map[string]any{
		"zero amount":     dto.SubmitChargeSaleRequest{TransactionID: "tx", TargetID: "t", Amount: 0},
		"negative amount": map[string]any{"transactionID": "tx", "targetID": "t", "amount": -5},
		"missing target":  dto.SubmitChargeSaleRequest{TransactionID: "tx", Amount: 5},
		"missing tx id":   dto.SubmitChargeSaleRequest{TargetID: "t", Amount: 5},
	} {
		s.Run(name, func() {
			w := s.do(http.MethodPost, "/api/v1/charge-sales", body, &seller)
			s.assertError(w, http.StatusBadRequest, "validation")
		})
	}
	s.svc.AssertNotCalled(s.T(), "SubmitChargeSale", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ChargeSaleHandlerTestSuite) TestSubmit_RequiresToken() {
	w := s.do(http.MethodPost, "/api/v1/charge-sales", dto.SubmitChargeSaleRequest{TransactionID: "tx", TargetID: "t", Amount: 5}, nil)
	s.assertError(w, http.StatusUnauthorized, "unauthorized")
}

func (s *ChargeSaleHandlerTestSuite) TestGet() {
	sale := &domain.ChargeSale{TransactionID: "tx-9", AccountID: "acc-1", TargetID: "t-1", Amount: 5, Status: domain.ChargeSaleSuccessful}
	s.svc.On("GetChargeSale", mock.Anything, seller, "tx-9").Return(sale, nil).Once()
	s.svc.On("GetChargeSale", mock.Anything, seller, "missing").Return(nil, services.ErrChargeSaleNotFound).Once()

	w := s.do(http.MethodGet, "/api/v1/charge-sales/tx-9", nil, &seller)
	s.Equal(http.StatusOK, w.Code)
	var body dto.ChargeSaleResponse
	s.decode(w, &body)
	s.Equal("tx-9", body.TransactionID)

	w = s.do(http.MethodGet, "/api/v1/charge-sales/missing", nil, &seller)
	s.assertError(w, http.StatusNotFound, "not_found")
}

func (s *ChargeSaleHandlerTestSuite) TestList_PassesPaginationThrough() {
	next := "tok-2"
	expected := domain.ListParams{AccountID: "acc-1", Limit: 10, NextToken: ptr("tok-1")}
	s.svc.On("ListChargeSales", mock.Anything, admin, expected).
		Return([]domain.ChargeSale{{TransactionID: "a"}, {TransactionID: "b"}}, &next, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/charge-sales?accountID=acc-1&limit=10&nextToken=tok-1", nil, &admin)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var body dto.ListChargeSalesResponse
	s.decode(w, &body)
	s.Len(body.ChargeSales, 2)
	s.Require().NotNil(body.NextToken)
	s.Equal("tok-2", *body.NextToken)
}

func (s *ChargeSaleHandlerTestSuite) TestList_RejectsOversizedLimit() {
	w := s.do(http.MethodGet, "/api/v1/charge-sales?limit=1000", nil, &seller)
	s.assertError(w, http.StatusBadRequest, "validation")
}

func TestChargeSaleHandler(t *testing.T) {
	suite.Run(t, new(ChargeSaleHandlerTestSuite))
}
