package handlers_test

import (
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

type CreditRequestHandlerTestSuite struct {
	handlerSuite
	svc *MockCreditRequestService
}

func (s *CreditRequestHandlerTestSuite) SetupTest() {
	s.svc = new(MockCreditRequestService)
	handlers.RegisterCreditRequestRoutes(s.newRouter(), s.svc)
}

func (s *CreditRequestHandlerTestSuite) TearDownTest() {
	s.svc.AssertExpectations(s.T())
}

func (s *CreditRequestHandlerTestSuite) TestSubmit_CreatedAsPending() {
	req := dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 1000}
	created := &domain.CreditRequest{
		RequestID:   "req-1",
		ReferenceID: "ref-1",
		AccountID:   "acc-1",
		Amount:      1000,
		Status:      domain.CreditRequestPending,
		CreatedAt:   time.Now(),
	}
	s.svc.On("SubmitCreditRequest", mock.Anything, seller, req).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests", req, &seller)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var body dto.CreditRequestResponse
	s.decode(w, &body)
	s.Equal("req-1", body.RequestID)
	s.Equal("pending", body.Status)
	s.Nil(body.ProcessedAt)
}

func (s *CreditRequestHandlerTestSuite) TestSubmit_DuplicateReference() {
	req := dto.SubmitCreditRequestRequest{ReferenceID: "ref-1", Amount: 1000}
	s.svc.On("SubmitCreditRequest", mock.Anything, seller, req).Return(nil, services.ErrDuplicateReference).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests", req, &seller)
	s.assertError(w, http.StatusConflict, "duplicate")
}

func (s *CreditRequestHandlerTestSuite) TestProcess_Approve() {
	processedAt := time.Now()
	approved := &domain.CreditRequest{RequestID: "req-1", Amount: 1000, Status: domain.CreditRequestApproved, ProcessedAt: &processedAt}
	s.svc.On("ProcessCreditRequest", mock.Anything, admin, "req-1", domain.DecisionApprove).Return(approved, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests/req-1/process", dto.ProcessCreditRequestRequest{Action: "approve"}, &admin)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var body dto.CreditRequestResponse
	s.decode(w, &body)
	s.Equal("approved", body.Status)
	s.NotNil(body.ProcessedAt)
}

func (s *CreditRequestHandlerTestSuite) TestProcess_Reject() {
	rejected := &domain.CreditRequest{RequestID: "req-2", Status: domain.CreditRequestRejected}
	s.svc.On("ProcessCreditRequest", mock.Anything, admin, "req-2", domain.DecisionReject).Return(rejected, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests/req-2/process", dto.ProcessCreditRequestRequest{Action: "reject"}, &admin)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *CreditRequestHandlerTestSuite) TestProcess_AlreadyProcessed() {
	s.svc.On("ProcessCreditRequest", mock.Anything, admin, "req-1", domain.DecisionApprove).Return(nil, services.ErrAlreadyProcessed).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests/req-1/process", dto.ProcessCreditRequestRequest{Action: "approve"}, &admin)
	s.assertError(w, http.StatusConflict, "already_processed")
}

func (s *CreditRequestHandlerTestSuite) TestProcess_SellerIsForbidden() {
	s.svc.On("ProcessCreditRequest", mock.Anything, seller, "req-1", domain.DecisionApprove).Return(nil, apperrors.ErrForbidden).Once()

	w := s.do(http.MethodPost, "/api/v1/credit-requests/req-1/process", dto.ProcessCreditRequestRequest{Action: "approve"}, &seller)
	s.assertError(w, http.StatusForbidden, "forbidden")
}

func (s *CreditRequestHandlerTestSuite) TestProcess_UnknownAction() {
	w := s.do(http.MethodPost, "/api/v1/credit-requests/req-1/process", map[string]string{"action": "maybe"}, &admin)
	s.assertError(w, http.StatusBadRequest, "validation")
}

func (s *CreditRequestHandlerTestSuite) TestGetAndList() {
	found := &domain.CreditRequest{RequestID: "req-1", AccountID: "acc-1", Status: domain.CreditRequestPending}
	s.svc.On("GetCreditRequest", mock.Anything, seller, "req-1").Return(found, nil).Once()
	s.svc.On("ListCreditRequests", mock.Anything, seller, domain.ListParams{}).
		Return([]domain.CreditRequest{*found}, nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/credit-requests/req-1", nil, &seller)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/credit-requests", nil, &seller)
	s.Equal(http.StatusOK, w.Code)
	var body dto.ListCreditRequestsResponse
	s.decode(w, &body)
	s.Len(body.CreditRequests, 1)
	s.Nil(body.NextToken)
}

func TestCreditRequestHandler(t *testing.T) {
	suite.Run(t, new(CreditRequestHandlerTestSuite))
}
