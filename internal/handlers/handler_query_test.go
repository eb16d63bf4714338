package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// QueryHandlerTestSuite reuses the shared router wiring; only the query-side
// endpoints are exercised here.
type QueryHandlerTestSuite struct {
	handlerTestSuite
}

func (s *QueryHandlerTestSuite) TestTotalBalance() {
	s.mockQuery.On("TotalBalance", mock.Anything, int64(1)).Return(decimal.RequireFromString("75.50"), nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/user/1/total-balance", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.TotalBalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(1), resp.UserID)
	s.True(resp.TotalBalance.Equal(decimal.RequireFromString("75.50")))
}

func (s *QueryHandlerTestSuite) TestTotalBalanceByType() {
	s.mockQuery.On("TotalBalanceByType", mock.Anything, int64(1), domain.Savings).Return(decimal.RequireFromString("50.00"), nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/user/1/type/SAVINGS/total-balance", nil)
	s.Equal(http.StatusOK, w.Code)
	s.mockQuery.AssertExpectations(s.T())
}

func (s *QueryHandlerTestSuite) TestTotalBalanceByType_InvalidType() {
	w := s.perform(http.MethodGet, "/api/v1/accounts/user/1/type/PREMIUM/total-balance", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockQuery.AssertNotCalled(s.T(), "TotalBalanceByType", mock.Anything, mock.Anything, mock.Anything)
}

func (s *QueryHandlerTestSuite) TestLowBalance_DefaultThreshold() {
	s.mockQuery.On("LowBalance", mock.Anything, decimal.RequireFromString("100.00")).Return([]domain.Account{}, nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/low-balance", nil)
	s.Equal(http.StatusOK, w.Code)
	s.mockQuery.AssertExpectations(s.T())
}

func (s *QueryHandlerTestSuite) TestLowBalance_ExplicitThreshold() {
	s.mockQuery.On("LowBalance", mock.Anything, decimal.RequireFromString("25.00")).Return([]domain.Account{*sampleAccount(1)}, nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/low-balance?threshold=25.00", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp, 1)
}

func (s *QueryHandlerTestSuite) TestLowBalance_BadThreshold() {
	w := s.perform(http.MethodGet, "/api/v1/accounts/low-balance?threshold=lots", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *QueryHandlerTestSuite) TestRecent_DefaultAndExplicitDays() {
	s.mockQuery.On("Recent", mock.Anything, 30).Return([]domain.Account{}, nil).Once()
	w := s.perform(http.MethodGet, "/api/v1/accounts/recent", nil)
	s.Equal(http.StatusOK, w.Code)

	s.mockQuery.On("Recent", mock.Anything, 7).Return([]domain.Account{}, nil).Once()
	w = s.perform(http.MethodGet, "/api/v1/accounts/recent?days=7", nil)
	s.Equal(http.StatusOK, w.Code)

	s.mockQuery.AssertExpectations(s.T())
}

func (s *QueryHandlerTestSuite) TestInactive_DefaultDays() {
	s.mockQuery.On("Inactive", mock.Anything, 90).Return([]domain.Account{}, nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/inactive", nil)
	s.Equal(http.StatusOK, w.Code)
	s.mockQuery.AssertExpectations(s.T())
}

func (s *QueryHandlerTestSuite) TestSummary() {
	summary := &domain.AccountSummary{
		AccountCount:   2,
		TotalBalance:   decimal.RequireFromString("75.50"),
		AverageBalance: decimal.RequireFromString("37.75"),
		MaxBalance:     decimal.RequireFromString("50.00"),
		MinBalance:     decimal.RequireFromString("25.50"),
	}
	s.mockQuery.On("Summary", mock.Anything, int64(1)).Return(summary, nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/user/1/summary", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SummaryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(2), resp.Summary.AccountCount)
}

func (s *QueryHandlerTestSuite) TestStats() {
	s.mockQuery.On("CountAccounts", mock.Anything).Return(int64(5), nil).Once()
	s.mockQuery.On("CountByType", mock.Anything).Return(map[domain.AccountType]int64{
		domain.Checking: 3,
		domain.Savings:  2,
	}, nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/stats", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.StatsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(5), resp.TotalAccounts)
	s.Equal(int64(3), resp.CountByType["CHECKING"])
}

func (s *QueryHandlerTestSuite) TestCountByUser() {
	s.mockQuery.On("CountAccountsByUser", mock.Anything, int64(9)).Return(int64(4), nil).Once()

	w := s.perform(http.MethodGet, "/api/v1/accounts/user/9/count", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UserAccountCountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(4), resp.AccountCount)
}

func TestQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlerTestSuite))
}
