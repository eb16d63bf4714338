package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/financeapp/personal_finance_api/internal/core/services"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/financeapp/personal_finance_api/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
)

// MockUserDirectory is a mock type for the UserDirectorySvc interface
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) UserExists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.UserDirectorySvc = (*MockUserDirectory)(nil)

// --- Test Suite Setup ---

// LedgerServiceTestSuite exercises the service against the in-memory store so
// the full service+store behavior is covered, with a mocked user directory.
type LedgerServiceTestSuite struct {
	suite.Suite
	repo    *memory.AccountRepository
	users   *MockUserDirectory
	service portssvc.LedgerSvcFacade
	ctx     context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.repo = memory.NewAccountRepository()
	s.users = new(MockUserDirectory)
	s.service = services.NewLedgerService(s.repo, s.users)
	s.ctx = context.Background()
}

func (s *LedgerServiceTestSuite) allowUser(userID int64) {
	s.users.On("UserExists", mock.Anything, userID).Return(true, nil)
}

func (s *LedgerServiceTestSuite) mustCreate(number string, accType domain.AccountType, balance string, userID int64) *domain.Account {
	s.allowUser(userID)
	bal := decimal.RequireFromString(balance)
	acc, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Account " + number,
		AccountNumber: number,
		AccountType:   accType,
		Balance:       &bal,
		UserID:        userID,
	})
	s.Require().NoError(err)
	return acc
}

// --- Create ---

func (s *LedgerServiceTestSuite) TestCreateAccount_Success() {
	s.allowUser(7)

	created, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Main Checking",
		AccountNumber: "CHK-100",
		AccountType:   domain.Checking,
		UserID:        7,
	})

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Positive(created.ID)
	s.Equal("CHK-100", created.AccountNumber)
	s.True(created.Balance.IsZero(), "balance defaults to zero")
	s.Equal(domain.DefaultCurrency, created.Currency)
	s.False(created.CreatedAt.IsZero())
	s.Equal(created.CreatedAt, created.UpdatedAt)
}

func (s *LedgerServiceTestSuite) TestCreateAccount_WithOpeningBalanceAndCurrency() {
	s.allowUser(7)
	opening := decimal.RequireFromString("250.75")

	created, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Euro Savings",
		AccountNumber: "SAV-100",
		AccountType:   domain.Savings,
		Balance:       &opening,
		Currency:      "EUR",
		UserID:        7,
	})

	s.Require().NoError(err)
	s.True(created.Balance.Equal(opening))
	s.Equal("EUR", created.Currency)
}

func (s *LedgerServiceTestSuite) TestCreateAccount_ValidationFailures() {
	cases := []dto.CreateAccountRequest{
		{AccountNumber: "N-1", AccountType: domain.Checking, UserID: 1},               // missing name
		{AccountName: "A", AccountType: domain.Checking, UserID: 1},                   // missing number
		{AccountName: "A", AccountNumber: "N-1", AccountType: "PREMIUM", UserID: 1},   // unknown type
		{AccountName: "A", AccountNumber: "N-1", AccountType: domain.Checking},        // missing user
		{AccountName: "  ", AccountNumber: "N-1", AccountType: domain.Checking, UserID: 1}, // blank name
	}
	for i, req := range cases {
		_, err := s.service.CreateAccount(s.ctx, req)
		s.ErrorIs(err, apperrors.ErrValidation, "case %d", i)
	}
	s.users.AssertNotCalled(s.T(), "UserExists", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateAccount_UnknownUserRejected() {
	s.users.On("UserExists", mock.Anything, int64(99)).Return(false, nil)

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Orphan",
		AccountNumber: "CHK-99",
		AccountType:   domain.Checking,
		UserID:        99,
	})

	s.ErrorIs(err, apperrors.ErrInvalidReference)
}

func (s *LedgerServiceTestSuite) TestCreateAccount_DirectoryErrorPropagates() {
	dirErr := fmt.Errorf("directory unavailable")
	s.users.On("UserExists", mock.Anything, int64(7)).Return(false, dirErr)

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Main",
		AccountNumber: "CHK-1",
		AccountType:   domain.Checking,
		UserID:        7,
	})

	s.Require().Error(err)
	s.ErrorIs(err, dirErr)
	s.NotErrorIs(err, apperrors.ErrInvalidReference)
}

func (s *LedgerServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	s.mustCreate("CHK-1", domain.Checking, "10.00", 7)

	s.allowUser(8)
	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountName:   "Other",
		AccountNumber: "CHK-1",
		AccountType:   domain.Savings,
		UserID:        8,
	})

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- Reads ---

func (s *LedgerServiceTestSuite) TestGetAccount_ByIDAndNumber() {
	created := s.mustCreate("SAV-5", domain.Savings, "100.00", 3)

	byID, err := s.service.GetAccountByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, byID.ID)

	byNumber, err := s.service.GetAccountByNumber(s.ctx, "SAV-5")
	s.Require().NoError(err)
	s.Equal(created.ID, byNumber.ID)

	_, err = s.service.GetAccountByID(s.ctx, created.ID+1000)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.GetAccountByNumber(s.ctx, "NOPE")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	accounts, err := s.service.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)
}

func (s *LedgerServiceTestSuite) TestListAccounts_Filters() {
	s.mustCreate("CHK-1", domain.Checking, "10.00", 1)
	s.mustCreate("SAV-1", domain.Savings, "20.00", 1)
	s.mustCreate("CHK-2", domain.Checking, "30.00", 2)

	all, err := s.service.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	byUser, err := s.service.ListAccountsByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(byUser, 2)

	byType, err := s.service.ListAccountsByType(s.ctx, domain.Checking)
	s.Require().NoError(err)
	s.Len(byType, 2)

	byBoth, err := s.service.ListAccountsByUserAndType(s.ctx, 1, domain.Checking)
	s.Require().NoError(err)
	s.Len(byBoth, 1)
	s.Equal("CHK-1", byBoth[0].AccountNumber)

	_, err = s.service.ListAccountsByType(s.ctx, "PREMIUM")
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Update ---

func (s *LedgerServiceTestSuite) TestUpdateAccount_MetadataOnly() {
	created := s.mustCreate("CHK-1", domain.Checking, "50.00", 1)

	newName := "Renamed"
	newType := domain.Savings
	updated, err := s.service.UpdateAccount(s.ctx, created.ID, dto.UpdateAccountRequest{
		AccountName: &newName,
		AccountType: &newType,
	})

	s.Require().NoError(err)
	s.Equal("Renamed", updated.AccountName)
	s.Equal(domain.Savings, updated.AccountType)
	s.Equal("CHK-1", updated.AccountNumber, "unset fields stay unchanged")
	s.True(updated.Balance.Equal(decimal.RequireFromString("50.00")), "update never touches the balance")
	s.False(updated.UpdatedAt.Before(created.UpdatedAt))
}

func (s *LedgerServiceTestSuite) TestUpdateAccount_NumberChangeChecksUniqueness() {
	first := s.mustCreate("CHK-1", domain.Checking, "0", 1)
	s.mustCreate("CHK-2", domain.Checking, "0", 1)

	taken := "CHK-2"
	_, err := s.service.UpdateAccount(s.ctx, first.ID, dto.UpdateAccountRequest{AccountNumber: &taken})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	// Re-submitting its own number is not a conflict.
	same := "CHK-1"
	_, err = s.service.UpdateAccount(s.ctx, first.ID, dto.UpdateAccountRequest{AccountNumber: &same})
	s.NoError(err)

	free := "CHK-9"
	updated, err := s.service.UpdateAccount(s.ctx, first.ID, dto.UpdateAccountRequest{AccountNumber: &free})
	s.Require().NoError(err)
	s.Equal("CHK-9", updated.AccountNumber)

	// The old number is released and the new one is live.
	_, err = s.service.GetAccountByNumber(s.ctx, "CHK-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	found, err := s.service.GetAccountByNumber(s.ctx, "CHK-9")
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *LedgerServiceTestSuite) TestUpdateAccount_NotFoundAndValidation() {
	_, err := s.service.UpdateAccount(s.ctx, 12345, dto.UpdateAccountRequest{})
	s.ErrorIs(err, apperrors.ErrNotFound)

	created := s.mustCreate("CHK-1", domain.Checking, "0", 1)
	blank := "  "
	_, err = s.service.UpdateAccount(s.ctx, created.ID, dto.UpdateAccountRequest{AccountName: &blank})
	s.ErrorIs(err, apperrors.ErrValidation)

	bad := domain.AccountType("PREMIUM")
	_, err = s.service.UpdateAccount(s.ctx, created.ID, dto.UpdateAccountRequest{AccountType: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Balance mutations ---

func (s *LedgerServiceTestSuite) TestCredit_AddsAmount() {
	created := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)

	updated, err := s.service.Credit(s.ctx, created.ID, decimal.RequireFromString("50.25"))
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(decimal.RequireFromString("150.25")))
}

func (s *LedgerServiceTestSuite) TestCredit_NonPositiveIsSilentNoOp() {
	created := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)

	for _, amount := range []string{"0", "-10.00"} {
		got, err := s.service.Credit(s.ctx, created.ID, decimal.RequireFromString(amount))
		s.Require().NoError(err, "amount %s", amount)
		s.True(got.Balance.Equal(decimal.RequireFromString("100.00")))
		s.Equal(created.UpdatedAt, got.UpdatedAt, "a no-op credit must not refresh UpdatedAt")
	}
}

func (s *LedgerServiceTestSuite) TestCredit_UnknownAccount() {
	_, err := s.service.Credit(s.ctx, 999, decimal.RequireFromString("10"))
	s.ErrorIs(err, apperrors.ErrNotFound)

	// The no-op path still reports the missing account.
	_, err = s.service.Credit(s.ctx, 999, decimal.Zero)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestDebit_SubtractsAmount() {
	created := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)

	updated, err := s.service.Debit(s.ctx, created.ID, decimal.RequireFromString("40.00"))
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(decimal.RequireFromString("60.00")))

	// Draining to exactly zero is allowed.
	updated, err = s.service.Debit(s.ctx, created.ID, decimal.RequireFromString("60.00"))
	s.Require().NoError(err)
	s.True(updated.Balance.IsZero())
}

func (s *LedgerServiceTestSuite) TestDebit_InsufficientFundsLeavesBalanceUntouched() {
	created := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)

	_, err := s.service.Debit(s.ctx, created.ID, decimal.RequireFromString("100.01"))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	current, err := s.service.GetAccountByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(current.Balance.Equal(decimal.RequireFromString("100.00")))
	s.Equal(created.UpdatedAt, current.UpdatedAt)
}

func (s *LedgerServiceTestSuite) TestDebit_NonPositiveRejected() {
	created := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)

	_, err := s.service.Debit(s.ctx, created.ID, decimal.Zero)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.Debit(s.ctx, created.ID, decimal.RequireFromString("-5"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestReplaceBalance_Unconditional() {
	created := s.mustCreate("CC-1", domain.CreditCard, "0", 1)

	updated, err := s.service.ReplaceBalance(s.ctx, created.ID, decimal.RequireFromString("-1250.75"))
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(decimal.RequireFromString("-1250.75")), "negative balances are legal via replace")

	_, err = s.service.ReplaceBalance(s.ctx, 999, decimal.Zero)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Transfer ---

func (s *LedgerServiceTestSuite) TestTransfer_MovesAmountAndPreservesSum() {
	from := s.mustCreate("CHK-1", domain.Checking, "100.00", 1)
	to := s.mustCreate("SAV-1", domain.Savings, "20.00", 1)

	err := s.service.Transfer(s.ctx, from.ID, to.ID, decimal.RequireFromString("30.00"))
	s.Require().NoError(err)

	fromAfter, _ := s.service.GetAccountByID(s.ctx, from.ID)
	toAfter, _ := s.service.GetAccountByID(s.ctx, to.ID)
	s.True(fromAfter.Balance.Equal(decimal.RequireFromString("70.00")))
	s.True(toAfter.Balance.Equal(decimal.RequireFromString("50.00")))
	s.True(fromAfter.Balance.Add(toAfter.Balance).Equal(decimal.RequireFromString("120.00")))
}

func (s *LedgerServiceTestSuite) TestTransfer_InsufficientFundsChangesNothing() {
	from := s.mustCreate("CHK-1", domain.Checking, "10.00", 1)
	to := s.mustCreate("SAV-1", domain.Savings, "20.00", 1)

	err := s.service.Transfer(s.ctx, from.ID, to.ID, decimal.RequireFromString("10.01"))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	fromAfter, _ := s.service.GetAccountByID(s.ctx, from.ID)
	toAfter, _ := s.service.GetAccountByID(s.ctx, to.ID)
	s.True(fromAfter.Balance.Equal(decimal.RequireFromString("10.00")))
	s.True(toAfter.Balance.Equal(decimal.RequireFromString("20.00")))
}

func (s *LedgerServiceTestSuite) TestTransfer_Validation() {
	from := s.mustCreate("CHK-1", domain.Checking, "10.00", 1)
	to := s.mustCreate("SAV-1", domain.Savings, "0", 1)

	s.ErrorIs(s.service.Transfer(s.ctx, from.ID, to.ID, decimal.Zero), apperrors.ErrValidation)
	s.ErrorIs(s.service.Transfer(s.ctx, from.ID, to.ID, decimal.RequireFromString("-1")), apperrors.ErrValidation)
	s.ErrorIs(s.service.Transfer(s.ctx, from.ID, from.ID, decimal.RequireFromString("1")), apperrors.ErrValidation)
	s.ErrorIs(s.service.Transfer(s.ctx, from.ID, 999, decimal.RequireFromString("1")), apperrors.ErrNotFound)
	s.ErrorIs(s.service.Transfer(s.ctx, 999, to.ID, decimal.RequireFromString("1")), apperrors.ErrNotFound)
}

// --- Delete ---

func (s *LedgerServiceTestSuite) TestDeleteAccount_ZeroBalanceGuard() {
	created := s.mustCreate("CHK-1", domain.Checking, "10.00", 1)

	_, err := s.service.DeleteAccount(s.ctx, created.ID)
	s.ErrorIs(err, apperrors.ErrNonZeroBalance)

	_, err = s.service.Debit(s.ctx, created.ID, decimal.RequireFromString("10.00"))
	s.Require().NoError(err)

	deleted, err := s.service.DeleteAccount(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(deleted)

	// Absent ids report false without error, including repeat deletes.
	deleted, err = s.service.DeleteAccount(s.ctx, created.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *LedgerServiceTestSuite) TestDeleteAccount_ReleasesNumberButNotID() {
	first := s.mustCreate("CHK-1", domain.Checking, "0", 1)

	deleted, err := s.service.DeleteAccount(s.ctx, first.ID)
	s.Require().NoError(err)
	s.True(deleted)

	// The number is reusable, the id is not.
	second := s.mustCreate("CHK-1", domain.Checking, "0", 1)
	s.Greater(second.ID, first.ID)
}

// Lifecycle walk-through: create, credit, over-debit, transfer, drain, delete.
func (s *LedgerServiceTestSuite) TestAccountLifecycle() {
	chk := s.mustCreate("CHK-LIFE", domain.Checking, "0", 1)
	sav := s.mustCreate("SAV-LIFE", domain.Savings, "0", 1)

	_, err := s.service.Credit(s.ctx, chk.ID, decimal.RequireFromString("500.00"))
	s.Require().NoError(err)

	_, err = s.service.Debit(s.ctx, chk.ID, decimal.RequireFromString("600.00"))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	err = s.service.Transfer(s.ctx, chk.ID, sav.ID, decimal.RequireFromString("500.00"))
	s.Require().NoError(err)

	chkAfter, _ := s.service.GetAccountByID(s.ctx, chk.ID)
	savAfter, _ := s.service.GetAccountByID(s.ctx, sav.ID)
	s.True(chkAfter.Balance.IsZero())
	s.True(savAfter.Balance.Equal(decimal.RequireFromString("500.00")))

	deleted, err := s.service.DeleteAccount(s.ctx, chk.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.service.GetAccountByID(s.ctx, chk.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
