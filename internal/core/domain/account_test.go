package domain_test

import (
	"testing"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_IsValid(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		want        bool
	}{
		{name: "checking", accountType: domain.Checking, want: true},
		{name: "savings", accountType: domain.Savings, want: true},
		{name: "credit card", accountType: domain.CreditCard, want: true},
		{name: "investment", accountType: domain.Investment, want: true},
		{name: "empty", accountType: "", want: false},
		{name: "unknown", accountType: "PREMIUM", want: false},
		{name: "wrong case", accountType: "checking", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsValid())
		})
	}
}
