package mapping

import (
	"strings"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OwnerID:        d.OwnerID,
		Name:           d.Name,
		AccountType:    string(d.AccountType),
		CurrencyCode:   strings.ToUpper(d.CurrencyCode),
		InitialBalance: d.InitialBalance,
		CurrentBalance: d.CurrentBalance,
		Color:          d.Color,
		Icon:           d.Icon,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrencyCode:   m.CurrencyCode,
		InitialBalance: m.InitialBalance,
		CurrentBalance: m.CurrentBalance,
		Color:          m.Color,
		Icon:           m.Icon,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
