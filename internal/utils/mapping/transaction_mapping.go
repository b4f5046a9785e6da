package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		Amount:            d.Amount,
		Type:              string(d.Type),
		CategoryID:        d.CategoryID,
		PaidFromAccountID: d.PaidFromAccountID,
		PaidToAccountID:   d.PaidToAccountID,
		TransactionDate:   d.TransactionDate,
		Description:       d.Description,
		Note:              d.Note,
		CreatedBy:         d.CreatedBy,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		CategoryName:      d.CategoryName,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		Amount:            m.Amount,
		Type:              domain.TransactionType(m.Type),
		CategoryID:        m.CategoryID,
		CategoryName:      m.CategoryName,
		PaidFromAccountID: m.PaidFromAccountID,
		PaidToAccountID:   m.PaidToAccountID,
		TransactionDate:   m.TransactionDate,
		Description:       m.Description,
		Note:              m.Note,
		CreatedBy:         m.CreatedBy,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions, never returning nil.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
