package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

// NewServiceContainer wires every service over one repository provider. The options apply
// to all of them.
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ...ServiceOption) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo, repos.TransactionRepo, opts...)
	txnSvc := NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, opts...)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Transaction: txnSvc,
		Dashboard:   NewDashboardService(accountSvc, txnSvc, repos.TransactionRepo, opts...),
		Category:    NewCategoryService(repos.CategoryRepo, opts...),
		Report:      NewReportService(accountSvc, txnSvc, opts...),
	}
}
