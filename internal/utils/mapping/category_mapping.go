package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Type:        string(d.Type),
		Color:       d.Color,
		Icon:        d.Icon,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Type:        domain.CategoryType(m.Type),
		Color:       m.Color,
		Icon:        m.Icon,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
