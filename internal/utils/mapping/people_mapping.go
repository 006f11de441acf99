package mapping

import (
	"github.com/praxisledger/trustd/internal/core/domain"
	"github.com/praxisledger/trustd/internal/models"
)

func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelFirm(d domain.Firm) models.Firm {
	return models.Firm{
		FirmID:      d.FirmID,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFirm(m models.Firm) domain.Firm {
	return domain.Firm{
		FirmID:      m.FirmID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelUserFirm(d domain.UserFirm) models.UserFirm {
	return models.UserFirm{
		UserID:      d.UserID,
		FirmID:      d.FirmID,
		Role:        string(d.Role),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUserFirm(m models.UserFirm) domain.UserFirm {
	return domain.UserFirm{
		UserID:      m.UserID,
		FirmID:      m.FirmID,
		Role:        domain.UserFirmRole(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		FirmID:      d.FirmID,
		Name:        d.Name,
		Email:       d.Email,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		FirmID:      m.FirmID,
		Name:        m.Name,
		Email:       m.Email,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelMatter(d domain.Matter) models.Matter {
	return models.Matter{
		MatterID:    d.MatterID,
		FirmID:      d.FirmID,
		ClientID:    d.ClientID,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainMatter(m models.Matter) domain.Matter {
	return domain.Matter{
		MatterID:    m.MatterID,
		FirmID:      m.FirmID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
