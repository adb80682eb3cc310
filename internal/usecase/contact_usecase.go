package usecase

import (
	"context"

	"beacon/internal/domain/entity"

	"github.com/google/uuid"
)

// AddContactInput represents the input for adding an emergency contact
type AddContactInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"is_primary"`
}

// UpdateContactInput represents the input for updating an emergency contact
type UpdateContactInput struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
	IsPrimary    *bool   `json:"is_primary,omitempty"`
}

// ContactUsecase manages the emergency contact list for the session.
type ContactUsecase interface {
	ListContacts(ctx context.Context) []*entity.EmergencyContact
	AddContact(ctx context.Context, input *AddContactInput) (*entity.EmergencyContact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, input *UpdateContactInput) (*entity.EmergencyContact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}
