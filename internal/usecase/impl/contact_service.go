package impl

import (
	"context"
	"sync"
	"time"

	"beacon/internal/domain/entity"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/usecase"

	"github.com/google/uuid"
)

// contactService keeps the emergency contact list in memory for the
// session, preserving insertion order.
type contactService struct {
	mu       sync.Mutex
	contacts []*entity.EmergencyContact
}

// NewContactService creates the contact use case.
func NewContactService() usecase.ContactUsecase {
	return &contactService{}
}

// ListContacts returns copies of all contacts in insertion order.
func (s *contactService) ListContacts(_ context.Context) []*entity.EmergencyContact {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*entity.EmergencyContact, 0, len(s.contacts))
	for _, contact := range s.contacts {
		cloned := *contact
		list = append(list, &cloned)
	}

	return list
}

// AddContact adds a new emergency contact. Marking it primary demotes any
// existing primary so at most one contact holds the flag.
func (s *contactService) AddContact(_ context.Context, input *usecase.AddContactInput) (*entity.EmergencyContact, error) {
	now := time.Now()
	contact := &entity.EmergencyContact{
		ID:           uuid.New(),
		Name:         input.Name,
		Phone:        input.Phone,
		Relationship: input.Relationship,
		IsPrimary:    input.IsPrimary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	if contact.IsPrimary {
		s.demoteLocked(contact.ID)
	}
	s.contacts = append(s.contacts, contact)
	cloned := *contact
	s.mu.Unlock()

	return &cloned, nil
}

// UpdateContact applies a partial update to an existing contact.
func (s *contactService) UpdateContact(_ context.Context, id uuid.UUID, input *usecase.UpdateContactInput) (*entity.EmergencyContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact := s.findLocked(id)
	if contact == nil {
		return nil, domainerrors.ErrContactNotFound
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.Relationship != nil {
		contact.Relationship = *input.Relationship
	}
	if input.IsPrimary != nil {
		contact.IsPrimary = *input.IsPrimary
		if contact.IsPrimary {
			s.demoteLocked(contact.ID)
		}
	}
	contact.UpdatedAt = time.Now()
	cloned := *contact

	return &cloned, nil
}

// DeleteContact removes a contact from the list.
func (s *contactService) DeleteContact(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, contact := range s.contacts {
		if contact.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)

			return nil
		}
	}

	return domainerrors.ErrContactNotFound
}

func (s *contactService) findLocked(id uuid.UUID) *entity.EmergencyContact {
	for _, contact := range s.contacts {
		if contact.ID == id {
			return contact
		}
	}

	return nil
}

// demoteLocked clears the primary flag on every contact except keep.
func (s *contactService) demoteLocked(keep uuid.UUID) {
	for _, contact := range s.contacts {
		if contact.ID != keep && contact.IsPrimary {
			contact.IsPrimary = false
			contact.UpdatedAt = time.Now()
		}
	}
}
