package impl

import (
	"context"
	"testing"

	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_AddAndList(t *testing.T) {
	service := NewContactService()
	ctx := context.Background()

	first, err := service.AddContact(ctx, &usecase.AddContactInput{
		Name:         "Ama",
		Phone:        "+886900000001",
		Relationship: "mother",
		IsPrimary:    true,
	})
	require.NoError(t, err)
	second, err := service.AddContact(ctx, &usecase.AddContactInput{
		Name:  "Hui",
		Phone: "+886900000002",
	})
	require.NoError(t, err)

	list := service.ListContacts(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)
}

func TestContactService_SinglePrimary(t *testing.T) {
	service := NewContactService()
	ctx := context.Background()

	first, err := service.AddContact(ctx, &usecase.AddContactInput{Name: "Ama", Phone: "1", IsPrimary: true})
	require.NoError(t, err)
	_, err = service.AddContact(ctx, &usecase.AddContactInput{Name: "Hui", Phone: "2", IsPrimary: true})
	require.NoError(t, err)

	list := service.ListContacts(ctx)
	require.Len(t, list, 2)
	assert.False(t, list[0].IsPrimary)
	assert.True(t, list[1].IsPrimary)

	// Promoting through an update demotes the current holder too.
	makePrimary := true
	_, err = service.UpdateContact(ctx, first.ID, &usecase.UpdateContactInput{IsPrimary: &makePrimary})
	require.NoError(t, err)

	list = service.ListContacts(ctx)
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)
}

func TestContactService_UpdateContact(t *testing.T) {
	service := NewContactService()
	ctx := context.Background()

	contact, err := service.AddContact(ctx, &usecase.AddContactInput{Name: "Ama", Phone: "1", Relationship: "mother"})
	require.NoError(t, err)

	newPhone := "+886911111111"
	updated, err := service.UpdateContact(ctx, contact.ID, &usecase.UpdateContactInput{Phone: &newPhone})
	require.NoError(t, err)

	// Only the provided field changes.
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, "Ama", updated.Name)
	assert.Equal(t, "mother", updated.Relationship)
}

func TestContactService_UpdateContact_NotFound(t *testing.T) {
	service := NewContactService()

	name := "nobody"
	updated, err := service.UpdateContact(context.Background(), uuid.New(), &usecase.UpdateContactInput{Name: &name})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_DeleteContact(t *testing.T) {
	service := NewContactService()
	ctx := context.Background()

	contact, err := service.AddContact(ctx, &usecase.AddContactInput{Name: "Ama", Phone: "1"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteContact(ctx, contact.ID))
	assert.Empty(t, service.ListContacts(ctx))

	assert.ErrorIs(t, service.DeleteContact(ctx, contact.ID), domainerrors.ErrContactNotFound)
}

func TestContactService_ListReturnsCopies(t *testing.T) {
	service := NewContactService()
	ctx := context.Background()

	_, err := service.AddContact(ctx, &usecase.AddContactInput{Name: "Ama", Phone: "1"})
	require.NoError(t, err)

	list := service.ListContacts(ctx)
	list[0].Name = "tampered"

	assert.Equal(t, "Ama", service.ListContacts(ctx)[0].Name)
}
