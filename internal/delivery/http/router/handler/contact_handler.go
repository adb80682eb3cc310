package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/delivery/http/response"
	"beacon/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContactHandlerParams holds dependencies for ContactHandler, injected by Fx.
type ContactHandlerParams struct {
	fx.In

	ContactUC usecase.ContactUsecase
	Logger    *slog.Logger
}

// ContactHandler exposes the emergency contact list over HTTP.
type ContactHandler struct {
	contactUC usecase.ContactUsecase
	logger    *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler
func NewContactHandler(params ContactHandlerParams) *ContactHandler {
	return &ContactHandler{
		contactUC: params.ContactUC,
		logger:    params.Logger,
	}
}

// AddContactRequest represents the request body for adding a contact.
type AddContactRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=32"`
	Relationship string `json:"relationship" validate:"max=50"`
	IsPrimary    bool   `json:"is_primary"`
}

// UpdateContactRequest represents the request body for updating a contact.
// Only the provided fields are applied.
type UpdateContactRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,max=50"`
	IsPrimary    *bool   `json:"is_primary,omitempty"`
}

// ListContacts handles retrieving the contact list.
func (h *ContactHandler) ListContacts(c echo.Context) error {
	contacts := h.contactUC.ListContacts(c.Request().Context())

	return response.Success(c, http.StatusOK, contacts, "Contacts retrieved")
}

// AddContact handles adding a new emergency contact.
func (h *ContactHandler) AddContact(c echo.Context) error {
	var req AddContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid contact input")
	}

	contact, err := h.contactUC.AddContact(c.Request().Context(), &usecase.AddContactInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
		IsPrimary:    req.IsPrimary,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, contact, "Contact added")
}

// UpdateContact handles modifying an existing emergency contact.
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid contact ID")
	}

	var req UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid contact input")
	}

	contact, err := h.contactUC.UpdateContact(c.Request().Context(), id, &usecase.UpdateContactInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
		IsPrimary:    req.IsPrimary,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, contact, "Contact updated")
}

// DeleteContact handles removing an emergency contact.
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid contact ID")
	}

	if err := h.contactUC.DeleteContact(c.Request().Context(), id); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Contact deleted")
}
