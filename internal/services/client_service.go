package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clientsapi/internal/models"
	"clientsapi/internal/repositories"
)

var (
	ErrInvalidID     = errors.New("id must be a positive integer")
	ErrInvalidFilter = errors.New("name or gender is required")
	ErrIDMismatch    = errors.New("route id does not match body id")
	ErrNoContent     = errors.New("no clients")
	ErrValidation    = errors.New("validation failed")

	// ErrNotFound is shared with the repository layer so callers can match
	// on either.
	ErrNotFound = repositories.ErrNotFound
)

// ClientService defines the business logic for the clients resource.
type ClientService interface {
	GetByID(ctx context.Context, id int) (*models.ClientResponse, error)
	Search(ctx context.Context, filter models.ClientFilter) ([]models.ClientResponse, error)
	List(ctx context.Context) ([]models.ClientResponse, error)
	Create(ctx context.Context, client *models.Client) (int, error)
	Update(ctx context.Context, id int, client *models.Client) (int, error)
	SetEnabled(ctx context.Context, id int, enabled bool) (int, error)
	Delete(ctx context.Context, id int) error
}

type clientService struct {
	repo repositories.ClientRepository
}

func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) GetByID(ctx context.Context, id int) (*models.ClientResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := models.NewClientResponse(*c)
	return &resp, nil
}

// Search requires at least one criterion. An empty name counts as absent.
// No matches is an empty, non-nil slice.
func (s *clientService) Search(ctx context.Context, filter models.ClientFilter) ([]models.ClientResponse, error) {
	if filter.Name != nil && *filter.Name == "" {
		filter.Name = nil
	}
	if filter.Name == nil && filter.Gender == nil {
		return nil, ErrInvalidFilter
	}
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return project(clients, filter.Matches), nil
}

func (s *clientService) List(ctx context.Context) ([]models.ClientResponse, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrNoContent
	}
	return project(clients, nil), nil
}

func (s *clientService) Create(ctx context.Context, client *models.Client) (int, error) {
	if err := validate(client); err != nil {
		return 0, err
	}
	client.Enabled = false
	return s.repo.Create(ctx, client)
}

// Update replaces the contact fields and keeps the enabled flag.
func (s *clientService) Update(ctx context.Context, id int, client *models.Client) (int, error) {
	if id <= 0 {
		return 0, ErrInvalidID
	}
	if id != client.ID {
		return 0, ErrIDMismatch
	}
	if err := validate(client); err != nil {
		return 0, err
	}
	updated, err := s.repo.Modify(ctx, id, func(existing *models.Client) {
		existing.Name = client.Name
		existing.Email = client.Email
		existing.Gender = client.Gender
		existing.Phone = client.Phone
	})
	if err != nil {
		return 0, err
	}
	return updated.ID, nil
}

func (s *clientService) SetEnabled(ctx context.Context, id int, enabled bool) (int, error) {
	if id <= 0 {
		return 0, ErrInvalidID
	}
	updated, err := s.repo.Modify(ctx, id, func(existing *models.Client) {
		existing.Enabled = enabled
	})
	if err != nil {
		return 0, err
	}
	return updated.ID, nil
}

func (s *clientService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func project(clients []models.Client, keep func(models.Client) bool) []models.ClientResponse {
	res := make([]models.ClientResponse, 0, len(clients))
	for _, c := range clients {
		if keep != nil && !keep(c) {
			continue
		}
		res = append(res, models.NewClientResponse(c))
	}
	return res
}

func validate(c *models.Client) error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	g, err := models.ParseGender(string(c.Gender))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	c.Gender = g
	return nil
}
