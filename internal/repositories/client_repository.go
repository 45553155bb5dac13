package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clientsapi/internal/models"
)

var (
	ErrNotFound    = errors.New("client not found")
	ErrDuplicateID = errors.New("client id already exists")
)

type ClientRepository interface {
	GetByID(ctx context.Context, id int) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) (int, error)
	Add(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	// Modify applies fn to the stored client atomically and returns the
	// result. fn must not change the id.
	Modify(ctx context.Context, id int, fn func(*models.Client)) (*models.Client, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Client, error)
	Count(ctx context.Context) (int, error)
}

// clientMemoryRepository keeps clients in insertion order. Entities are
// copied on the way in and out so callers never share memory with the store.
type clientMemoryRepository struct {
	mu      sync.RWMutex
	clients []models.Client
}

func NewClientMemoryRepository() ClientRepository {
	return &clientMemoryRepository{}
}

func (r *clientMemoryRepository) indexOf(id int) int {
	for i := range r.clients {
		if r.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *clientMemoryRepository) GetByID(_ context.Context, id int) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := r.clients[i]
	return &c, nil
}

// Create assigns max(existing)+1, or 1 for an empty store, and appends.
func (r *clientMemoryRepository) Create(_ context.Context, client *models.Client) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for _, c := range r.clients {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	client.ID = next
	r.clients = append(r.clients, *client)
	return next, nil
}

func (r *clientMemoryRepository) Add(_ context.Context, client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(client.ID) >= 0 {
		return fmt.Errorf("add client %d: %w", client.ID, ErrDuplicateID)
	}
	r.clients = append(r.clients, *client)
	return nil
}

func (r *clientMemoryRepository) Update(_ context.Context, client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(client.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.clients[i] = *client
	return nil
}

func (r *clientMemoryRepository) Modify(_ context.Context, id int, fn func(*models.Client)) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := r.clients[i]
	fn(&c)
	c.ID = id
	r.clients[i] = c
	return &c, nil
}

func (r *clientMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.clients = append(r.clients[:i], r.clients[i+1:]...)
	return nil
}

func (r *clientMemoryRepository) List(_ context.Context) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]models.Client, len(r.clients))
	copy(res, r.clients)
	return res, nil
}

func (r *clientMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients), nil
}
