package mockdata

import (
	"context"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"

	"clientsapi/internal/models"
	"clientsapi/internal/repositories"
)

type Options struct {
	Count int
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed uint64
}

// Clients generates n fake clients with ids 1..n.
func Clients(n int, seed uint64) []models.Client {
	f := gofakeit.New(seed)
	res := make([]models.Client, 0, n)
	for i := 1; i <= n; i++ {
		gender := models.GenderMale
		if f.Gender() == "female" {
			gender = models.GenderFemale
		}
		res = append(res, models.Client{
			ID:      i,
			Name:    f.Name(),
			Email:   f.Email(),
			Gender:  gender,
			Phone:   f.Phone(),
			Enabled: f.Bool(),
		})
	}
	return res
}

// Seed fills an empty repository. A repository that already holds data is
// left untouched.
func Seed(ctx context.Context, repo repositories.ClientRepository, opts Options) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		log.Printf("[mock] store already has %d clients, skipping", n)
		return 0, nil
	}

	clients := Clients(opts.Count, opts.Seed)
	for i := range clients {
		if err := repo.Add(ctx, &clients[i]); err != nil {
			return i, fmt.Errorf("seed: %w", err)
		}
	}
	log.Printf("[mock] seeded %d clients", len(clients))
	return len(clients), nil
}
