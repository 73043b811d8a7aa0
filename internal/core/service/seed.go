package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

type seedAccount struct {
	email    string
	password string
	role     domain.Role
	name     string
}

var seedAccounts = []seedAccount{
	{email: "admin@imoveiscrm.com", password: "admin123", role: domain.RoleAdmin, name: "Administrador"},
	{email: "cliente@exemplo.com", password: "cliente123", role: domain.RoleClient, name: "Cliente Exemplo"},
}

var seedProperties = []domain.NewProperty{
	{
		Title:       "Cobertura Duplex Vista Mar",
		Description: "Cobertura com terraço gourmet, piscina privativa e vista panorâmica para o mar.",
		Location:    "Barra da Tijuca, Rio de Janeiro",
		Price:       "R$ 4.500.000",
		Bedrooms:    4, Bathrooms: 5, Area: 380,
		Images: []string{"/images/penthouse-1.jpg", "/images/penthouse-2.jpg"},
	},
	{
		Title:       "Casa Contemporânea em Condomínio",
		Description: "Casa térrea com pé-direito duplo, jardim integrado e segurança 24h.",
		Location:    "Alphaville, São Paulo",
		Price:       "R$ 3.200.000",
		Bedrooms:    4, Bathrooms: 4, Area: 450,
		Images: []string{"/images/house-1.jpg"},
	},
	{
		Title:       "Apartamento Alto Padrão",
		Description: "Apartamento reformado a uma quadra do parque, com duas vagas.",
		Location:    "Jardins, São Paulo",
		Price:       "R$ 2.100.000",
		Bedrooms:    3, Bathrooms: 3, Area: 210,
		Images: []string{"/images/apartment-1.jpg", "/images/apartment-2.jpg"},
	},
}

// Seeder creates the demo accounts and listings on an empty store.
type Seeder struct {
	store ports.EntityStore
	auth  *AuthService
	log   zerolog.Logger
}

func NewSeeder(store ports.EntityStore, auth *AuthService, log zerolog.Logger) *Seeder {
	return &Seeder{store: store, auth: auth, log: log}
}

// Run is safe to call on every start; existing records are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	for _, acc := range seedAccounts {
		_, err := s.store.GetUserByEmail(ctx, acc.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed %s: %w", acc.email, err)
		}

		hash, err := s.auth.HashPassword(acc.password)
		if err != nil {
			return err
		}
		_, err = s.store.CreateUser(ctx, domain.NewUser{
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
			Name:         acc.name,
		})
		if err != nil && !errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("seed %s: %w", acc.email, err)
		}
		s.log.Info().Str("email", acc.email).Str("role", string(acc.role)).Msg("seeded account")
	}

	existing, err := s.store.GetAllProperties(ctx)
	if err != nil {
		return fmt.Errorf("seed properties: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range seedProperties {
		if _, err := s.store.CreateProperty(ctx, p); err != nil {
			return fmt.Errorf("seed properties: %w", err)
		}
	}
	s.log.Info().Int("count", len(seedProperties)).Msg("seeded properties")
	return nil
}
