package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// FixturePassword password de todos los usuarios creados con AddUser.
const FixturePassword = "password-de-prueba"

var fixtureHash, _ = bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)

// AddUser crea un usuario con el rol dado y devuelve el Caller correspondiente.
func (s *Store) AddUser(username string, role entity.Role) (*entity.User, authz.Caller) {
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(fixtureHash),
		FullName:     username,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u, authz.Caller{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// AddMedicine crea un medicamento con stock 10 y vencimiento a un año.
func (s *Store) AddMedicine(name string, packaging entity.PackagingType, price string) *entity.Medicine {
	now := time.Now().UTC()
	m := &entity.Medicine{
		ID:            uuid.NewString(),
		Name:          name,
		Category:      "general",
		Stock:         10,
		ExpiryDate:    now.AddDate(1, 0, 0).Truncate(24 * time.Hour),
		PackagingType: packaging,
		Price:         decimal.RequireFromString(price),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Medicines().Create(context.Background(), m); err != nil {
		panic(err)
	}
	return m
}
