package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jmcrae/attire/internal/auth"
	"github.com/jmcrae/attire/internal/domain"
	"github.com/jmcrae/attire/internal/telemetry"
)

type customerService struct {
	customers domain.CustomerStore
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewCustomerService creates the customer registration service.
func NewCustomerService(
	customers domain.CustomerStore,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) domain.CustomerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &customerService{
		customers: customers,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *customerService) Register(ctx context.Context, email, name, password string) (*domain.Customer, error) {
	const op = "customer.register"

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, domain.Invalid(op, "Email is required")
	}
	if name == "" {
		return nil, domain.Invalid(op, "Name is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid(op, err.Error())
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	customer, err := s.customers.CreateCustomer(ctx, domain.CreateCustomerParams{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Signups.Inc()
	s.logger.Info("customer registered", "customer_id", customer.ID)

	return customer, nil
}
