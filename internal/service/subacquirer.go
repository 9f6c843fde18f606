package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/httpclient"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"go.uber.org/zap"
)

// SubacquirerService resolves subacquirer rows and builds the outbound
// gateway for each one from its stored connection settings.
type SubacquirerService interface {
	ResolveActive(code string) (*model.Subacquirer, error)
	Resolve(code string) (*model.Subacquirer, error)
	GatewayFor(sub *model.Subacquirer) subacq.Gateway
}

type subacquirerService struct {
	repo   repository.SubacquirerRepository
	logger *zap.Logger
}

func NewSubacquirerService(repo repository.SubacquirerRepository, logger *zap.Logger) SubacquirerService {
	return &subacquirerService{repo: repo, logger: logger}
}

func (s *subacquirerService) ResolveActive(code string) (*model.Subacquirer, error) {
	sub, err := s.repo.GetActiveByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrSubacquirerNotFound) {
			if _, inactiveErr := s.repo.GetByCode(code); inactiveErr == nil {
				return nil, ErrSubacquirerInactive
			}
			return nil, ErrSubacquirerNotFound
		}

		s.logger.Error("Failed to resolve subacquirer", zap.String("code", code), zap.Error(err))
		return nil, ErrDatabase
	}

	return sub, nil
}

func (s *subacquirerService) Resolve(code string) (*model.Subacquirer, error) {
	sub, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrSubacquirerNotFound) {
			return nil, ErrSubacquirerNotFound
		}

		s.logger.Error("Failed to resolve subacquirer", zap.String("code", code), zap.Error(err))
		return nil, ErrDatabase
	}

	return sub, nil
}

func (s *subacquirerService) GatewayFor(sub *model.Subacquirer) subacq.Gateway {
	cfg := subacq.Config{
		BaseURL:    sub.BaseURL,
		Timeout:    subacq.DefaultTimeout,
		MaxRetries: subacq.DefaultMaxRetries,
	}

	if len(sub.Config) > 0 {
		var blob struct {
			TimeoutSeconds int `json:"timeout_seconds"`
			MaxRetries     int `json:"max_retries"`
		}
		if err := json.Unmarshal(sub.Config, &blob); err != nil {
			s.logger.Warn("Invalid subacquirer config, using defaults",
				zap.String("code", sub.Code),
				zap.Error(err))
		} else {
			if blob.TimeoutSeconds > 0 {
				cfg.Timeout = time.Duration(blob.TimeoutSeconds) * time.Second
			}
			if blob.MaxRetries > 0 {
				cfg.MaxRetries = blob.MaxRetries
			}
		}
	}

	profile := subacq.ProfileFor(sub.Code)
	client := httpclient.NewHTTPClient(cfg.Timeout)

	return subacq.NewGateway(cfg, profile, client, s.logger)
}
