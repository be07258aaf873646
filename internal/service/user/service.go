package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/apperrors"
	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

// adminUpdatableFields is the allow-list for PUT /users/:id. Anything else
// in the request body is silently dropped.
var adminUpdatableFields = map[string]bool{
	"first_name":    true,
	"last_name":     true,
	"email":         true,
	"phone":         true,
	"role":          true,
	"contract_type": true,
	"status":        true,
	"city":          true,
}

type Service struct {
	userRepo ports.UserRepository
	log      *zap.Logger
}

func NewService(userRepo ports.UserRepository, log *zap.Logger) ports.UserService {
	return &Service{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user", userID)
	}
	return user, nil
}

// CompleteProfile fills in the insurance attributes a client sets after the
// initial registration.
func (s *Service) CompleteProfile(ctx context.Context, userID string, contractType domain.ContractType, status, city string) error {
	if !contractType.Valid() {
		return apperrors.NewValidation("unknown contract type: %s", contractType)
	}

	updated, err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"contract_type": string(contractType),
		"status":        status,
		"city":          city,
		"updated_at":    time.Now(),
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound("user", userID)
	}

	s.log.Info("Profile completed",
		zap.String("user_id", userID),
		zap.String("contract_type", string(contractType)),
	)
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *Service) AdminUpdate(ctx context.Context, id string, fields map[string]interface{}) (*domain.User, error) {
	filtered := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if adminUpdatableFields[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return nil, apperrors.NewValidation("no updatable fields provided")
	}

	if role, ok := filtered["role"].(string); ok && !domain.UserRole(role).Valid() {
		return nil, apperrors.NewValidation("unknown role: %s", role)
	}
	if ct, ok := filtered["contract_type"].(string); ok && ct != "" && !domain.ContractType(ct).Valid() {
		return nil, apperrors.NewValidation("unknown contract type: %s", ct)
	}

	filtered["updated_at"] = time.Now()

	updated, err := s.userRepo.UpdateFields(ctx, id, filtered)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.NewNotFound("user", id)
	}

	return s.userRepo.FindByID(ctx, id)
}

func (s *Service) AdminDelete(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return apperrors.NewValidation("cannot delete your own account")
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("user", id)
	}

	s.log.Info("User deleted", zap.String("user_id", id), zap.String("deleted_by", callerID))
	return nil
}
