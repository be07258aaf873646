package user

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/apperrors"
	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestMe_NotFound(t *testing.T) {
	service := NewService(&mocks.MockUserRepository{}, newTestLogger())

	_, err := service.Me(context.Background(), "missing")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompleteProfile_ValidatesContractType(t *testing.T) {
	service := NewService(&mocks.MockUserRepository{}, newTestLogger())

	err := service.CompleteProfile(context.Background(), "u1", "Assurance Vie", "Active", "Tunis")
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompleteProfile_UpdatesFields(t *testing.T) {
	var updated map[string]interface{}
	repo := &mocks.MockUserRepository{
		UpdateFieldsFunc: func(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
			updated = fields
			return true, nil
		},
	}
	service := NewService(repo, newTestLogger())

	err := service.CompleteProfile(context.Background(), "u1", domain.ContractAuto, "Active", "Sfax")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated["contract_type"] != string(domain.ContractAuto) || updated["city"] != "Sfax" {
		t.Errorf("unexpected fields: %v", updated)
	}
}

func TestAdminUpdate_FiltersUnknownFields(t *testing.T) {
	var updated map[string]interface{}
	repo := &mocks.MockUserRepository{
		UpdateFieldsFunc: func(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
			updated = fields
			return true, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id}, nil
		},
	}
	service := NewService(repo, newTestLogger())

	_, err := service.AdminUpdate(context.Background(), "u1", map[string]interface{}{
		"city":     "Tunis",
		"password": "sneaky",
		"id":       "other",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := updated["password"]; ok {
		t.Error("password must not be updatable through the admin endpoint")
	}
	if _, ok := updated["id"]; ok {
		t.Error("id must not be updatable")
	}
	if updated["city"] != "Tunis" {
		t.Errorf("expected city update, got %v", updated)
	}
}

func TestAdminUpdate_NoUpdatableFields(t *testing.T) {
	service := NewService(&mocks.MockUserRepository{}, newTestLogger())

	_, err := service.AdminUpdate(context.Background(), "u1", map[string]interface{}{"password": "x"})
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminDelete_SelfDeleteForbidden(t *testing.T) {
	deleted := false
	repo := &mocks.MockUserRepository{
		DeleteFunc: func(ctx context.Context, id string) (bool, error) {
			deleted = true
			return true, nil
		},
	}
	service := NewService(repo, newTestLogger())

	err := service.AdminDelete(context.Background(), "admin-1", "admin-1")
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if deleted {
		t.Error("self delete must not reach the repository")
	}

	if err := service.AdminDelete(context.Background(), "admin-1", "other"); err != nil {
		t.Fatalf("expected delete of another user to succeed, got %v", err)
	}
}
