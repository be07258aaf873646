package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pgrepo "github.com/bna-assurances/campaignhub/internal/adapter/storage/postgres"
	"github.com/bna-assurances/campaignhub/internal/domain"
)

func seedClient(t *testing.T, env *TestEnv, email string, contract domain.ContractType, city string, inscribed time.Time) string {
	t.Helper()
	user := &domain.User{
		ID:              uuid.New().String(),
		FirstName:       "Test",
		LastName:        "Client",
		Email:           email,
		Phone:           "+21600000000",
		Password:        "hashed",
		Role:            domain.UserRoleClient,
		ContractType:    contract,
		Status:          "Active",
		City:            city,
		InscriptionDate: inscribed,
		UpdatedAt:       time.Now(),
	}
	if err := env.Gorm.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user.ID
}

// TestDatabase_RecipientSelection verifies the conjunctive criteria filter
// against a real database.
func TestDatabase_RecipientSelection(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := pgrepo.NewUserRepository(env.Gorm, env.Logger)

	now := time.Now()
	old := now.Add(-30 * 24 * time.Hour)

	freshAutoTunis := seedClient(t, env, "fresh-auto-tunis@example.tn", domain.ContractAuto, "Tunis", now.Add(-time.Hour))
	oldAutoTunis := seedClient(t, env, "old-auto-tunis@example.tn", domain.ContractAuto, "Tunis", old)
	seedClient(t, env, "old-home-sfax@example.tn", domain.ContractHome, "Sfax", old)

	// Admins never match, whatever their attributes
	admin := &domain.User{
		ID:              uuid.New().String(),
		Email:           "admin@example.tn",
		Password:        "hashed",
		Role:            domain.UserRoleAdmin,
		ContractType:    domain.ContractAuto,
		City:            "Tunis",
		InscriptionDate: now,
		UpdatedAt:       now,
	}
	if err := env.Gorm.Create(admin).Error; err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}

	t.Run("EmptyCriteriaMatchesAllClients", func(t *testing.T) {
		recipients, err := repo.FindRecipients(ctx, domain.ParseCriteria(""))
		if err != nil {
			t.Fatalf("FindRecipients failed: %v", err)
		}
		if len(recipients) != 3 {
			t.Errorf("expected 3 clients, got %d", len(recipients))
		}
		for _, r := range recipients {
			if r.ID == admin.ID {
				t.Error("admin must not be selected")
			}
		}
	})

	t.Run("NewClientsWindow", func(t *testing.T) {
		recipients, err := repo.FindRecipients(ctx, domain.ParseCriteria("new_clients"))
		if err != nil {
			t.Fatalf("FindRecipients failed: %v", err)
		}
		if len(recipients) != 1 || recipients[0].ID != freshAutoTunis {
			t.Errorf("expected only the fresh client, got %v", recipients)
		}
	})

	t.Run("ContractAndCityConjunction", func(t *testing.T) {
		recipients, err := repo.FindRecipients(ctx, domain.ParseCriteria("auto_contract,city_any:Tunis"))
		if err != nil {
			t.Fatalf("FindRecipients failed: %v", err)
		}
		if len(recipients) != 2 {
			t.Fatalf("expected 2 recipients, got %d", len(recipients))
		}
		ids := map[string]bool{recipients[0].ID: true, recipients[1].ID: true}
		if !ids[freshAutoTunis] || !ids[oldAutoTunis] {
			t.Errorf("unexpected recipients: %v", recipients)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		recipients, err := repo.FindRecipients(ctx, domain.ParseCriteria("health_contract"))
		if err != nil {
			t.Fatalf("FindRecipients failed: %v", err)
		}
		if len(recipients) != 0 {
			t.Errorf("expected no recipients, got %v", recipients)
		}
	})
}

// TestDatabase_CampaignStatusClaim verifies that the conditional status
// transition claims a row exactly once.
func TestDatabase_CampaignStatusClaim(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := pgrepo.NewCampaignRepository(env.Gorm, env.Logger)

	schedulerID := seedClient(t, env, "scheduler@example.tn", domain.ContractAuto, "Tunis", time.Now())

	campaign := &domain.Campaign{
		ID:                uuid.New().String(),
		Title:             "Offre",
		Message:           "Message",
		Channel:           domain.ChannelEmail,
		Status:            domain.CampaignPending,
		SelectionCriteria: "auto_contract",
		ScheduledBy:       schedulerID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := repo.Save(ctx, campaign); err != nil {
		t.Fatalf("Failed to save campaign: %v", err)
	}

	claimed, err := repo.UpdateStatusIf(ctx, campaign.ID, domain.CampaignSent,
		domain.CampaignPending, domain.CampaignApproved)
	if err != nil {
		t.Fatalf("UpdateStatusIf failed: %v", err)
	}
	if !claimed {
		t.Fatal("first transition must claim the row")
	}

	claimed, err = repo.UpdateStatusIf(ctx, campaign.ID, domain.CampaignSent,
		domain.CampaignPending, domain.CampaignApproved)
	if err != nil {
		t.Fatalf("UpdateStatusIf failed: %v", err)
	}
	if claimed {
		t.Fatal("second transition must not claim an already SENT campaign")
	}

	stored, err := repo.FindByID(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status != domain.CampaignSent {
		t.Errorf("expected SENT, got %s", stored.Status)
	}
}

// TestDatabase_NotificationLedger exercises the ledger operations end to end.
func TestDatabase_NotificationLedger(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.Gorm)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	userRepo := pgrepo.NewUserRepository(env.Gorm, env.Logger)
	campaignRepo := pgrepo.NewCampaignRepository(env.Gorm, env.Logger)
	notificationRepo := pgrepo.NewNotificationRepository(env.Gorm, env.Logger)
	_ = userRepo

	userID := seedClient(t, env, "reader@example.tn", domain.ContractHome, "Tunis", time.Now())

	campaign := &domain.Campaign{
		ID:                uuid.New().String(),
		Title:             "Info",
		Message:           "Bonjour",
		Channel:           domain.ChannelInApp,
		Status:            domain.CampaignPending,
		SelectionCriteria: "",
		ScheduledBy:       userID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := campaignRepo.Save(ctx, campaign); err != nil {
		t.Fatalf("Failed to save campaign: %v", err)
	}

	records := []domain.NotificationRecord{{
		ID:         uuid.New().String(),
		UserID:     userID,
		CampaignID: campaign.ID,
		Channel:    domain.ChannelInApp,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}}
	if err := notificationRepo.InsertBatch(ctx, records); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	count, err := notificationRepo.CountUnreadInApp(ctx, userID)
	if err != nil {
		t.Fatalf("CountUnreadInApp failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread, got %d", count)
	}

	entries, err := notificationRepo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Info" {
		t.Errorf("unexpected history: %v", entries)
	}

	changed, err := notificationRepo.MarkRead(ctx, userID, campaign.ID)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if !changed {
		t.Error("first mark must change a row")
	}

	changed, err = notificationRepo.MarkRead(ctx, userID, campaign.ID)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if changed {
		t.Error("second mark must be a no-op")
	}

	count, err = notificationRepo.CountUnreadInApp(ctx, userID)
	if err != nil {
		t.Fatalf("CountUnreadInApp failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after mark, got %d", count)
	}
}
