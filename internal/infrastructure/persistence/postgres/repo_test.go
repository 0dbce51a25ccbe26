package postgres

import (
	"context"
	"path/filepath"
	"testing"

	"voice-detection-api/internal/config"
	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(&config.PostgresConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "voice.db"),
		LogLevel:   "silent",
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return client
}

func TestAPIKeyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAPIKeyRepository(newTestClient(t))

	k := &entity.APIKey{Key: "sk_test_123456789", Owner: "Demo User", IsActive: true}
	if err := repo.Create(ctx, k); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if k.ID == 0 || k.CreatedAt.IsZero() {
		t.Fatalf("Create() did not backfill id/createdAt: %+v", k)
	}

	if err := repo.Create(ctx, &entity.APIKey{Key: k.Key, Owner: "dup", IsActive: true}); err == nil {
		t.Fatalf("duplicate key should violate unique index")
	}

	got, err := repo.GetByKey(ctx, k.Key)
	if err != nil || got == nil {
		t.Fatalf("GetByKey() = %v, %v", got, err)
	}
	if got.ID != k.ID || got.Owner != "Demo User" || !got.IsActive {
		t.Fatalf("GetByKey() = %+v", got)
	}

	missing, err := repo.GetByKey(ctx, "sk_missing")
	if err != nil || missing != nil {
		t.Fatalf("GetByKey(missing) = %v, %v", missing, err)
	}
	if empty, err := repo.GetByKey(ctx, ""); err != nil || empty != nil {
		t.Fatalf("GetByKey(empty) = %v, %v", empty, err)
	}

	if err := repo.SetActive(ctx, k.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	got, err = repo.GetByID(ctx, k.ID)
	if err != nil || got == nil || got.IsActive {
		t.Fatalf("GetByID() after deactivate = %+v, %v", got, err)
	}

	if none, err := repo.GetByID(ctx, 9999); err != nil || none != nil {
		t.Fatalf("GetByID(missing) = %v, %v", none, err)
	}
}

func TestAPIKeyRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewAPIKeyRepository(newTestClient(t))

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, entity.NewAPIKey("owner")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page, err := repo.List(ctx, repository.NewPagination(2, 2))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Items) != 2 {
		t.Fatalf("List() = total %d pages %d items %d", page.Total, page.TotalPages, len(page.Items))
	}
}

func TestRequestLogRepository(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	keys := NewAPIKeyRepository(client)
	logs := NewRequestLogRepository(client)

	k := entity.NewAPIKey("Demo User")
	if err := keys.Create(ctx, k); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	classes := []entity.Classification{
		entity.ClassificationHuman,
		entity.ClassificationAIGenerated,
		entity.ClassificationHuman,
	}
	for i := 0; i < 12; i++ {
		keyID := k.ID
		log := &entity.RequestLog{
			APIKeyID:        &keyID,
			Language:        entity.LanguageTamil,
			Classification:  classes[i%len(classes)],
			ConfidenceScore: 0.75,
			Explanation:     "test",
			ClientIP:        "127.0.0.1",
		}
		if err := logs.Insert(ctx, log); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if log.ID == 0 || log.Timestamp.IsZero() {
			t.Fatalf("Insert() did not backfill id/timestamp: %+v", log)
		}
	}

	counts, err := logs.CountsByClassification(ctx)
	if err != nil {
		t.Fatalf("CountsByClassification() error = %v", err)
	}
	if counts.Total != 12 || counts.AI != 4 || counts.Human != 8 {
		t.Fatalf("counts = %+v", counts)
	}

	recent, err := logs.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("Recent() returned %d logs, want 10", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i-1].ID <= recent[i].ID {
			t.Fatalf("Recent() not newest first: %d before %d", recent[i-1].ID, recent[i].ID)
		}
	}
	if recent[0].APIKeyID == nil || *recent[0].APIKeyID != k.ID {
		t.Fatalf("apiKeyId = %v, want %d", recent[0].APIKeyID, k.ID)
	}

	page, err := logs.List(ctx, repository.NewPagination(1, 5))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 12 || len(page.Items) != 5 || page.Items[0].ID != recent[0].ID {
		t.Fatalf("List() = total %d items %d", page.Total, len(page.Items))
	}
}

func TestRequestLogRepositoryEmpty(t *testing.T) {
	ctx := context.Background()
	logs := NewRequestLogRepository(newTestClient(t))

	counts, err := logs.CountsByClassification(ctx)
	if err != nil {
		t.Fatalf("CountsByClassification() error = %v", err)
	}
	if *counts != (entity.ClassificationCounts{}) {
		t.Fatalf("counts = %+v, want zero", counts)
	}

	recent, err := logs.Recent(ctx, 10)
	if err != nil || len(recent) != 0 {
		t.Fatalf("Recent() = %v, %v", recent, err)
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t)
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
	if client.Driver() != DriverSQLite {
		t.Fatalf("Driver() = %s", client.Driver())
	}
}

func TestNewClientRejectsUnknownDriver(t *testing.T) {
	if _, err := NewClient(&config.PostgresConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
