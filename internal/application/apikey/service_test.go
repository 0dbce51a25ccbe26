package apikey

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"testing"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	apperrors "voice-detection-api/pkg/errors"
)

type memRepo struct {
	keys      map[uint]*entity.APIKey
	nextID    uint
	err       error
	setActive int
}

func newMemRepo() *memRepo {
	return &memRepo{keys: map[uint]*entity.APIKey{}}
}

func (m *memRepo) GetByKey(_ context.Context, key string) (*entity.APIKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, k := range m.keys {
		if k.Key == key {
			cp := *k
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*entity.APIKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	k, ok := m.keys[id]
	if !ok {
		return nil, nil
	}
	cp := *k
	return &cp, nil
}

func (m *memRepo) Create(_ context.Context, key *entity.APIKey) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	key.ID = m.nextID
	cp := *key
	m.keys[key.ID] = &cp
	return nil
}

func (m *memRepo) SetActive(_ context.Context, id uint, active bool) error {
	if m.err != nil {
		return m.err
	}
	m.setActive++
	m.keys[id].IsActive = active
	return nil
}

func (m *memRepo) List(_ context.Context, p repository.Pagination) (*repository.PagedResult[*entity.APIKey], error) {
	items := make([]*entity.APIKey, 0, len(m.keys))
	for _, k := range m.keys {
		items = append(items, k)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

func TestValidate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, SeedConfig{})
	ctx := context.Background()

	active, err := svc.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	inactive, _ := svc.Create(ctx, "Bob")
	if _, err := svc.Deactivate(ctx, inactive.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	cases := []struct {
		name    string
		key     string
		wantErr *apperrors.AppError
	}{
		{name: "missing", key: "", wantErr: apperrors.ErrAPIKeyMissing},
		{name: "blank", key: "   ", wantErr: apperrors.ErrAPIKeyInvalid},
		{name: "padded", key: " " + active.Key + " ", wantErr: apperrors.ErrAPIKeyInvalid},
		{name: "unknown", key: "sk_nope", wantErr: apperrors.ErrAPIKeyInvalid},
		{name: "inactive", key: inactive.Key, wantErr: apperrors.ErrAPIKeyInactive},
		{name: "active", key: active.Key},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := svc.Validate(ctx, tc.key)
			if tc.wantErr != nil {
				if !stderrors.Is(err, tc.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if k.ID != active.ID {
				t.Fatalf("Validate() id = %d, want %d", k.ID, active.ID)
			}
		})
	}
}

func TestValidateMessagesMatchAuthContract(t *testing.T) {
	svc := NewService(newMemRepo(), SeedConfig{})

	_, err := svc.Validate(context.Background(), "")
	if got := apperrors.AsAppError(err).Message; got != "Missing or invalid API key" {
		t.Fatalf("missing key message = %q", got)
	}
	_, err = svc.Validate(context.Background(), "sk_unknown")
	if got := apperrors.AsAppError(err).Message; got != "Unauthorized: Invalid API key" {
		t.Fatalf("unknown key message = %q", got)
	}
}

func TestValidateStoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = stderrors.New("connection refused")
	svc := NewService(repo, SeedConfig{})

	_, err := svc.Validate(context.Background(), "sk_any")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeDatabaseError {
		t.Fatalf("code = %s, want %s", appErr.Code, apperrors.CodeDatabaseError)
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newMemRepo(), SeedConfig{})

	k, err := svc.Create(context.Background(), "  Carol  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if k.Owner != "Carol" || !k.IsActive || k.ID == 0 {
		t.Fatalf("unexpected key %+v", k)
	}
	if !strings.HasPrefix(k.Key, entity.APIKeyPrefix) || len(k.Key) != len(entity.APIKeyPrefix)+32 {
		t.Fatalf("unexpected key format %q", k.Key)
	}

	other, _ := svc.Create(context.Background(), "Carol")
	if other.Key == k.Key {
		t.Fatalf("generated keys must be unique")
	}

	_, err = svc.Create(context.Background(), " ")
	if !stderrors.Is(err, apperrors.ErrInvalidParam) {
		t.Fatalf("Create(blank) error = %v", err)
	}
	if detail := apperrors.AsAppError(err).Detail; detail != "Owner is required" {
		t.Fatalf("Create(blank) detail = %q", detail)
	}
}

func TestActivateDeactivate(t *testing.T) {
	svc := NewService(newMemRepo(), SeedConfig{})
	ctx := context.Background()

	k, _ := svc.Create(ctx, "Dave")

	got, err := svc.Deactivate(ctx, k.ID)
	if err != nil || got.IsActive {
		t.Fatalf("Deactivate() = %+v, %v", got, err)
	}
	if _, err := svc.Validate(ctx, k.Key); !stderrors.Is(err, apperrors.ErrAPIKeyInactive) {
		t.Fatalf("Validate() after deactivate error = %v", err)
	}

	got, err = svc.Activate(ctx, k.ID)
	if err != nil || !got.IsActive {
		t.Fatalf("Activate() = %+v, %v", got, err)
	}
	if _, err := svc.Validate(ctx, k.Key); err != nil {
		t.Fatalf("Validate() after activate error = %v", err)
	}

	if _, err := svc.Activate(ctx, 999); !stderrors.Is(err, apperrors.ErrAPIKeyNotFound) {
		t.Fatalf("Activate(missing) error = %v", err)
	}
}

func TestDeactivateTwiceWritesThrough(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, SeedConfig{})
	ctx := context.Background()

	k, _ := svc.Create(ctx, "Erin")
	for i := 0; i < 2; i++ {
		got, err := svc.Deactivate(ctx, k.ID)
		if err != nil || got.IsActive {
			t.Fatalf("Deactivate() #%d = %+v, %v", i+1, got, err)
		}
	}
	if repo.setActive != 2 {
		t.Fatalf("repo.SetActive called %d times, want 2", repo.setActive)
	}
}

func TestEnsureSeedKeyIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, SeedConfig{Enabled: true, Key: "sk_test_123456789", Owner: "Demo User"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.EnsureSeedKey(ctx); err != nil {
			t.Fatalf("EnsureSeedKey() error = %v", err)
		}
	}
	if len(repo.keys) != 1 {
		t.Fatalf("seeded %d keys, want 1", len(repo.keys))
	}

	k, err := svc.Validate(ctx, "sk_test_123456789")
	if err != nil {
		t.Fatalf("Validate(seed) error = %v", err)
	}
	if k.Owner != "Demo User" {
		t.Fatalf("owner = %q", k.Owner)
	}
}

func TestEnsureSeedKeyDisabled(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, SeedConfig{Enabled: false, Key: "sk_test_123456789", Owner: "Demo User"})

	if err := svc.EnsureSeedKey(context.Background()); err != nil {
		t.Fatalf("EnsureSeedKey() error = %v", err)
	}
	if len(repo.keys) != 0 {
		t.Fatalf("seed should be skipped when disabled")
	}
}
