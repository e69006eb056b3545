package db

import (
	"testing"
)

func TestFindByNormalizedEmail(t *testing.T) {
	database := openTestDatabase(t)
	created := createTestUser(t, database, "dana@example.com")
	repo := NewUserRepository(database)

	found, err := repo.FindByNormalizedEmail("dana@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, found.ID)
	}

	if _, err := repo.FindByNormalizedEmail("missing@example.com"); err == nil {
		t.Fatal("expected error for unknown email")
	}
}

func TestExistsByNormalizedEmail(t *testing.T) {
	database := openTestDatabase(t)
	createTestUser(t, database, "taken@example.com")
	repo := NewUserRepository(database)

	exists, err := repo.ExistsByNormalizedEmail("taken@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected existing email to be reported")
	}

	exists, err = repo.ExistsByNormalizedEmail("free@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected free email to be reported missing")
	}
}

func TestFindByMCPAPIKeyIgnoresEmptyKeys(t *testing.T) {
	database := openTestDatabase(t)
	keyless := createTestUser(t, database, "keyless@example.com")
	keyed := createTestUser(t, database, "keyed@example.com")
	repo := NewUserRepository(database)

	if err := repo.UpdateMCPAPIKey(keyed.ID, "ns_abc123"); err != nil {
		t.Fatalf("store key: %v", err)
	}

	found, ok, err := repo.FindByMCPAPIKey("ns_abc123")
	if err != nil {
		t.Fatalf("find by key: %v", err)
	}
	if !ok || found.ID != keyed.ID {
		t.Fatalf("expected keyed user, ok=%v id=%d", ok, found.ID)
	}

	// Users without a key store the empty string; an empty lookup must never
	// match them.
	_, ok, err = repo.FindByMCPAPIKey("")
	if err != nil {
		t.Fatalf("find by empty key: %v", err)
	}
	if ok {
		t.Fatalf("expected no match for empty key (would leak user %d)", keyless.ID)
	}
}

func TestUpdateProfilePersistsFields(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "profile@example.com")
	repo := NewUserRepository(database)

	if err := repo.UpdateProfile(user.ID, map[string]any{
		"age": 30, "weight": 70.0, "height": 175.0, "goal": "lose",
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	updated, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.Age == nil || *updated.Age != 30 {
		t.Fatalf("expected age 30, got %v", updated.Age)
	}
	if updated.Weight == nil || *updated.Weight != 70 {
		t.Fatalf("expected weight 70, got %v", updated.Weight)
	}
	if updated.Goal != "lose" {
		t.Fatalf("expected goal lose, got %q", updated.Goal)
	}
}
