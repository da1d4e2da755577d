package services

import (
	"testing"

	"presupuesto/internal/period"
	"presupuesto/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Nuevo@Test.com", "password123", "Ana", "Gomez")
		testutil.AssertNoError(t, err)

		if user.Email != "nuevo@test.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("missing_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("a@b.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@test.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		// Case variants collide because emails are stored lowercased
		_, err = svc.CreateUser("DUP@test.com", "password123", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("finds_active_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "ana@test.com")

		user, err := svc.GetUserByEmail("ANA@test.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("inactive_user_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUserWithEmail(t, db, "inactive@test.com")
		db.Model(user).Update("is_active", false)

		_, err := svc.GetUserByEmail("inactive@test.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	if !svc.VerifyPassword(user, "password123") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestSelectedPeriod(t *testing.T) {
	t.Run("defaults_to_current_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		p, err := svc.GetSelectedPeriod(user.ID)
		testutil.AssertNoError(t, err)
		if p != period.Current() {
			t.Errorf("expected current period %s, got %s", period.Current(), p)
		}
	})

	t.Run("set_then_get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.SetSelectedPeriod(user.ID, "2026-03"))

		p, err := svc.GetSelectedPeriod(user.ID)
		testutil.AssertNoError(t, err)
		if p != "2026-03" {
			t.Errorf("expected 2026-03, got %s", p)
		}
	})

	t.Run("rejects_malformed_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		for _, bad := range []string{"2026-13", "2026-1", "26-03", "marzo", ""} {
			err := svc.SetSelectedPeriod(user.ID, bad)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.SetSelectedPeriod(99999, "2026-03")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
