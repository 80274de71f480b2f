package store

import (
	"errors"
	"testing"
	"time"

	cl "github.com/ostafen/clover/v2"

	"brewshare/internal/pkg"
)

func openTestDB(t *testing.T) *cl.DB {
	t.Helper()

	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAccountsRoundTrip(t *testing.T) {
	t.Parallel()

	accounts := NewAccounts(openTestDB(t))

	created, err := accounts.Create(pkg.Account{
		Email:    "jane@example.com",
		Password: "hashed",
		Name:     "Jane Doe",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UUID == "" {
		t.Fatal("expected a generated id")
	}

	byEmail, err := accounts.GetByEmail("jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.UUID != created.UUID || byEmail.Name != "Jane Doe" || byEmail.Password != "hashed" {
		t.Errorf("unexpected account: %+v", byEmail)
	}

	byID, err := accounts.GetByID(created.UUID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "jane@example.com" {
		t.Errorf("unexpected account: %+v", byID)
	}
}

func TestAccountsGetByEmailNotFound(t *testing.T) {
	t.Parallel()

	accounts := NewAccounts(openTestDB(t))

	if _, err := accounts.GetByEmail("nobody@example.com"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound, got %v", err)
	}
}

func TestUsersLookups(t *testing.T) {
	t.Parallel()

	users := NewUsers(openTestDB(t))

	created, err := users.Create(pkg.User{
		AccountID: "acct-1",
		Name:      "Jane Doe",
		Username:  "janed",
		Email:     "jane@example.com",
		ImageURL:  "https://avatars.example/api/?name=JD&size=96",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byAccount, err := users.GetByAccountID("acct-1")
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if byAccount.UUID != created.UUID || byAccount.Username != "janed" {
		t.Errorf("unexpected user: %+v", byAccount)
	}

	byUsername, err := users.GetByUsername("janed")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byUsername.UUID != created.UUID {
		t.Errorf("unexpected user: %+v", byUsername)
	}

	if _, err := users.GetByUsername("someone-else"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound, got %v", err)
	}
}

func TestSessionsLifecycle(t *testing.T) {
	t.Parallel()

	sessions := NewSessions(openTestDB(t))

	session, err := sessions.Create("acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := sessions.Get(session.UUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AccountID != "acct-1" {
		t.Errorf("unexpected session: %+v", got)
	}

	if err := sessions.Delete(session.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := sessions.Get(session.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound after delete, got %v", err)
	}
	if err := sessions.Delete(session.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound on second delete, got %v", err)
	}
}

func TestExpiredSessionIsNotFound(t *testing.T) {
	t.Parallel()

	sessions := NewSessions(openTestDB(t))

	session, err := sessions.Create("acct-1", -time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := sessions.Get(session.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected an expired session to read as not found, got %v", err)
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()

	brands := NewBrands(openTestDB(t))

	zeta, err := brands.Create("Zeta Roasters", "https://cdn.example/zeta.png")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	alpha, err := brands.Create("Alpha Beans", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	refs, err := brands.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].UUID != alpha.UUID || refs[1].UUID != zeta.UUID {
		t.Errorf("expected name-sorted order, got %q then %q", refs[0].Name, refs[1].Name)
	}

	ok, err := brands.Exists(zeta.UUID)
	if err != nil || !ok {
		t.Errorf("Exists(%q) = (%v, %v), want (true, nil)", zeta.UUID, ok, err)
	}
	ok, err = brands.Exists("no-such-id")
	if err != nil || ok {
		t.Errorf("Exists(unknown) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestBrandsAndEquipmentAreSeparate(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	brands := NewBrands(db)
	equipment := NewEquipment(db)

	v60, err := equipment.Create("Hario V60", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := brands.Exists(v60.UUID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("an equipment id must not resolve as a brand")
	}
}

func TestSaves(t *testing.T) {
	t.Parallel()

	saves := NewSaves(openTestDB(t))

	first, err := saves.Create("post-1", "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := saves.Create("post-2", "user-2"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := saves.ByUser("user-1")
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}
	if len(mine) != 1 || mine[0].PostID != "post-1" {
		t.Errorf("ByUser = %+v", mine)
	}

	got, err := saves.GetByID(first.UUID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("unexpected save: %+v", got)
	}

	if err := saves.Delete(first.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := saves.GetByID(first.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound after delete, got %v", err)
	}
	if err := saves.Delete(first.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected pkg.ErrNotFound on second delete, got %v", err)
	}
}
