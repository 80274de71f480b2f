package workflow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"brewshare/internal/pkg"
)

type fakeAccounts struct {
	createErr error

	byEmail map[string]pkg.Account
}

func (f *fakeAccounts) Create(account pkg.Account) (pkg.Account, error) {
	if f.createErr != nil {
		return pkg.Account{}, f.createErr
	}
	account.UUID = fmt.Sprintf("acct-%d", len(f.byEmail)+1)
	if f.byEmail == nil {
		f.byEmail = map[string]pkg.Account{}
	}
	f.byEmail[account.Email] = account
	return account, nil
}

func (f *fakeAccounts) GetByEmail(email string) (pkg.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return pkg.Account{}, pkg.ErrNotFound
	}
	return account, nil
}

type fakeUsers struct {
	createErr error

	byAccount  map[string]pkg.User
	byUsername map[string]pkg.User
}

func (f *fakeUsers) Create(user pkg.User) (pkg.User, error) {
	if f.createErr != nil {
		return pkg.User{}, f.createErr
	}
	user.UUID = fmt.Sprintf("user-%d", len(f.byAccount)+1)
	if f.byAccount == nil {
		f.byAccount = map[string]pkg.User{}
		f.byUsername = map[string]pkg.User{}
	}
	f.byAccount[user.AccountID] = user
	f.byUsername[user.Username] = user
	return user, nil
}

func (f *fakeUsers) GetByAccountID(accountID string) (pkg.User, error) {
	user, ok := f.byAccount[accountID]
	if !ok {
		return pkg.User{}, pkg.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByUsername(username string) (pkg.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return pkg.User{}, pkg.ErrNotFound
	}
	return user, nil
}

type fakeSessions struct {
	createErr error

	byID map[string]pkg.Session
	seq  int
}

func (f *fakeSessions) Create(accountID string, ttl time.Duration) (pkg.Session, error) {
	if f.createErr != nil {
		return pkg.Session{}, f.createErr
	}
	f.seq++
	session := pkg.Session{
		UUID:      fmt.Sprintf("sess-%d", f.seq),
		AccountID: accountID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if f.byID == nil {
		f.byID = map[string]pkg.Session{}
	}
	f.byID[session.UUID] = session
	return session, nil
}

func (f *fakeSessions) Get(id string) (pkg.Session, error) {
	session, ok := f.byID[id]
	if !ok {
		return pkg.Session{}, pkg.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessions) Delete(id string) error {
	if _, ok := f.byID[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

const testSecret = "test-secret"

func newTestAccountWorkflow(accounts *fakeAccounts, users *fakeUsers, sessions *fakeSessions) *AccountWorkflow {
	return NewAccountWorkflow(accounts, users, sessions, "https://avatars.example/api", testSecret, time.Hour)
}

func signUpInput() SignUpInput {
	return SignUpInput{
		Email:    "jane@example.com",
		Password: "correct horse",
		Name:     "Jane Doe",
		Username: "janed",
	}
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	w := newTestAccountWorkflow(accounts, users, &fakeSessions{})

	user, err := w.SignUp(signUpInput())
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if user.Username != "janed" || user.Email != "jane@example.com" {
		t.Errorf("unexpected profile: %+v", user)
	}
	if want := "https://avatars.example/api/?name=JD&size=96"; user.ImageURL != want {
		t.Errorf("avatar URL = %q, want %q", user.ImageURL, want)
	}

	account, err := accounts.GetByEmail("jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if account.Password == "correct horse" {
		t.Error("password stored in the clear")
	}
	match, err := pkg.CheckHashPassword("correct horse", account.Password)
	if err != nil || !match {
		t.Errorf("stored hash does not verify: match=%v err=%v", match, err)
	}
}

func TestSignUpTakenEmail(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	w := newTestAccountWorkflow(accounts, users, &fakeSessions{})

	if _, err := w.SignUp(signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	in := signUpInput()
	in.Username = "janed2"
	if _, err := w.SignUp(in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUpTakenUsername(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	w := newTestAccountWorkflow(accounts, users, &fakeSessions{})

	if _, err := w.SignUp(signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	in := signUpInput()
	in.Email = "jane2@example.com"
	if _, err := w.SignUp(in); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignUpProfileFailureKeepsAccount(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{createErr: errors.New("collection unavailable")}
	w := newTestAccountWorkflow(accounts, users, &fakeSessions{})

	_, err := w.SignUp(signUpInput())
	if !errors.Is(err, ErrDocumentWrite) {
		t.Fatalf("expected ErrDocumentWrite, got %v", err)
	}

	// No rollback: the account document stays even though the profile
	// write failed.
	if _, err := accounts.GetByEmail("jane@example.com"); err != nil {
		t.Errorf("account should survive a failed profile write: %v", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	w := newTestAccountWorkflow(accounts, users, &fakeSessions{})

	if _, err := w.SignUp(signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, _, err := w.SignIn("jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	t.Parallel()

	w := newTestAccountWorkflow(&fakeAccounts{}, &fakeUsers{}, &fakeSessions{})

	if _, _, err := w.SignIn("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInIssuesSessionToken(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	sessions := &fakeSessions{}
	w := newTestAccountWorkflow(accounts, users, sessions)

	if _, err := w.SignUp(signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	session, token, err := w.SignIn("jane@example.com", "correct horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	sid, err := pkg.ParseSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if sid != session.UUID {
		t.Errorf("token references session %q, want %q", sid, session.UUID)
	}

	user, err := w.CurrentUser(session.UUID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.Username != "janed" {
		t.Errorf("CurrentUser returned %q", user.Username)
	}
}

func TestSignOutInvalidatesSession(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccounts{}
	users := &fakeUsers{}
	sessions := &fakeSessions{}
	w := newTestAccountWorkflow(accounts, users, sessions)

	if _, err := w.SignUp(signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	session, _, err := w.SignIn("jane@example.com", "correct horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if err := w.SignOut(session.UUID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	if _, err := w.CurrentUser(session.UUID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected the session gone, got %v", err)
	}
}

func TestSignOutMissingSessionSucceeds(t *testing.T) {
	t.Parallel()

	w := newTestAccountWorkflow(&fakeAccounts{}, &fakeUsers{}, &fakeSessions{})

	if err := w.SignOut("no-such-session"); err != nil {
		t.Errorf("signing out a dead session must succeed, got %v", err)
	}
}
