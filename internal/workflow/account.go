package workflow

import (
	"errors"
	"fmt"
	"log"
	"time"

	"brewshare/internal/avatars"
	"brewshare/internal/pkg"
)

type AccountDocuments interface {
	Create(account pkg.Account) (pkg.Account, error)
	GetByEmail(email string) (pkg.Account, error)
}

type UserDocuments interface {
	Create(user pkg.User) (pkg.User, error)
	GetByAccountID(accountID string) (pkg.User, error)
	GetByUsername(username string) (pkg.User, error)
}

type SessionDocuments interface {
	Create(accountID string, ttl time.Duration) (pkg.Session, error)
	Get(id string) (pkg.Session, error)
	Delete(id string) error
}

// AccountWorkflow composes account creation, profile persistence and
// session management.
type AccountWorkflow struct {
	accounts AccountDocuments
	users    UserDocuments
	sessions SessionDocuments

	avatarEndpoint string
	jwtSecret      string
	sessionTTL     time.Duration
}

func NewAccountWorkflow(accounts AccountDocuments, users UserDocuments, sessions SessionDocuments, avatarEndpoint, jwtSecret string, sessionTTL time.Duration) *AccountWorkflow {
	return &AccountWorkflow{
		accounts:       accounts,
		users:          users,
		sessions:       sessions,
		avatarEndpoint: avatarEndpoint,
		jwtSecret:      jwtSecret,
		sessionTTL:     sessionTTL,
	}
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Username string
}

// SignUp creates the account, derives a default avatar and writes the
// profile document. There is deliberately no rollback when the profile
// write fails: the account stays, orphaned from a profile, and the caller
// sees the failure.
func (w *AccountWorkflow) SignUp(in SignUpInput) (pkg.User, error) {
	if _, err := w.accounts.GetByEmail(in.Email); err == nil {
		return pkg.User{}, ErrEmailTaken
	} else if !errors.Is(err, pkg.ErrNotFound) {
		return pkg.User{}, fmt.Errorf("looking up email: %w", err)
	}

	if _, err := w.users.GetByUsername(in.Username); err == nil {
		return pkg.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pkg.ErrNotFound) {
		return pkg.User{}, fmt.Errorf("looking up username: %w", err)
	}

	hashed, err := pkg.HashPassword(in.Password)
	if err != nil {
		return pkg.User{}, fmt.Errorf("hashing password: %w", err)
	}

	account, err := w.accounts.Create(pkg.Account{
		Email:    in.Email,
		Password: hashed,
		Name:     in.Name,
	})
	if err != nil {
		return pkg.User{}, fmt.Errorf("%w: creating account: %v", ErrDocumentWrite, err)
	}

	avatarURL := avatars.InitialsURL(w.avatarEndpoint, in.Name)

	user, err := w.users.Create(pkg.User{
		AccountID: account.UUID,
		Name:      account.Name,
		Username:  in.Username,
		Email:     account.Email,
		ImageURL:  avatarURL,
	})
	if err != nil {
		log.Printf("sign up: account %s created but profile write failed: %v", account.UUID, err)
		return pkg.User{}, fmt.Errorf("%w: saving profile: %v", ErrDocumentWrite, err)
	}

	return user, nil
}

// SignIn exchanges credentials for a session document and a signed token
// referencing it.
func (w *AccountWorkflow) SignIn(email, password string) (pkg.Session, string, error) {
	account, err := w.accounts.GetByEmail(email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.Session{}, "", ErrInvalidCredentials
		}
		return pkg.Session{}, "", fmt.Errorf("looking up account: %w", err)
	}

	match, err := pkg.CheckHashPassword(password, account.Password)
	if err != nil || !match {
		return pkg.Session{}, "", ErrInvalidCredentials
	}

	session, err := w.sessions.Create(account.UUID, w.sessionTTL)
	if err != nil {
		return pkg.Session{}, "", fmt.Errorf("%w: creating session: %v", ErrDocumentWrite, err)
	}

	token, err := pkg.GenerateSessionToken(w.jwtSecret, session.UUID, account.UUID, session.ExpiresAt)
	if err != nil {
		// The session document committed but no token references it yet;
		// remove it rather than leave an unusable live session behind.
		if derr := w.sessions.Delete(session.UUID); derr != nil {
			log.Printf("sign in: removing unusable session %s: %v", session.UUID, derr)
		}
		return pkg.Session{}, "", fmt.Errorf("signing token: %w", err)
	}

	return session, token, nil
}

// SignOut deletes the session document, invalidating every outstanding
// token that references it. Signing out an already-dead session succeeds.
func (w *AccountWorkflow) SignOut(sessionID string) error {
	err := w.sessions.Delete(sessionID)
	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return fmt.Errorf("%w: deleting session: %v", ErrDocumentWrite, err)
	}
	return nil
}

// CurrentUser resolves a session id to the profile document of its account.
func (w *AccountWorkflow) CurrentUser(sessionID string) (pkg.User, error) {
	session, err := w.sessions.Get(sessionID)
	if err != nil {
		return pkg.User{}, err
	}

	return w.users.GetByAccountID(session.AccountID)
}
