package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

type Sessions struct {
	db *cl.DB
}

func NewSessions(db *cl.DB) *Sessions {
	return &Sessions{db: db}
}

func (s *Sessions) Create(accountID string, ttl time.Duration) (pkg.Session, error) {
	now := time.Now()
	session := pkg.Session{
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	doc := document.NewDocument()
	doc.Set("account_id", session.AccountID)
	doc.Set("created_at", session.CreatedAt)
	doc.Set("expires_at", session.ExpiresAt)

	id, err := s.db.InsertOne(ColSessions, doc)
	if err != nil {
		return pkg.Session{}, err
	}

	session.UUID = id
	return session, nil
}

// Get returns a live session. Expired sessions are reported as not found,
// so a deleted and an expired session look the same to callers.
func (s *Sessions) Get(id string) (pkg.Session, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColSessions).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return pkg.Session{}, err
	}
	if doc == nil {
		return pkg.Session{}, pkg.ErrNotFound
	}

	session := pkg.Session{
		UUID:      doc.ObjectId(),
		AccountID: docString(doc, "account_id"),
		CreatedAt: docTime(doc, "created_at"),
		ExpiresAt: docTime(doc, "expires_at"),
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return pkg.Session{}, pkg.ErrNotFound
	}

	return session, nil
}

// Delete invalidates a session; every outstanding token referencing it
// stops working immediately. DeleteById reports success for ids that never
// existed, so existence is checked first to keep the not-found contract.
func (s *Sessions) Delete(id string) error {
	doc, err := s.db.FindFirst(q.NewQuery(ColSessions).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return err
	}
	if doc == nil {
		return pkg.ErrNotFound
	}

	return s.db.DeleteById(ColSessions, id)
}
