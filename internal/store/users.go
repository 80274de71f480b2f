package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

type Users struct {
	db *cl.DB
}

func NewUsers(db *cl.DB) *Users {
	return &Users{db: db}
}

func (s *Users) Create(user pkg.User) (pkg.User, error) {
	user.CreatedAt = time.Now()

	doc := document.NewDocument()
	doc.Set("account_id", user.AccountID)
	doc.Set("name", user.Name)
	doc.Set("username", user.Username)
	doc.Set("email", user.Email)
	doc.Set("bio", user.Bio)
	doc.Set("image_url", user.ImageURL)
	doc.Set("created_at", user.CreatedAt)

	id, err := s.db.InsertOne(ColUsers, doc)
	if err != nil {
		return pkg.User{}, err
	}

	user.UUID = id
	return user, nil
}

func (s *Users) GetByID(id string) (pkg.User, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColUsers).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return pkg.User{}, err
	}
	if doc == nil {
		return pkg.User{}, pkg.ErrNotFound
	}

	return docToUser(doc), nil
}

// GetByAccountID resolves the profile document for an account, the lookup
// the session middleware runs on every request.
func (s *Users) GetByAccountID(accountID string) (pkg.User, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColUsers).Where(q.Field("account_id").Eq(accountID)))
	if err != nil {
		return pkg.User{}, err
	}
	if doc == nil {
		return pkg.User{}, pkg.ErrNotFound
	}

	return docToUser(doc), nil
}

func (s *Users) GetByUsername(username string) (pkg.User, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColUsers).Where(q.Field("username").Eq(username)))
	if err != nil {
		return pkg.User{}, err
	}
	if doc == nil {
		return pkg.User{}, pkg.ErrNotFound
	}

	return docToUser(doc), nil
}

func docToUser(doc *document.Document) pkg.User {
	return pkg.User{
		UUID:      doc.ObjectId(),
		AccountID: docString(doc, "account_id"),
		Name:      docString(doc, "name"),
		Username:  docString(doc, "username"),
		Email:     docString(doc, "email"),
		Bio:       docString(doc, "bio"),
		ImageURL:  docString(doc, "image_url"),
		CreatedAt: docTime(doc, "created_at"),
	}
}
