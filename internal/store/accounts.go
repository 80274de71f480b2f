package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

type Accounts struct {
	db *cl.DB
}

func NewAccounts(db *cl.DB) *Accounts {
	return &Accounts{db: db}
}

func (s *Accounts) Create(account pkg.Account) (pkg.Account, error) {
	account.CreatedAt = time.Now()

	doc := document.NewDocument()
	doc.Set("email", account.Email)
	doc.Set("password", account.Password)
	doc.Set("name", account.Name)
	doc.Set("created_at", account.CreatedAt)

	id, err := s.db.InsertOne(ColAccounts, doc)
	if err != nil {
		return pkg.Account{}, err
	}

	account.UUID = id
	return account, nil
}

func (s *Accounts) GetByID(id string) (pkg.Account, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColAccounts).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return pkg.Account{}, err
	}
	if doc == nil {
		return pkg.Account{}, pkg.ErrNotFound
	}

	return docToAccount(doc), nil
}

func (s *Accounts) GetByEmail(email string) (pkg.Account, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColAccounts).Where(q.Field("email").Eq(email)))
	if err != nil {
		return pkg.Account{}, err
	}
	if doc == nil {
		return pkg.Account{}, pkg.ErrNotFound
	}

	return docToAccount(doc), nil
}

func docToAccount(doc *document.Document) pkg.Account {
	return pkg.Account{
		UUID:      doc.ObjectId(),
		Email:     docString(doc, "email"),
		Password:  docString(doc, "password"),
		Name:      docString(doc, "name"),
		CreatedAt: docTime(doc, "created_at"),
	}
}
