package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

// References serves the brand and brew-equipment collections; both share
// the same document shape.
type References struct {
	db  *cl.DB
	col string
}

func NewBrands(db *cl.DB) *References {
	return &References{db: db, col: ColBrands}
}

func NewEquipment(db *cl.DB) *References {
	return &References{db: db, col: ColEquipment}
}

func (s *References) Create(name, logoURL string) (pkg.Reference, error) {
	ref := pkg.Reference{
		Name:      name,
		LogoURL:   logoURL,
		CreatedAt: time.Now(),
	}

	doc := document.NewDocument()
	doc.Set("name", ref.Name)
	doc.Set("logo_url", ref.LogoURL)
	doc.Set("created_at", ref.CreatedAt)

	id, err := s.db.InsertOne(s.col, doc)
	if err != nil {
		return pkg.Reference{}, err
	}

	ref.UUID = id
	return ref, nil
}

func (s *References) List() ([]pkg.Reference, error) {
	docs, err := s.db.FindAll(q.NewQuery(s.col).Sort(q.SortOption{Field: "name", Direction: 1}))
	if err != nil {
		return nil, err
	}

	refs := []pkg.Reference{}
	for _, doc := range docs {
		refs = append(refs, pkg.Reference{
			UUID:      doc.ObjectId(),
			Name:      docString(doc, "name"),
			LogoURL:   docString(doc, "logo_url"),
			CreatedAt: docTime(doc, "created_at"),
		})
	}

	return refs, nil
}

// Exists reports whether a submitted reference id points at a real entry;
// post mutation validates brand/equipment ids with it.
func (s *References) Exists(id string) (bool, error) {
	doc, err := s.db.FindFirst(q.NewQuery(s.col).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}
