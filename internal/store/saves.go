package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

type Saves struct {
	db *cl.DB
}

func NewSaves(db *cl.DB) *Saves {
	return &Saves{db: db}
}

func (s *Saves) Create(postID, userID string) (pkg.Save, error) {
	save := pkg.Save{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	doc := document.NewDocument()
	doc.Set("post_id", save.PostID)
	doc.Set("user_id", save.UserID)
	doc.Set("created_at", save.CreatedAt)

	id, err := s.db.InsertOne(ColSaves, doc)
	if err != nil {
		return pkg.Save{}, err
	}

	save.UUID = id
	return save, nil
}

func (s *Saves) GetByID(id string) (pkg.Save, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColSaves).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return pkg.Save{}, err
	}
	if doc == nil {
		return pkg.Save{}, pkg.ErrNotFound
	}

	return pkg.Save{
		UUID:      doc.ObjectId(),
		PostID:    docString(doc, "post_id"),
		UserID:    docString(doc, "user_id"),
		CreatedAt: docTime(doc, "created_at"),
	}, nil
}

func (s *Saves) ByUser(userID string) ([]pkg.Save, error) {
	docs, err := s.db.FindAll(q.NewQuery(ColSaves).
		Where(q.Field("user_id").Eq(userID)).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}

	saves := []pkg.Save{}
	for _, doc := range docs {
		saves = append(saves, pkg.Save{
			UUID:      doc.ObjectId(),
			PostID:    docString(doc, "post_id"),
			UserID:    docString(doc, "user_id"),
			CreatedAt: docTime(doc, "created_at"),
		})
	}

	return saves, nil
}

// Delete removes a saved-post entry. DeleteById reports success for ids
// that never existed, so existence is checked first to keep the not-found
// contract.
func (s *Saves) Delete(id string) error {
	doc, err := s.db.FindFirst(q.NewQuery(ColSaves).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return err
	}
	if doc == nil {
		return pkg.ErrNotFound
	}

	return s.db.DeleteById(ColSaves, id)
}
