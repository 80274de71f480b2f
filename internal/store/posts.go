package store

import (
	"errors"
	"strings"
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
	q "github.com/ostafen/clover/v2/query"

	"brewshare/internal/pkg"
)

type Posts struct {
	db *cl.DB
}

func NewPosts(db *cl.DB) *Posts {
	return &Posts{db: db}
}

func (s *Posts) Create(post pkg.Post) (pkg.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}

	doc := document.NewDocument()
	doc.Set("creator", post.Creator)
	doc.Set("caption", post.Caption)
	doc.Set("image_id", post.ImageID)
	doc.Set("image_url", post.ImageURL)
	doc.Set("location", post.Location)
	doc.Set("tags", post.Tags)
	doc.Set("rating", post.Rating)
	doc.Set("coffee_type", post.CoffeeType)
	doc.Set("coffee_name", post.CoffeeName)
	doc.Set("brand_id", post.BrandID)
	doc.Set("equipment_id", post.EquipmentID)
	doc.Set("likes", post.Likes)
	doc.Set("created_at", post.CreatedAt)
	doc.Set("updated_at", post.UpdatedAt)

	id, err := s.db.InsertOne(ColPosts, doc)
	if err != nil {
		return pkg.Post{}, err
	}

	post.UUID = id
	return post, nil
}

// Update rewrites the editable fields of a post. Creator, likes and
// created_at are not editable; the image id/URL pair is always written
// together.
func (s *Posts) Update(post pkg.Post) (pkg.Post, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}

	err := s.db.UpdateById(ColPosts, post.UUID, func(doc *document.Document) *document.Document {
		doc.Set("caption", post.Caption)
		doc.Set("image_id", post.ImageID)
		doc.Set("image_url", post.ImageURL)
		doc.Set("location", post.Location)
		doc.Set("tags", post.Tags)
		doc.Set("rating", post.Rating)
		doc.Set("coffee_type", post.CoffeeType)
		doc.Set("coffee_name", post.CoffeeName)
		doc.Set("brand_id", post.BrandID)
		doc.Set("equipment_id", post.EquipmentID)
		doc.Set("updated_at", time.Now())
		return doc
	})
	if err != nil {
		if errors.Is(err, cl.ErrDocumentNotExist) {
			return pkg.Post{}, pkg.ErrNotFound
		}
		return pkg.Post{}, err
	}

	return s.GetByID(post.UUID)
}

func (s *Posts) GetByID(id string) (pkg.Post, error) {
	doc, err := s.db.FindFirst(q.NewQuery(ColPosts).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return pkg.Post{}, err
	}
	if doc == nil {
		return pkg.Post{}, pkg.ErrNotFound
	}

	return docToPost(doc), nil
}

// Recent returns a page of posts, newest first, plus the total count.
func (s *Posts) Recent(offset, limit int) ([]pkg.Post, int, error) {
	docs, err := s.db.FindAll(q.NewQuery(ColPosts).
		Sort(q.SortOption{Field: "created_at", Direction: -1}).
		Skip(offset).
		Limit(limit))
	if err != nil {
		return nil, 0, err
	}

	count, err := s.db.Count(q.NewQuery(ColPosts))
	if err != nil {
		return nil, 0, err
	}

	return docsToPosts(docs), count, nil
}

func (s *Posts) ByCreator(userID string) ([]pkg.Post, error) {
	docs, err := s.db.FindAll(q.NewQuery(ColPosts).
		Where(q.Field("creator").Eq(userID)).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}

	return docsToPosts(docs), nil
}

// Search matches captions case-insensitively. The store has no text
// matching, so candidates are paged out newest first and filtered here.
func (s *Posts) Search(term string, limit int) ([]pkg.Post, error) {
	docs, err := s.db.FindAll(q.NewQuery(ColPosts).
		Sort(q.SortOption{Field: "created_at", Direction: -1}))
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	matches := []pkg.Post{}
	for _, doc := range docs {
		post := docToPost(doc)
		if strings.Contains(strings.ToLower(post.Caption), term) {
			matches = append(matches, post)
			if len(matches) == limit {
				break
			}
		}
	}

	return matches, nil
}

// Delete removes a post. DeleteById reports success for ids that never
// existed, so existence is checked first to keep the not-found contract.
func (s *Posts) Delete(id string) error {
	doc, err := s.db.FindFirst(q.NewQuery(ColPosts).Where(q.Field("_id").Eq(id)))
	if err != nil {
		return err
	}
	if doc == nil {
		return pkg.ErrNotFound
	}

	return s.db.DeleteById(ColPosts, id)
}

// Like records a user on a post's likes list; it is idempotent.
func (s *Posts) Like(id, userID string) (pkg.Post, error) {
	return s.mutateLikes(id, func(likes []string) []string {
		if pkg.ContainsValue(likes, userID) {
			return likes
		}
		return append(likes, userID)
	})
}

func (s *Posts) Unlike(id, userID string) (pkg.Post, error) {
	return s.mutateLikes(id, func(likes []string) []string {
		return pkg.RemoveByValue(likes, userID)
	})
}

func (s *Posts) mutateLikes(id string, mutate func([]string) []string) (pkg.Post, error) {
	err := s.db.UpdateById(ColPosts, id, func(doc *document.Document) *document.Document {
		doc.Set("likes", mutate(docStrings(doc, "likes")))
		return doc
	})
	if err != nil {
		if errors.Is(err, cl.ErrDocumentNotExist) {
			return pkg.Post{}, pkg.ErrNotFound
		}
		return pkg.Post{}, err
	}

	return s.GetByID(id)
}

func docsToPosts(docs []*document.Document) []pkg.Post {
	posts := []pkg.Post{}
	for _, doc := range docs {
		posts = append(posts, docToPost(doc))
	}
	return posts
}

func docToPost(doc *document.Document) pkg.Post {
	return pkg.Post{
		UUID:        doc.ObjectId(),
		Creator:     docString(doc, "creator"),
		Caption:     docString(doc, "caption"),
		ImageID:     docString(doc, "image_id"),
		ImageURL:    docString(doc, "image_url"),
		Location:    docString(doc, "location"),
		Tags:        docStrings(doc, "tags"),
		Rating:      docInt64(doc, "rating"),
		CoffeeType:  docString(doc, "coffee_type"),
		CoffeeName:  docString(doc, "coffee_name"),
		BrandID:     docString(doc, "brand_id"),
		EquipmentID: docString(doc, "equipment_id"),
		Likes:       docStrings(doc, "likes"),
		CreatedAt:   docTime(doc, "created_at"),
		UpdatedAt:   docTime(doc, "updated_at"),
	}
}
