package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"brewshare/internal/pkg"
)

// PostDocuments is the slice of the document store the post workflow
// needs.
type PostDocuments interface {
	Create(post pkg.Post) (pkg.Post, error)
	Update(post pkg.Post) (pkg.Post, error)
	Delete(id string) error
}

// ReferenceChecker validates submitted brand/equipment ids.
type ReferenceChecker interface {
	Exists(id string) (bool, error)
}

// PostWorkflow creates, updates and deletes posts together with their
// image assets.
type PostWorkflow struct {
	posts     PostDocuments
	uploader  *Uploader
	brands    ReferenceChecker
	equipment ReferenceChecker

	// deleteReplaced controls whether an update that swapped the image
	// also removes the previously referenced asset once the document
	// update has committed. Off, replaced assets are retained.
	deleteReplaced bool
}

func NewPostWorkflow(posts PostDocuments, uploader *Uploader, brands, equipment ReferenceChecker, deleteReplaced bool) *PostWorkflow {
	return &PostWorkflow{
		posts:          posts,
		uploader:       uploader,
		brands:         brands,
		equipment:      equipment,
		deleteReplaced: deleteReplaced,
	}
}

// File is an uploaded image handed over from the HTTP layer.
type File struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type CreatePostInput struct {
	CreatorID   string
	Caption     string
	Location    string
	Tags        string
	Rating      int64
	CoffeeType  string
	CoffeeName  string
	BrandID     string
	EquipmentID string
	File        File
}

// Create uploads the image and writes the post document. If the document
// write fails the uploaded asset is deleted again, so a failed create
// leaves neither a post nor a stray blob.
func (w *PostWorkflow) Create(ctx context.Context, in CreatePostInput) (pkg.Post, error) {
	if err := w.checkReferences(in.BrandID, in.EquipmentID); err != nil {
		return pkg.Post{}, err
	}

	asset, err := w.uploader.Upload(ctx, in.File.Reader, in.File.Size, in.File.ContentType)
	if err != nil {
		return pkg.Post{}, err
	}

	var saga Saga
	saga.OnFailure(func(ctx context.Context) error {
		return w.uploader.Delete(ctx, asset.ID)
	})

	created, err := w.posts.Create(pkg.Post{
		Creator:     in.CreatorID,
		Caption:     in.Caption,
		ImageID:     asset.ID,
		ImageURL:    asset.PreviewURL,
		Location:    in.Location,
		Tags:        pkg.ParseTags(in.Tags),
		Rating:      in.Rating,
		CoffeeType:  in.CoffeeType,
		CoffeeName:  in.CoffeeName,
		BrandID:     in.BrandID,
		EquipmentID: in.EquipmentID,
	})
	if err != nil {
		failure := fmt.Errorf("%w: %v", ErrDocumentWrite, err)
		if cerr := saga.Compensate(ctx); cerr != nil {
			log.Printf("post create: %v", cerr)
			return pkg.Post{}, errors.Join(failure, cerr)
		}
		return pkg.Post{}, failure
	}

	return created, nil
}

type UpdatePostInput struct {
	PostID      string
	Caption     string
	Location    string
	Tags        string
	Rating      int64
	CoffeeType  string
	CoffeeName  string
	BrandID     string
	EquipmentID string

	// PrevImageID/PrevImageURL is the pair currently stored on the post;
	// it is carried through unchanged unless File replaces it.
	PrevImageID  string
	PrevImageURL string
	File         *File
}

// Update rewrites the post document, optionally replacing its image. The
// image id/URL pair is only ever swapped atomically in the update payload.
// If the document update fails, the asset uploaded in this attempt is
// deleted; the previously referenced asset is never touched by the failure
// path.
func (w *PostWorkflow) Update(ctx context.Context, in UpdatePostInput) (pkg.Post, error) {
	if err := w.checkReferences(in.BrandID, in.EquipmentID); err != nil {
		return pkg.Post{}, err
	}

	imageID, imageURL := in.PrevImageID, in.PrevImageURL

	var saga Saga
	replaced := false
	if in.File != nil {
		asset, err := w.uploader.Upload(ctx, in.File.Reader, in.File.Size, in.File.ContentType)
		if err != nil {
			return pkg.Post{}, err
		}
		saga.OnFailure(func(ctx context.Context) error {
			return w.uploader.Delete(ctx, asset.ID)
		})
		imageID, imageURL = asset.ID, asset.PreviewURL
		replaced = true
	}

	updated, err := w.posts.Update(pkg.Post{
		UUID:        in.PostID,
		Caption:     in.Caption,
		ImageID:     imageID,
		ImageURL:    imageURL,
		Location:    in.Location,
		Tags:        pkg.ParseTags(in.Tags),
		Rating:      in.Rating,
		CoffeeType:  in.CoffeeType,
		CoffeeName:  in.CoffeeName,
		BrandID:     in.BrandID,
		EquipmentID: in.EquipmentID,
	})
	if err != nil {
		failure := fmt.Errorf("%w: %v", ErrDocumentWrite, err)
		if cerr := saga.Compensate(ctx); cerr != nil {
			log.Printf("post update: %v", cerr)
			return pkg.Post{}, errors.Join(failure, cerr)
		}
		return pkg.Post{}, failure
	}

	if replaced && w.deleteReplaced && in.PrevImageID != "" {
		if err := w.uploader.Delete(ctx, in.PrevImageID); err != nil {
			// The document update already committed; losing this delete
			// only retains a blob, so log and move on.
			log.Printf("post update: deleting replaced asset %s: %v", in.PrevImageID, err)
		}
	}

	return updated, nil
}

// Delete removes the post document and then its asset. The asset delete is
// best effort: once the document is gone the post no longer exists, and a
// leftover blob is preferable to a post that points at nothing.
func (w *PostWorkflow) Delete(ctx context.Context, postID, imageID string) error {
	if postID == "" || imageID == "" {
		return fmt.Errorf("%w: post and image ids are required", ErrDocumentWrite)
	}

	if err := w.posts.Delete(postID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDocumentWrite, err)
	}

	if err := w.uploader.Delete(ctx, imageID); err != nil {
		log.Printf("post delete: deleting asset %s: %v", imageID, err)
	}

	return nil
}

func (w *PostWorkflow) checkReferences(brandID, equipmentID string) error {
	if brandID != "" {
		ok, err := w.brands.Exists(brandID)
		if err != nil {
			return fmt.Errorf("checking brand: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: brand %s", ErrUnknownReference, brandID)
		}
	}
	if equipmentID != "" {
		ok, err := w.equipment.Exists(equipmentID)
		if err != nil {
			return fmt.Errorf("checking equipment: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: equipment %s", ErrUnknownReference, equipmentID)
		}
	}
	return nil
}
