package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"brewshare/internal/app/middleware"
	"brewshare/internal/pkg"
	"brewshare/internal/store"
	"brewshare/internal/workflow"
)

const maxRating = 5

func CreatePost(posts *workflow.PostWorkflow) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		caption := c.PostForm("caption")
		if caption == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "caption is required",
			})
			return
		}

		rating, err := parseRating(c.PostForm("rating"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": err.Error(),
			})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusNotAcceptable, gin.H{
				"message": err.Error(),
			})
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"message": "Uploaded file must be an image",
			})
			return
		}

		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occured while reading the uploaded file",
			})
			return
		}
		defer f.Close()

		post, err := posts.Create(c.Request.Context(), workflow.CreatePostInput{
			CreatorID:   user.UUID,
			Caption:     caption,
			Location:    c.PostForm("location"),
			Tags:        c.PostForm("tags"),
			Rating:      rating,
			CoffeeType:  c.PostForm("coffee_type"),
			CoffeeName:  c.PostForm("coffee_name"),
			BrandID:     c.PostForm("brand_id"),
			EquipmentID: c.PostForm("equipment_id"),
			File: workflow.File{
				Reader:      f,
				Size:        file.Size,
				ContentType: file.Header.Get("Content-Type"),
			},
		})
		if err != nil {
			respondPostFailure(c, err)
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

func UpdatePost(posts *workflow.PostWorkflow, postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		existing, err := postDocs.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "post not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		if existing.Creator != user.UUID {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "only the creator can edit a post",
			})
			return
		}

		caption := c.PostForm("caption")
		if caption == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "caption is required",
			})
			return
		}

		rating, err := parseRating(c.PostForm("rating"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": err.Error(),
			})
			return
		}

		// The image is only replaced when a new file was submitted. A
		// missing part means "keep the image"; any other form error is the
		// client's.
		var newFile *workflow.File
		file, ferr := c.FormFile("image")
		switch {
		case errors.Is(ferr, http.ErrMissingFile):
			// keep the current image
		case ferr != nil:
			c.JSON(http.StatusBadRequest, gin.H{
				"message": ferr.Error(),
			})
			return
		default:
			if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
				c.JSON(http.StatusUnsupportedMediaType, gin.H{
					"message": "Uploaded file must be an image",
				})
				return
			}

			f, oerr := file.Open()
			if oerr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "An error occured while reading the uploaded file",
				})
				return
			}
			defer f.Close()

			newFile = &workflow.File{
				Reader:      f,
				Size:        file.Size,
				ContentType: file.Header.Get("Content-Type"),
			}
		}

		updated, err := posts.Update(c.Request.Context(), workflow.UpdatePostInput{
			PostID:       existing.UUID,
			Caption:      caption,
			Location:     c.PostForm("location"),
			Tags:         c.PostForm("tags"),
			Rating:       rating,
			CoffeeType:   c.PostForm("coffee_type"),
			CoffeeName:   c.PostForm("coffee_name"),
			BrandID:      c.PostForm("brand_id"),
			EquipmentID:  c.PostForm("equipment_id"),
			PrevImageID:  existing.ImageID,
			PrevImageURL: existing.ImageURL,
			File:         newFile,
		})
		if err != nil {
			respondPostFailure(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func GetPostById(postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		post, err := postDocs.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "post not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// returns recent posts, newest first.
// limit is 20.
// offset default is 0.
func GetRecentPosts(postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		offset, err := strconv.Atoi(c.Query("offset"))
		if err != nil {
			offset = 0
		}
		limit := 20

		posts, count, err := postDocs.Recent(offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"posts": posts,
			"count": count,
		})
	}
}

func SearchPosts(postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "q is required",
			})
			return
		}

		posts, err := postDocs.Search(term, 20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"posts": posts,
		})
	}
}

func DeletePost(posts *workflow.PostWorkflow, postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		post, err := postDocs.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "post not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		if post.Creator != user.UUID {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "only the creator can delete a post",
			})
			return
		}

		if err := posts.Delete(c.Request.Context(), post.UUID, post.ImageID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while deleting the post",
			})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}

func LikePost(postDocs *store.Posts) func(c *gin.Context) {
	return mutateLikes(postDocs, (*store.Posts).Like)
}

func UnlikePost(postDocs *store.Posts) func(c *gin.Context) {
	return mutateLikes(postDocs, (*store.Posts).Unlike)
}

func mutateLikes(postDocs *store.Posts, mutate func(*store.Posts, string, string) (pkg.Post, error)) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		post, err := mutate(postDocs, c.Param("id"), user.UUID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "post not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

func parseRating(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	rating, err := strconv.ParseInt(value, 10, 64)
	if err != nil || rating < 0 || rating > maxRating {
		return 0, errors.New("rating must be a number between 0 and 5")
	}
	return rating, nil
}

func respondPostFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrUnknownReference):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
	case errors.Is(err, workflow.ErrUploadFailed):
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occured while uploading image to the bucket",
		})
	case errors.Is(err, workflow.ErrPreviewDerivation):
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occured while preparing the image preview",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An error occured while saving the post. Please try again.",
		})
	}
}

