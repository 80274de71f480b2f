package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewshare/internal/app/middleware"
	"brewshare/internal/pkg"
	"brewshare/internal/store"
)

func SavePost(saves *store.Saves, postDocs *store.Posts) func(c *gin.Context) {
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

		save, err := saves.Create(post.UUID, user.UUID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while saving the post",
			})
			return
		}

		c.JSON(http.StatusCreated, save)
	}
}

func GetSavedPosts(saves *store.Saves) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		list, err := saves.ByUser(user.UUID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"saves": list,
		})
	}
}

func DeleteSavedPost(saves *store.Saves) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		save, err := saves.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "saved post not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		if save.UserID != user.UUID {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "only the owner can remove a saved post",
			})
			return
		}

		if err := saves.Delete(save.UUID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while removing the saved post",
			})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}
