package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewshare/internal/pkg"
	"brewshare/internal/store"
)

func GetUserById(users *store.Users) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "user not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func GetUserPosts(users *store.Users, postDocs *store.Posts) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "user not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		posts, err := postDocs.ByCreator(user.UUID)
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
