package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewshare/internal/store"
)

// ListReferences serves either the brand or the equipment collection,
// depending on which store it is wired with.
func ListReferences(refs *store.References) func(c *gin.Context) {
	return func(c *gin.Context) {
		list, err := refs.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"references": list,
		})
	}
}

func CreateReference(refs *store.References) func(c *gin.Context) {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name"`
			LogoURL string `json:"logo_url"`
		}

		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": err.Error(),
			})
			return
		}

		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "name is required",
			})
			return
		}

		ref, err := refs.Create(input.Name, input.LogoURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while creating the entry",
			})
			return
		}

		c.JSON(http.StatusCreated, ref)
	}
}
