package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"brewshare/internal/app/middleware"
	"brewshare/internal/workflow"
)

func Signup(accounts *workflow.AccountWorkflow) func(c *gin.Context) {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
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
		if input.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "username is required",
			})
			return
		}
		if input.Email == "" || !strings.Contains(input.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "a valid email is required",
			})
			return
		}
		// validate password
		if len(input.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "password must be at least 8 characters long",
			})
			return
		}

		user, err := accounts.SignUp(workflow.SignUpInput{
			Email:    input.Email,
			Password: input.Password,
			Name:     input.Name,
			Username: input.Username,
		})
		if err != nil {
			if errors.Is(err, workflow.ErrEmailTaken) || errors.Is(err, workflow.ErrUsernameTaken) {
				c.JSON(http.StatusConflict, gin.H{
					"message": err.Error(),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while creating a new user",
			})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

func Signin(accounts *workflow.AccountWorkflow, sessionTTL time.Duration) func(c *gin.Context) {
	return func(c *gin.Context) {
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := c.BindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": err.Error(),
			})
			return
		}

		if credentials.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "email is required",
			})
			return
		}
		if credentials.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "password is required",
			})
			return
		}

		session, token, err := accounts.SignIn(credentials.Email, credentials.Password)
		if err != nil {
			if errors.Is(err, workflow.ErrInvalidCredentials) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "email or password is incorrect",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		user, err := accounts.CurrentUser(session.UUID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred on the server",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie("Authorization", token, int(sessionTTL.Seconds()), "", "", false, true)

		c.JSON(http.StatusCreated, gin.H{
			"user":       user,
			"expires_at": session.ExpiresAt,
			"token":      token,
		})
	}
}

func Signout(accounts *workflow.AccountWorkflow) func(c *gin.Context) {
	return func(c *gin.Context) {
		session, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		if err := accounts.SignOut(session.UUID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "An error occurred while signing out",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie("Authorization", "", -1, "", "", false, true)

		c.JSON(http.StatusNoContent, nil)
	}
}

func Me() func(c *gin.Context) {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
