package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"cazinoureview/config"
	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/response"
	"cazinoureview/services"
	"cazinoureview/services/sheets"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

func Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input.Email = strings.ToLower(input.Email)

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		response.BadRequest(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		response.BadRequest(c, "Invalid email or password")
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userResponse := dto.UserLoginResponse{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	response.Success(c, gin.H{
		"user_info":   userResponse,
		"accessToken": accessToken,
	})
}

func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

// GoogleAuth redirects the operator to the Google consent screen for the
// Drive/Sheets read scopes.
func GoogleAuth(c *gin.Context) {
	conf := config.GoogleOAuthConfig()
	authURL := conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback exchanges the consent code and persists the token.
func GoogleCallback(c *gin.Context) {
	adminURL := config.GetEnvDefault("ADMIN_UI_URL", "/admin/data-management")

	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s?error=auth_failed", adminURL))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s?error=no_code", adminURL))
		return
	}

	conf := config.GoogleOAuthConfig()
	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s?error=token_exchange", adminURL))
		return
	}

	if err := sheets.SaveToken(config.DB, token); err != nil {
		response.ServerError(c)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s?auth=success", adminURL))
}
