package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akhi1986akhi/webChat/global/config"
	usermodel "github.com/akhi1986akhi/webChat/module/user/model"
	userservice "github.com/akhi1986akhi/webChat/module/user/service"
	"github.com/akhi1986akhi/webChat/tools/errs"
	"github.com/akhi1986akhi/webChat/tools/security"
)

type registerReq struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Contact  string `json:"contact"`
}

type registerResp struct {
	User     *usermodel.User `json:"user"`
	Token    string          `json:"token"`
	ExpireAt int64           `json:"expireAt"`
}

// Register creates (or re-issues a token for) a user by email.
func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrBinding.WithDetail(err.Error()))
		return
	}

	ctx := c.Request.Context()
	u, err := userservice.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if u == nil {
		u = &usermodel.User{
			FullName: strings.TrimSpace(req.FullName),
			Email:    req.Email,
			Contact:  req.Contact,
			Role:     usermodel.RoleUser,
		}
		if err := userservice.Create(ctx, u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	token, _, exp, err := security.Generate(
		security.DefaultOptions(config.GetJwtSecret()), u.UserID, []string{"chat"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, registerResp{User: u, Token: token, ExpireAt: exp.Unix()})
}

// ListUsers returns every registered user, newest first.
func ListUsers(c *gin.Context) {
	users, err := userservice.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// GetUser returns one user by id.
func GetUser(c *gin.Context) {
	u, err := userservice.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
