package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/store"
	"github.com/snap-point/activity-api/types"
	"github.com/snap-point/activity-api/utils"
	"go.uber.org/zap"
)

type AuthController struct {
	Store    store.Store
	Resource config.ResourceConfig
	Auth     config.AuthConfig
	Log      *zap.Logger
}

func NewAuthController(st store.Store, res config.ResourceConfig, auth config.AuthConfig, log *zap.Logger) *AuthController {
	return &AuthController{
		Store:    st,
		Resource: res,
		Auth:     auth,
		Log:      log.With(zap.String("resource", res.Name)),
	}
}

// Authenticate godoc
// @Summary Exchange uid and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body types.AuthenticateRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} MessageResponse
// @Router /{resource}/authenticate [post]
func (ac *AuthController) Authenticate(c *gin.Context) {
	if !ac.Auth.Enabled() {
		c.JSON(http.StatusNotImplemented, MessageResponse{Message: "Authentication is not enabled"})
		return
	}

	var req types.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBinding(c, err)
		return
	}

	parent, err := ac.Store.GetParentByUID(c.Request.Context(), ac.Resource.Kind, req.UID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			ac.Log.Error("load record", zap.String("uid", req.UID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgStoreFailure})
			return
		}
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid uid or password"})
		return
	}
	if !parent.IsPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid uid or password"})
		return
	}

	ttl := time.Duration(ac.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := utils.IssueToken(ac.Auth.JWTSecret, ttl, utils.Claims{
		ParentID: parent.ID,
		UID:      parent.UID,
		Kind:     parent.Kind,
	})
	if err != nil {
		ac.Log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
