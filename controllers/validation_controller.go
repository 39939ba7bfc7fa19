package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/snap-point/activity-api/store"
	"go.uber.org/zap"
)

func init() {
	// Report json names ("uid", "dob") instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// validationMessage describes the first field that failed binding validation.
func validationMessage(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "datetime":
		return fmt.Sprintf("%s must be formatted MM-DD-YYYY", fe.Field()), true
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field()), true
	}
	return fmt.Sprintf("%s is missing or too short", fe.Field()), true
}

// rejectBinding answers a failed ShouldBindJSON: 210 for a field that failed
// validation, 400 for a body that is not the expected JSON.
func rejectBinding(c *gin.Context, err error) {
	if msg, ok := validationMessage(err); ok {
		c.JSON(StatusRejected, MessageResponse{Message: msg})
		return
	}
	c.JSON(http.StatusBadRequest, MessageResponse{Message: msgInvalidBody})
}

type ValidationController struct {
	Store store.Store
	Log   *zap.Logger
}

func NewValidationController(st store.Store, log *zap.Logger) *ValidationController {
	return &ValidationController{Store: st, Log: log}
}

// UIDExists godoc
// @Summary Check whether a uid is taken
// @Tags validation
// @Produce json
// @Param uid path string true "External id"
// @Success 200 {object} ExistsResponse
// @Router /{resource}/exists/{uid} [get]
func (vc *ValidationController) UIDExists(c *gin.Context) {
	uid := c.Param("uid")

	exists, err := vc.Store.ExistsUID(c.Request.Context(), uid)
	if err != nil {
		vc.Log.Error("check uid", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to check uid"})
		return
	}
	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}
