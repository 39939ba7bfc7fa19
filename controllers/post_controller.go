package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/attachments"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/models"
	"github.com/snap-point/activity-api/store"
	"github.com/snap-point/activity-api/types"
	"github.com/snap-point/activity-api/utils"
	"go.uber.org/zap"
)

type PostController struct {
	Store    store.Store
	Files    attachments.Storage
	Resource config.ResourceConfig
	Log      *zap.Logger
}

func NewPostController(st store.Store, files attachments.Storage, res config.ResourceConfig, log *zap.Logger) *PostController {
	return &PostController{
		Store:    st,
		Files:    files,
		Resource: res,
		Log:      log.With(zap.String("resource", res.Name)),
	}
}

func buildChild(req types.CreatePostRequest) (*models.Child, error) {
	dob, err := models.ParseDate(req.DOB)
	if err != nil {
		return nil, err
	}
	return &models.Child{
		Note:        req.Note,
		Address:     req.Address,
		Coordinates: req.Coordinates,
		Fun:         req.Fun,
		DOB:         dob,
	}, nil
}

func rejectedPost(parentID uint) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Processed post, either a format error or record %d does not exist", parentID)}
}

// CreatePost godoc
// @Summary Add a post to a record
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param post body types.CreatePostRequest true "Post"
// @Success 200 {object} models.ChildView
// @Success 210 {object} MessageResponse
// @Router /{resource}/{id}/posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	parentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
		return
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBinding(c, err)
		return
	}

	ctx := c.Request.Context()

	// The record must exist within this resource, not just anywhere.
	if _, err := pc.Store.GetParent(ctx, pc.Resource.Kind, parentID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			pc.Log.Error("load record", zap.Uint("id", parentID), zap.Error(err))
		}
		c.JSON(StatusRejected, rejectedPost(parentID))
		return
	}

	child, err := buildChild(req)
	if err != nil {
		c.JSON(StatusRejected, rejectedPost(parentID))
		return
	}
	child.ParentID = parentID

	created, err := pc.Store.CreateChild(ctx, child)
	if err != nil {
		if !errors.Is(err, store.ErrIntegrity) {
			pc.Log.Error("create post", zap.Uint("parent_id", parentID), zap.Error(err))
		}
		c.JSON(StatusRejected, rejectedPost(parentID))
		return
	}

	view, err := created.Read(ctx, pc.Files)
	if err != nil {
		pc.Log.Error("serialize post", zap.Uint("id", created.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgAttachmentFailure})
		return
	}
	c.JSON(http.StatusOK, view)
}
