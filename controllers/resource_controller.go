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

// ResourceController serves the CRUD endpoints of one resource group.
type ResourceController struct {
	Store    store.Store
	Files    attachments.Storage
	Resource config.ResourceConfig
	Log      *zap.Logger
}

func NewResourceController(st store.Store, files attachments.Storage, res config.ResourceConfig, log *zap.Logger) *ResourceController {
	return &ResourceController{
		Store:    st,
		Files:    files,
		Resource: res,
		Log:      log.With(zap.String("resource", res.Name)),
	}
}

func duplicateMessage(name, uid string) string {
	return fmt.Sprintf("Processed %s, either a format error or uid %s is duplicate", name, uid)
}

// Create godoc
// @Summary Create a record
// @Description Validates name, uid, address, coordinates and fun in that order, then stores the record with any posts
// @Tags resources
// @Accept json
// @Produce json
// @Param record body types.CreateParentRequest true "Record"
// @Success 200 {object} models.ParentView
// @Success 210 {object} MessageResponse
// @Router /{resource}/create [post]
func (rc *ResourceController) Create(c *gin.Context) {
	var req types.CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBinding(c, err)
		return
	}

	parent, err := buildParent(rc.Resource.Kind, req)
	if err != nil {
		rc.Log.Warn("build record", zap.String("uid", req.UID), zap.Error(err))
		c.JSON(StatusRejected, MessageResponse{Message: duplicateMessage(req.Name, req.UID)})
		return
	}

	created, err := rc.Store.CreateParent(c.Request.Context(), parent)
	if err != nil {
		if !errors.Is(err, store.ErrIntegrity) {
			rc.Log.Error("create record", zap.String("uid", req.UID), zap.Error(err))
		}
		c.JSON(StatusRejected, MessageResponse{Message: duplicateMessage(req.Name, req.UID)})
		return
	}

	rc.respondParent(c, created)
}

func buildParent(kind string, req types.CreateParentRequest) (*models.Parent, error) {
	parent := models.NewParent(kind, req.Name, req.UID, req.Address, req.Coordinates, req.Fun)
	if req.Password != "" {
		if err := parent.SetPassword(req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	dob, err := models.ParseDate(req.DOB)
	if err != nil {
		return nil, err
	}
	parent.DOB = dob

	for _, p := range req.Posts {
		child, err := buildChild(p)
		if err != nil {
			return nil, err
		}
		parent.AppendPost(*child)
	}
	return parent, nil
}

// List godoc
// @Summary List every record of the resource with its posts
// @Tags resources
// @Produce json
// @Success 200 {array} models.ParentView
// @Router /{resource}/ [get]
func (rc *ResourceController) List(c *gin.Context) {
	ctx := c.Request.Context()

	parents, err := rc.Store.ListParents(ctx, rc.Resource.Kind)
	if err != nil {
		rc.Log.Error("list records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgStoreFailure})
		return
	}

	views := make([]models.ParentView, 0, len(parents))
	for _, p := range parents {
		view, err := p.Read(ctx, rc.Files)
		if err != nil {
			rc.attachmentFailure(c, p, err)
			return
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}

func (rc *ResourceController) Get(c *gin.Context) {
	parent, ok := rc.loadParent(c)
	if !ok {
		return
	}
	rc.respondParent(c, parent)
}

// Update godoc
// @Summary Partially update a record
// @Description Only fields with a value are written
// @Tags resources
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body types.UpdateParentRequest true "Fields to change"
// @Success 200 {object} models.ParentView
// @Router /{resource}/{id} [put]
func (rc *ResourceController) Update(c *gin.Context) {
	var req types.UpdateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBinding(c, err)
		return
	}

	parent, ok := rc.loadParent(c)
	if !ok {
		return
	}

	update := models.ParentUpdate{
		Name:        req.Name,
		UID:         req.UID,
		Address:     req.Address,
		Coordinates: req.Coordinates,
		Fun:         req.Fun,
		Password:    req.Password,
	}
	updated, err := rc.Store.UpdateParent(c.Request.Context(), parent, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
			return
		}
		if !errors.Is(err, store.ErrIntegrity) {
			rc.Log.Error("update record", zap.Uint("id", parent.ID), zap.Error(err))
		}
		name, uid := parent.Name, parent.UID
		if req.Name != "" {
			name = req.Name
		}
		if req.UID != "" {
			uid = req.UID
		}
		c.JSON(StatusRejected, MessageResponse{Message: duplicateMessage(name, uid)})
		return
	}

	rc.respondParent(c, updated)
}

// Delete removes the record, its posts and their image files.
func (rc *ResourceController) Delete(c *gin.Context) {
	parent, ok := rc.loadParent(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := rc.Store.DeleteParent(ctx, parent); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
			return
		}
		rc.Log.Error("delete record", zap.Uint("id", parent.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgStoreFailure})
		return
	}

	for _, post := range parent.Posts {
		if post.Image == "" {
			continue
		}
		if err := rc.Files.Delete(ctx, post.Image); err != nil {
			rc.Log.Warn("delete post image", zap.String("image", post.Image), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Deleted %s", parent.UID)})
}

// loadParent resolves :id within this resource. On failure the response has
// already been written.
func (rc *ResourceController) loadParent(c *gin.Context) (*models.Parent, bool) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
		return nil, false
	}

	parent, err := rc.Store.GetParent(c.Request.Context(), rc.Resource.Kind, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
			return nil, false
		}
		rc.Log.Error("load record", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgStoreFailure})
		return nil, false
	}
	return parent, true
}

func (rc *ResourceController) respondParent(c *gin.Context, p *models.Parent) {
	view, err := p.Read(c.Request.Context(), rc.Files)
	if err != nil {
		rc.attachmentFailure(c, p, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (rc *ResourceController) attachmentFailure(c *gin.Context, p *models.Parent, err error) {
	rc.Log.Error("serialize record",
		zap.Uint("id", p.ID),
		zap.String("uid", p.UID),
		zap.Bool("missing_file", errors.Is(err, attachments.ErrNotFound)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgAttachmentFailure})
}
