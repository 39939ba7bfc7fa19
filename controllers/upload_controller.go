package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/attachments"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/store"
	"github.com/snap-point/activity-api/utils"
	"go.uber.org/zap"
)

// UploadController stores post images in attachment storage.
type UploadController struct {
	Store    store.Store
	Files    attachments.Storage
	Resource config.ResourceConfig
	Log      *zap.Logger
}

func NewUploadController(st store.Store, files attachments.Storage, res config.ResourceConfig, log *zap.Logger) *UploadController {
	return &UploadController{
		Store:    st,
		Files:    files,
		Resource: res,
		Log:      log.With(zap.String("resource", res.Name)),
	}
}

// UploadImage godoc
// @Summary Attach an image to a post
// @Description Replaces the post image; the previous file is removed
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Record ID"
// @Param postId path int true "Post ID"
// @Param file formData file true "Image"
// @Success 200 {object} models.ChildView
// @Router /{resource}/{id}/posts/{postId}/image [post]
func (uc *UploadController) UploadImage(c *gin.Context) {
	parentID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
		return
	}
	postID, err := utils.ParseIDParam(c, "postId")
	if err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
		return
	}

	ctx := c.Request.Context()

	if _, err := uc.Store.GetParent(ctx, uc.Resource.Kind, parentID); err != nil {
		uc.lookupFailure(c, err)
		return
	}
	post, err := uc.Store.GetChild(ctx, parentID, postID)
	if err != nil {
		uc.lookupFailure(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "file is required"})
		return
	}
	if header.Size > attachments.MaxImageSize {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: attachments.ErrTooLarge.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "could not read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, attachments.MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "could not read upload"})
		return
	}

	contentType, err := attachments.DetectImage(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	name := attachments.NewFileName(header.Filename)
	if err := uc.Files.Save(ctx, name, data, contentType); err != nil {
		uc.Log.Error("save image", zap.String("image", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to store image"})
		return
	}

	previous := post.Image
	if err := uc.Store.UpdateChildImage(ctx, post, name); err != nil {
		uc.Log.Error("attach image", zap.Uint("post_id", post.ID), zap.Error(err))
		if delErr := uc.Files.Delete(ctx, name); delErr != nil {
			uc.Log.Warn("remove orphaned image", zap.String("image", name), zap.Error(delErr))
		}
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to store image"})
		return
	}
	if previous != "" {
		if err := uc.Files.Delete(ctx, previous); err != nil {
			uc.Log.Warn("remove replaced image", zap.String("image", previous), zap.Error(err))
		}
	}

	view, err := post.Read(ctx, uc.Files)
	if err != nil {
		uc.Log.Error("serialize post", zap.Uint("id", post.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgAttachmentFailure})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (uc *UploadController) lookupFailure(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, MessageResponse{Message: msgNotFound})
		return
	}
	uc.Log.Error("load post", zap.Error(err))
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgStoreFailure})
}
