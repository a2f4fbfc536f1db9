package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/toast"
)

// multipart 表单头部的额外余量
const uploadOverhead = 1 << 20

// ImageHandlers are the fetch, upload and delete endpoints of one image slot.
type ImageHandlers struct {
	Show   gin.HandlerFunc
	Upload gin.HandlerFunc
	Delete gin.HandlerFunc
}

func (a *API) imageHandlers(directory func(c *gin.Context) (string, error)) ImageHandlers {
	return ImageHandlers{
		Show:   func(c *gin.Context) { a.withImageDir(c, directory, a.showImage) },
		Upload: func(c *gin.Context) { a.withImageDir(c, directory, a.uploadImage) },
		Delete: func(c *gin.Context) { a.withImageDir(c, directory, a.deleteImage) },
	}
}

// ProfileImage 开发者头像
func (a *API) ProfileImage() ImageHandlers {
	return a.imageHandlers(func(c *gin.Context) (string, error) {
		return blob.ProfileDirectory(c.Param("id"))
	})
}

// ProjectImage 项目配图
func (a *API) ProjectImage() ImageHandlers {
	return a.imageHandlers(func(c *gin.Context) (string, error) {
		return blob.ProjectDirectory(c.Param("id"), c.Param("skillId"), c.Param("projectId"))
	})
}

func (a *API) withImageDir(c *gin.Context, directory func(c *gin.Context) (string, error), next func(*gin.Context, string)) {
	if a.images == nil {
		respondError(c, http.StatusServiceUnavailable, msgImagesDisabled)
		return
	}
	dir, err := directory(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidImagePath)
		return
	}
	next(c, dir)
}

func (a *API) showImage(c *gin.Context, dir string) {
	img, err := a.images.Current(c.Request.Context(), dir)
	if err != nil {
		a.imageFailureResponse(c, a.imageFailed(c, err))
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"image": img})
		return
	}
	a.renderHTML(c, http.StatusOK, "image.html", gin.H{"image": img})
}

func (a *API) uploadImage(c *gin.Context, dir string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, blob.MaxImageBytes+uploadOverhead)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.imageFailureResponse(c, a.imageFailed(c, &blob.OpError{Op: "upload", Err: blob.ErrImageTooLarge}))
			return
		}
		respondError(c, http.StatusBadRequest, msgMissingImage)
		return
	}
	if file.Size > blob.MaxImageBytes {
		a.imageFailureResponse(c, a.imageFailed(c, &blob.OpError{Op: "upload", Err: blob.ErrImageTooLarge}))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, msgUnreadableImage)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, blob.MaxImageBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgUnreadableImage)
		return
	}

	img, err := a.images.Replace(c.Request.Context(), dir, data)
	if err != nil {
		a.imageFailureResponse(c, a.imageFailed(c, err))
		return
	}

	a.notifier(c).Show("Image uploaded successfully", toast.Success)
	a.imageSuccessResponse(c, gin.H{"image": img})
}

func (a *API) deleteImage(c *gin.Context, dir string) {
	if err := a.images.Delete(c.Request.Context(), dir); err != nil {
		a.imageFailureResponse(c, a.imageFailed(c, err))
		return
	}

	a.notifier(c).Show("Image deleted successfully", toast.Success)
	a.imageSuccessResponse(c, gin.H{"image": nil})
}

func (a *API) imageSuccessResponse(c *gin.Context, body gin.H) {
	switch {
	case wantsJSON(c):
		c.JSON(http.StatusOK, body)
	case isHTMX(c):
		c.Header("HX-Refresh", "true")
		a.renderHTML(c, http.StatusOK, "toasts.html", nil)
	default:
		redirectBack(c, "/dashboard")
	}
}

func (a *API) imageFailureResponse(c *gin.Context, message string) {
	switch {
	case wantsJSON(c):
		respondError(c, http.StatusBadGateway, message)
	case isHTMX(c):
		a.renderHTML(c, http.StatusOK, "toasts.html", nil)
	default:
		redirectBack(c, "/dashboard")
	}
}
