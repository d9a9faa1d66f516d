package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Decan209/easy-tick-bw/internal/http/middleware"
	"github.com/Decan209/easy-tick-bw/internal/shared/apperr"
	"github.com/Decan209/easy-tick-bw/internal/storage"
)

const maxImageSize = 5 << 20 // 5 MiB

// UploadHandler stores campaign images.
type UploadHandler struct {
	Storage storage.Storage
}

func NewUploadHandler(st storage.Storage) *UploadHandler {
	return &UploadHandler{Storage: st}
}

// Image handles POST /api/campaigns/images (multipart field "image").
func (h *UploadHandler) Image(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Missing image file.", nil))
		return
	}
	if fh.Size > maxImageSize {
		middleware.Fail(c, apperr.InvalidErr("Image too large.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		log.Printf("UploadImage: storing %s: %v", fh.Filename, err)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": res.Key, "url": res.URL})
}
