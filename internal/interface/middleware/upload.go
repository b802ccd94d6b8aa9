package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

const uploadedKey = "uploaded_file"

// multipart text fields of a project form stay well below this.
const formOverhead = 1 << 20

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Upload stores the image sent in Field of a multipart request and puts
// its public path in the context. Requests without a file pass untouched.
// The file is removed again when the rest of the chain answers with an error.
type Upload struct {
	Store    helpers.ObjectStorage
	Field    string
	MaxBytes int64
	Errors   *ErrorResponder
	Now      func() time.Time
}

func (u *Upload) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, u.MaxBytes+formOverhead)

		file, hdr, err := c.Request.FormFile(u.Field)
		if errors.Is(err, http.ErrMissingFile) {
			c.Next()
			return
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.AppError(c, u.tooLarge())
			return
		}
		if err != nil {
			response.AppError(c, apperror.Validation("Invalid multipart form."))
			return
		}
		defer file.Close()

		if hdr.Size > u.MaxBytes {
			response.AppError(c, u.tooLarge())
			return
		}
		mt, err := mimetype.DetectReader(file)
		if err != nil || !slices.Contains(imageTypes, mt.String()) {
			response.AppError(c, apperror.Validation("Invalid file type! Only images are allowed."))
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			u.Errors.Write(c, err)
			return
		}

		name := helpers.UploadFilename(u.now(), mt.Extension())
		url, err := u.Store.Save(c.Request.Context(), name, mt.String(), file)
		if err != nil {
			u.Errors.Write(c, fmt.Errorf("store upload: %w", err))
			return
		}
		c.Set(uploadedKey, url)
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			u.discard(c, url)
		}
	}
}

// discard removes an upload whose request failed, so no file is left
// without a record pointing at it.
func (u *Upload) discard(c *gin.Context, url string) {
	if err := u.Store.Remove(context.WithoutCancel(c.Request.Context()), url); err != nil && u.Errors != nil {
		u.Errors.Logger.WithError(err).WithField("file", url).Warn("orphaned upload not removed")
	}
}

func (u *Upload) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u *Upload) tooLarge() *apperror.Error {
	return apperror.Validation(fmt.Sprintf("File too large. Max size is %dMB.", u.MaxBytes>>20))
}

// UploadedFile returns the path stored by Upload, if any.
func UploadedFile(c *gin.Context) (string, bool) {
	s := c.GetString(uploadedKey)
	return s, s != ""
}
