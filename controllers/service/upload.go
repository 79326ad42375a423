package serviceControllers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/storage"
)

const uploadFolder = "services"

var maxUploadSize int64 = 100 << 20

var allowedUploadTypes = []string{
	"application/pdf",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"model/step",
	"application/step",
}

// POST /service/upload
//
// Stores a drawing or spec sheet ahead of an inquiry. The returned object
// is echoed back as the inquiry's "file" field.
func UploadFile(uploader storage.Uploader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Room for the multipart envelope around a file at the limit.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1<<20)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 100MB limit"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		contentType := fh.Header.Get("Content-Type")
		if !slices.Contains(allowedUploadTypes, contentType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only PDF, Excel, Word, images, and STEP files are allowed."})
			return
		}
		if fh.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 100MB limit"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			log.Error("open uploaded file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading file"})
			return
		}
		defer f.Close()

		obj, err := uploader.Upload(c.Request.Context(), uploadFolder, fh.Filename, contentType, f)
		if err != nil {
			log.Error("store service file", zap.String("name", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading file"})
			return
		}
		obj.Name = fh.Filename
		obj.ContentType = contentType
		obj.Size = fh.Size

		c.JSON(http.StatusOK, obj)
	}
}
