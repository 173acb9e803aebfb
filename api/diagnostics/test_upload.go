package diagnostics

import (
	"encoding/hex"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
)

const headerBytes = 16

// TestUpload describes an uploaded file without storing or transcribing it
// @Summary      Inspect an upload
// @Description  Echoes the name, size and declared type of the uploaded file together with the type sniffed from
// @Description  its content, whether the transcription endpoint would accept it and the first 16 bytes in hex.
// @Tags         diagnostics
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio formData file true "File to inspect"
// @Success      200 {object} types.TestUploadResponse
// @Failure      400 {object} types.ErrorResponse "Missing file"
// @Failure      413 {object} types.ErrorResponse "File too large"
// @Router       /api/test-upload [post]
func TestUpload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		audio, err := types.ReadAudio(c, "audio", deps.UploadLimit())
		if err != nil {
			types.SendError(c, err)
			return
		}

		declared := ""
		if fh, err := c.FormFile("audio"); err == nil {
			declared = fh.Header.Get("Content-Type")
		}

		head := audio.Data
		if len(head) > headerBytes {
			head = head[:headerBytes]
		}

		types.SendSuccess(c, types.TestUploadResponse{
			Success:      true,
			Filename:     audio.Filename,
			Size:         len(audio.Data),
			DeclaredType: declared,
			DetectedType: mimetype.Detect(audio.Data).String(),
			Accepted:     transcription.ValidateAudio(audio, deps.UploadLimit()) == nil,
			HeaderHex:    hex.EncodeToString(head),
		})
	}
}
