package handlers

import (
	"errors"
	"io"
	"net/http"

	"verbatim/internal/service"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds a single audio upload.
const maxUploadBytes = 25 << 20 // 25 MB

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetCode string `json:"target_code" binding:"required"`
}

type voiceoverRequest struct {
	Text          string `json:"text" binding:"required"`
	VoiceName     string `json:"voice_name" binding:"required"`
	EmotionPrompt string `json:"emotion_prompt"`
	IsPreview     bool   `json:"is_preview"`
}

// @Summary      Transcribe an audio upload
// @Description  Multipart form: "file" (audio), "language_code", optional "project_id" to store the result.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    true   "Audio file"
// @Param        language_code  formData  string  true   "Language code"
// @Param        project_id     formData  string  false  "Owned project to attach the result to"
// @Success      200  {object}  service.TranscribeResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /transcribe [post]
// @Security     BearerAuth
func (h *Handler) transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	languageCode := c.PostForm("language_code")
	if languageCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language_code is required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(file)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, "failed to read upload", "transcribe_read_failed", err)
		return
	}

	user := h.currentUser(c)
	result, err := h.services.Media.Transcribe(c.Request.Context(), user, service.TranscribeInput{
		ProjectID:    c.PostForm("project_id"),
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		LanguageCode: languageCode,
		Audio:        audio,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMedia) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrUnsupportedMedia.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "transcription failed", "transcribe_failed", err, "file", header.Filename)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Translate text
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body  translateRequest  true  "Text and target language"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /translate [post]
// @Security     BearerAuth
func (h *Handler) translate(c *gin.Context) {
	var input translateRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := h.currentUser(c)
	translated, err := h.services.Media.Translate(c.Request.Context(), user, input.Text, input.TargetCode)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "translation failed", "translate_failed", err, "target", input.TargetCode)
		return
	}

	c.JSON(http.StatusOK, gin.H{"translated_text": translated})
}

// @Summary      Generate a voice-over
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body  voiceoverRequest  true  "Text and voice"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /voiceover [post]
// @Security     BearerAuth
func (h *Handler) voiceover(c *gin.Context) {
	var input voiceoverRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := h.currentUser(c)
	audio, err := h.services.Media.Voiceover(c.Request.Context(), user, service.VoiceoverInput{
		Text:          input.Text,
		VoiceName:     input.VoiceName,
		EmotionPrompt: input.EmotionPrompt,
		IsPreview:     input.IsPreview,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "voice-over generation failed", "voiceover_failed", err, "voice", input.VoiceName)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio_base64": audio})
}
