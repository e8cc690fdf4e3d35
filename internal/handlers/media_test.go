package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"verbatim/internal/service"
)

func mediaService(media *mockMedia) *service.Service {
	return &service.Service{
		Authorization: &mockAuth{currentUser: guardUser},
		Media:         media,
	}
}

// buildAudioUpload creates a multipart body with an upload part carrying an
// explicit content type.
func buildAudioUpload(t *testing.T, fileName, contentType string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("fake-audio-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestTranscribeHandler_Success(t *testing.T) {
	media := &mockMedia{
		transcribeResp: &service.TranscribeResult{FullText: "text", SRTContent: "srt"},
	}
	r := newTestRouter(mediaService(media))

	body, contentType := buildAudioUpload(t, "clip.mp3", "audio/mpeg", map[string]string{
		"language_code": "en-US",
		"project_id":    "p-1",
	})
	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/transcribe", body), "tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		FullText   string `json:"full_text"`
		SRTContent string `json:"srt_content"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.FullText != "text" || resp.SRTContent != "srt" {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}

	in := media.lastTranscribe
	if in.FileName != "clip.mp3" || in.ContentType != "audio/mpeg" || in.LanguageCode != "en-US" || in.ProjectID != "p-1" {
		t.Fatalf("unexpected input forwarded to service: %+v", in)
	}
	if len(in.Audio) == 0 {
		t.Fatalf("upload bytes not forwarded")
	}
}

func TestTranscribeHandler_NonAudioRejected(t *testing.T) {
	media := &mockMedia{transcribeErr: service.ErrUnsupportedMedia}
	r := newTestRouter(mediaService(media))

	body, contentType := buildAudioUpload(t, "notes.txt", "text/plain", map[string]string{
		"language_code": "en-US",
	})
	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/transcribe", body), "tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-audio upload, got %d (body=%s)", w.Code, w.Body.String())
	}
}

func TestTranscribeHandler_MissingParts(t *testing.T) {
	r := newTestRouter(mediaService(&mockMedia{}))

	// missing language_code
	body, contentType := buildAudioUpload(t, "clip.mp3", "audio/mpeg", nil)
	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/transcribe", body), "tok")
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing language_code: status=%d", w.Code)
	}

	// missing file
	form := &bytes.Buffer{}
	writer := multipart.NewWriter(form)
	_ = writer.WriteField("language_code", "en-US")
	_ = writer.Close()
	w = httptest.NewRecorder()
	req = withBearer(httptest.NewRequest(http.MethodPost, "/transcribe", form), "tok")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file: status=%d", w.Code)
	}
}

func TestTranslateHandler(t *testing.T) {
	media := &mockMedia{translateResp: "bonjour"}
	r := newTestRouter(mediaService(media))

	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/translate",
		bytes.NewBufferString(`{"text":"hello","target_code":"fr"}`)), "tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		TranslatedText string `json:"translated_text"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.TranslatedText != "bonjour" {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if media.lastText != "hello" || media.lastTarget != "fr" {
		t.Fatalf("service saw (%q, %q)", media.lastText, media.lastTarget)
	}
}

func TestTranslateHandler_ProcessingError(t *testing.T) {
	media := &mockMedia{translateErr: errStoreDown}
	r := newTestRouter(mediaService(media))

	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/translate",
		bytes.NewBufferString(`{"text":"hello","target_code":"fr"}`)), "tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte(errStoreDown.Error())) {
		t.Fatalf("raw processing error leaked: %s", w.Body.String())
	}
}

func TestVoiceoverHandler(t *testing.T) {
	media := &mockMedia{voiceoverResp: "UExBQ0VIT0xERVI="}
	r := newTestRouter(mediaService(media))

	w := httptest.NewRecorder()
	req := withBearer(httptest.NewRequest(http.MethodPost, "/voiceover",
		bytes.NewBufferString(`{"text":"hello","voice_name":"aria","emotion_prompt":"calm","is_preview":true}`)), "tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		AudioBase64 string `json:"audio_base64"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.AudioBase64 != "UExBQ0VIT0xERVI=" {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if media.lastVoiceover.VoiceName != "aria" || !media.lastVoiceover.IsPreview {
		t.Fatalf("service saw %+v", media.lastVoiceover)
	}
}

func TestMediaRoutes_RequireAuth(t *testing.T) {
	r := newTestRouter(mediaService(&mockMedia{}))

	for _, path := range []string{"/transcribe", "/translate", "/voiceover"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without a token, got %d", path, w.Code)
		}
	}
}
