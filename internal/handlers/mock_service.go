package handlers

import (
	"context"
	"net/http"

	"verbatim/internal/models"
	"verbatim/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpToken string
	signUpErr   error
	loginUser   *models.User
	loginToken  string
	loginErr    error
	currentUser *models.User
	currentErr  error

	lastSignUpEmail string
	lastLoginEmail  string
	lastToken       string
}

func (m *mockAuth) SignUp(ctx context.Context, email, password, name string) (*models.User, string, error) {
	m.lastSignUpEmail = email
	return m.signUpUser, m.signUpToken, m.signUpErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(accessToken string) (*service.TokenClaims, error) {
	m.lastToken = accessToken
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return &service.TokenClaims{}, nil
}

func (m *mockAuth) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	m.lastToken = accessToken
	return m.currentUser, m.currentErr
}

type mockProjects struct {
	createProject *models.Project
	createErr     error
	listResp      []models.Project
	listErr       error
	getProject    *models.Project
	getErr        error
	updateProject *models.Project
	updateErr     error
	deleteErr     error
	transResp     []models.Transcription
	transErr      error

	lastOwnerID   string
	lastProjectID string
	lastPatch     service.ProjectPatch
}

func (m *mockProjects) Create(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	m.lastOwnerID = ownerID
	return m.createProject, m.createErr
}

func (m *mockProjects) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	m.lastOwnerID = ownerID
	return m.listResp, m.listErr
}

func (m *mockProjects) Get(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	m.lastOwnerID, m.lastProjectID = ownerID, projectID
	return m.getProject, m.getErr
}

func (m *mockProjects) Update(ctx context.Context, ownerID, projectID string, patch service.ProjectPatch) (*models.Project, error) {
	m.lastOwnerID, m.lastProjectID, m.lastPatch = ownerID, projectID, patch
	return m.updateProject, m.updateErr
}

func (m *mockProjects) Delete(ctx context.Context, ownerID, projectID string) error {
	m.lastOwnerID, m.lastProjectID = ownerID, projectID
	return m.deleteErr
}

func (m *mockProjects) Transcriptions(ctx context.Context, ownerID, projectID string) ([]models.Transcription, error) {
	m.lastOwnerID, m.lastProjectID = ownerID, projectID
	return m.transResp, m.transErr
}

type mockMedia struct {
	transcribeResp *service.TranscribeResult
	transcribeErr  error
	translateResp  string
	translateErr   error
	voiceoverResp  string
	voiceoverErr   error

	lastTranscribe service.TranscribeInput
	lastText       string
	lastTarget     string
	lastVoiceover  service.VoiceoverInput
}

func (m *mockMedia) Transcribe(ctx context.Context, user *models.User, in service.TranscribeInput) (*service.TranscribeResult, error) {
	m.lastTranscribe = in
	return m.transcribeResp, m.transcribeErr
}

func (m *mockMedia) Translate(ctx context.Context, user *models.User, text, targetCode string) (string, error) {
	m.lastText, m.lastTarget = text, targetCode
	return m.translateResp, m.translateErr
}

func (m *mockMedia) Voiceover(ctx context.Context, user *models.User, in service.VoiceoverInput) (string, error) {
	m.lastVoiceover = in
	return m.voiceoverResp, m.voiceoverErr
}

type mockActivity struct {
	resp []models.ActivityEntry
	err  error
}

func (m *mockActivity) Recent(ctx context.Context, email string, limit int) ([]models.ActivityEntry, error) {
	return m.resp, m.err
}

// ---- Shared test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// guardUser is the identity mocks resolve for a valid bearer token.
var guardUser = &models.User{ID: "u-1", Email: "a@x.com", PlanType: models.PlanFree}

func withBearer(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
