package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hope4ever-backend/internal/config"
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/middleware"
	"hope4ever-backend/internal/repository/memory"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

type harness struct {
	engine *gin.Engine
	store  *memory.Store
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "Hope4Ever API"},
		Server: config.ServerConfig{APIPrefix: "/api/v1"},
		Auth:   config.AuthConfig{SelfRegisterRoles: []string{"donor", "hospital_contact"}},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Login:  config.LoginConfig{RateLimit: 10, RateWindow: time.Minute},
	}
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()

	tokens, err := utils.NewTokenManager(utils.TokenConfig{Secret: "router-test-secret", Algorithm: "HS256", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	cfg := testConfig()
	store := memory.NewStore()
	svc := service.NewService(cfg, store.Repositories(), utils.NewPasswordHasherWithCost(4), tokens, nil, zap.NewNop())

	return &harness{engine: New(cfg, svc, opts, zap.NewNop()), store: store}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode %s: %v", env.Data, err)
	}
	return v
}

// signup registers and logs in, returning the profile and access token.
func (h *harness) signup(t *testing.T, email string, roleID *uint) (dto.UserProfile, string) {
	t.Helper()

	rec, env := h.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "password123", "role_id": roleID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, rec.Code, rec.Body)
	}
	profile := decode[dto.UserProfile](t, env)

	rec, env = h.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body)
	}
	return profile, decode[dto.TokenResponse](t, env).AccessToken
}

func uintPtr(v uint) *uint { return &v }

func TestEndToEndFundraisingFlow(t *testing.T) {
	h := newHarness(t, Options{})

	// donor identity
	_, donorToken := h.signup(t, "donor@example.com", nil)
	rec, env := h.do(t, http.MethodGet, "/auth/me", donorToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d %s", rec.Code, rec.Body)
	}
	me := decode[dto.UserProfile](t, env)
	if me.RoleName == nil || *me.RoleName != "donor" {
		t.Fatalf("role_name = %v, want donor", me.RoleName)
	}

	// hospital contact creates a hospital and a campaign
	_, contactToken := h.signup(t, "contact@example.com", uintPtr(3))
	rec, env = h.do(t, http.MethodPost, "/hospitals", contactToken, gin.H{
		"name": "RS Harapan", "city": "Jakarta", "latitude": -6.2, "longitude": 106.8,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create hospital: %d %s", rec.Code, rec.Body)
	}
	hospital := decode[dto.HospitalResponse](t, env)

	rec, env = h.do(t, http.MethodPost, "/campaigns", contactToken, gin.H{"title": "Older Appeal"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create older campaign: %d %s", rec.Code, rec.Body)
	}
	older := decode[dto.CampaignDetail](t, env)
	if rec, _ := h.do(t, http.MethodPatch, "/campaigns/"+older.Slug, contactToken, gin.H{"status": "published"}); rec.Code != http.StatusOK {
		t.Fatalf("publish older: %d %s", rec.Code, rec.Body)
	}

	rec, env = h.do(t, http.MethodPost, "/campaigns", contactToken, gin.H{
		"title": "Help Ana Walk Again", "hospital_id": hospital.ID, "target_amount": "2500000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: %d %s", rec.Code, rec.Body)
	}
	created := decode[dto.CampaignDetail](t, env)

	rec, env = h.do(t, http.MethodGet, "/campaigns/"+created.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get campaign: %d %s", rec.Code, rec.Body)
	}
	got := decode[dto.CampaignDetail](t, env)
	if got.Status != "draft" || got.AmountRaised != "0.00" || got.TargetAmount != "2500000.00" {
		t.Errorf("campaign = %+v", got)
	}

	// publish and check ordering
	time.Sleep(5 * time.Millisecond)
	rec, _ = h.do(t, http.MethodPatch, "/campaigns/"+created.UUID, contactToken, gin.H{"status": "published"})
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: %d %s", rec.Code, rec.Body)
	}

	rec, env = h.do(t, http.MethodGet, "/campaigns", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rec.Code, rec.Body)
	}
	list := decode[[]dto.CampaignSummary](t, env)
	if len(list) != 2 || list[0].ID != created.ID || list[1].ID != older.ID {
		t.Errorf("list order = %+v", list)
	}

	// search returns the same projection
	rec, env = h.do(t, http.MethodGet, "/campaigns?q=walk", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body)
	}
	found := decode[[]dto.CampaignSummary](t, env)
	if len(found) != 1 || found[0].Slug != created.Slug || found[0].TargetAmount != "2500000.00" {
		t.Errorf("search = %+v", found)
	}

	// donor follows once
	rec, _ = h.do(t, http.MethodPost, "/campaigns/"+created.Slug+"/followers", donorToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("follow: %d %s", rec.Code, rec.Body)
	}
	rec, env = h.do(t, http.MethodPost, "/campaigns/"+created.Slug+"/followers", donorToken, nil)
	if rec.Code != http.StatusConflict || env.Code != "already_following" {
		t.Errorf("second follow: %d %s", rec.Code, rec.Body)
	}
	rec, env = h.do(t, http.MethodGet, "/campaigns/"+created.Slug+"/followers", "", nil)
	if rec.Code != http.StatusOK || len(decode[[]dto.CampaignFollowerResponse](t, env)) != 1 {
		t.Errorf("followers: %d %s", rec.Code, rec.Body)
	}
}

func TestIdentityFailuresShareOneMessage(t *testing.T) {
	h := newHarness(t, Options{})
	h.signup(t, "donor@example.com", nil)

	responses := []*httptest.ResponseRecorder{}
	rec, _ := h.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "donor@example.com", "password": "wrong-password"})
	responses = append(responses, rec)
	rec, _ = h.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ghost@example.com", "password": "password123"})
	responses = append(responses, rec)
	rec, _ = h.do(t, http.MethodGet, "/auth/me", "not-a-token", nil)
	responses = append(responses, rec)
	rec, _ = h.do(t, http.MethodGet, "/auth/me", "", nil)
	responses = append(responses, rec)
	rec, _ = h.do(t, http.MethodPost, "/campaigns", "", gin.H{"title": "x"})
	responses = append(responses, rec)

	for i, rec := range responses {
		var env envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		if rec.Code != http.StatusUnauthorized || env.Error != middleware.UnauthenticatedMessage {
			t.Errorf("response %d: %d %s", i, rec.Code, rec.Body)
		}
	}
}

func TestRoleGates(t *testing.T) {
	h := newHarness(t, Options{})
	_, donorToken := h.signup(t, "donor@example.com", nil)
	_, contactToken := h.signup(t, "contact@example.com", uintPtr(3))
	admin, adminToken := h.signup(t, "admin@example.com", nil)
	h.store.SetRole(admin.ID, 2)

	rec, env := h.do(t, http.MethodPost, "/campaigns", donorToken, gin.H{"title": "Not allowed"})
	if rec.Code != http.StatusForbidden || env.Code != "forbidden" {
		t.Errorf("donor create: %d %s", rec.Code, rec.Body)
	}

	rec, env = h.do(t, http.MethodPost, "/campaigns", contactToken, gin.H{"title": "Allowed"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact create: %d %s", rec.Code, rec.Body)
	}
	campaign := decode[dto.CampaignDetail](t, env)

	if rec, _ := h.do(t, http.MethodDelete, "/campaigns/"+campaign.Slug, contactToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("contact delete: %d", rec.Code)
	}
	if rec, _ := h.do(t, http.MethodDelete, "/campaigns/"+campaign.Slug, adminToken, nil); rec.Code != http.StatusOK {
		t.Errorf("admin delete: %d %s", rec.Code, rec.Body)
	}
	if rec, _ := h.do(t, http.MethodGet, "/campaigns/"+campaign.Slug, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get deleted: %d", rec.Code)
	}
	if rec, _ := h.do(t, http.MethodGet, "/campaigns/"+campaign.Slug+"/images", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("images of deleted: %d", rec.Code)
	}

	rec, env = h.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "sneaky@example.com", "password": "password123", "role_id": 1})
	if rec.Code != http.StatusForbidden {
		t.Errorf("superadmin self-registration: %d %s", rec.Code, rec.Body)
	}
	rec, env = h.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "lost@example.com", "password": "password123", "role_id": 42})
	if rec.Code != http.StatusBadRequest || env.Code != "invalid_role" {
		t.Errorf("unknown role: %d %s", rec.Code, rec.Body)
	}
}

func TestRequestValidation(t *testing.T) {
	h := newHarness(t, Options{})
	_, contactToken := h.signup(t, "contact@example.com", uintPtr(3))

	cases := []struct {
		name string
		path string
		body gin.H
	}{
		{"latitude out of range", "/hospitals", gin.H{"name": "RS", "latitude": 91, "longitude": 0}},
		{"missing longitude", "/hospitals", gin.H{"name": "RS", "latitude": 0}},
		{"missing title", "/campaigns", gin.H{"short_description": "x"}},
		{"negative target", "/campaigns", gin.H{"title": "x", "target_amount": "-1"}},
		{"unknown urgency", "/campaigns", gin.H{"title": "x", "urgency": "extreme"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := h.do(t, http.MethodPost, tc.path, contactToken, tc.body)
			if rec.Code != http.StatusBadRequest || env.Code != "validation_error" {
				t.Errorf("got %d %s", rec.Code, rec.Body)
			}
		})
	}

	rec, env := h.do(t, http.MethodGet, "/campaigns?status=archived", "", nil)
	if rec.Code != http.StatusBadRequest || env.Code != "validation_error" {
		t.Errorf("bad status filter: %d %s", rec.Code, rec.Body)
	}

	h.signup(t, "dup@example.com", nil)
	rec, env = h.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "DUP@example.com", "password": "password123"})
	if rec.Code != http.StatusConflict || env.Code != "duplicate_email" {
		t.Errorf("duplicate email: %d %s", rec.Code, rec.Body)
	}

	// 40 runes pass the rune-counting tag but encode to 80 bytes
	rec, env = h.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "accent@example.com", "password": strings.Repeat("é", 40)})
	if rec.Code != http.StatusBadRequest || env.Code != "validation_error" {
		t.Errorf("multibyte password over 72 bytes: %d %s", rec.Code, rec.Body)
	}
}

func TestHospitalLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t, Options{})
	_, contactToken := h.signup(t, "contact@example.com", uintPtr(3))
	admin, adminToken := h.signup(t, "admin@example.com", nil)
	h.store.SetRole(admin.ID, 2)

	body := gin.H{"name": "RS Harapan", "city": "Jakarta", "latitude": -6.2, "longitude": 106.8}
	rec, env := h.do(t, http.MethodPost, "/hospitals", contactToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}
	hospital := decode[dto.HospitalResponse](t, env)

	rec, env = h.do(t, http.MethodPost, "/hospitals", contactToken, body)
	if rec.Code != http.StatusConflict || env.Code != "duplicate_name" {
		t.Errorf("duplicate: %d %s", rec.Code, rec.Body)
	}

	rec, env = h.do(t, http.MethodPatch, "/hospitals/"+hospital.UUID, contactToken, gin.H{"district": "Menteng"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body)
	}
	if updated := decode[dto.HospitalResponse](t, env); updated.City == nil || *updated.City != "Jakarta" {
		t.Errorf("partial update lost city: %+v", updated)
	}

	rec, env = h.do(t, http.MethodGet, "/hospitals?city=Jakarta", "", nil)
	if rec.Code != http.StatusOK || len(decode[[]dto.HospitalResponse](t, env)) != 1 {
		t.Errorf("list: %d %s", rec.Code, rec.Body)
	}

	if rec, _ := h.do(t, http.MethodDelete, "/hospitals/"+hospital.UUID, adminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}
	if rec, _ := h.do(t, http.MethodGet, "/hospitals/"+hospital.UUID, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get deleted: %d", rec.Code)
	}
}

func TestPatchNullClearsNullableColumns(t *testing.T) {
	h := newHarness(t, Options{})
	_, contactToken := h.signup(t, "contact@example.com", uintPtr(3))

	rec, env := h.do(t, http.MethodPost, "/hospitals", contactToken, gin.H{
		"name": "RS Harapan", "city": "Jakarta", "district": "Menteng", "latitude": -6.2, "longitude": 106.8,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create hospital: %d %s", rec.Code, rec.Body)
	}
	hospital := decode[dto.HospitalResponse](t, env)

	rec, env = h.do(t, http.MethodPost, "/campaigns", contactToken, gin.H{
		"title": "Chemo for Rina", "hospital_id": hospital.ID, "city": "Jakarta", "category": "oncology",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: %d %s", rec.Code, rec.Body)
	}
	campaign := decode[dto.CampaignDetail](t, env)

	rec, env = h.do(t, http.MethodPatch, "/campaigns/"+campaign.Slug, contactToken, gin.H{"hospital_id": nil, "city": nil})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch campaign: %d %s", rec.Code, rec.Body)
	}
	rec, env = h.do(t, http.MethodGet, "/campaigns/"+campaign.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get campaign: %d %s", rec.Code, rec.Body)
	}
	got := decode[dto.CampaignDetail](t, env)
	if got.HospitalID != nil || got.City != nil {
		t.Errorf("hospital_id = %v, city = %v, want both cleared", got.HospitalID, got.City)
	}
	if got.Category == nil || *got.Category != "oncology" {
		t.Errorf("absent category changed: %v", got.Category)
	}

	rec, env = h.do(t, http.MethodPatch, "/hospitals/"+hospital.UUID, contactToken, gin.H{"city": nil})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch hospital: %d %s", rec.Code, rec.Body)
	}
	updated := decode[dto.HospitalResponse](t, env)
	if updated.City != nil || updated.District == nil || *updated.District != "Menteng" {
		t.Errorf("hospital after null city = %+v", updated)
	}

	rec, env = h.do(t, http.MethodPatch, "/campaigns/"+campaign.Slug, contactToken, gin.H{"status": nil})
	if rec.Code != http.StatusBadRequest || env.Code != "validation_error" {
		t.Errorf("null status: %d %s", rec.Code, rec.Body)
	}
}

func TestReferenceAndReadOnlyRoutes(t *testing.T) {
	h := newHarness(t, Options{})
	donor, _ := h.signup(t, "donor@example.com", nil)

	paths := []string{"/users/roles", "/scores/campaigns", "/scores/hospitals", "/health"}
	for _, path := range paths {
		if rec, _ := h.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
			t.Errorf("GET %s: %d %s", path, rec.Code, rec.Body)
		}
	}

	rec, env := h.do(t, http.MethodGet, "/donations/by-user/"+donor.UUID, "", nil)
	if rec.Code != http.StatusOK || len(decode[[]dto.DonationSummary](t, env)) != 0 {
		t.Errorf("donations by user: %d %s", rec.Code, rec.Body)
	}
	if rec, _ := h.do(t, http.MethodGet, "/donations/by-campaign/404", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("donations of missing campaign: %d", rec.Code)
	}
}

type denyLimiter struct{ calls int }

func (d *denyLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	d.calls++
	return false, nil
}

func TestLoginRateLimited(t *testing.T) {
	limiter := &denyLimiter{}
	h := newHarness(t, Options{Limiter: limiter})

	rec, _ := h.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "a@example.com", "password": "password123"})
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "60" {
		t.Errorf("got %d retry-after=%q", rec.Code, rec.Header().Get("Retry-After"))
	}
	if limiter.calls != 1 {
		t.Errorf("limiter consulted %d times", limiter.calls)
	}
	if rec, _ := h.do(t, http.MethodGet, "/campaigns", "", nil); rec.Code != http.StatusOK {
		t.Errorf("unthrottled route: %d", rec.Code)
	}
}

func TestCORSAndRequestID(t *testing.T) {
	h := newHarness(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/campaigns", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}
