package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret-key-12345678901234567890123456789012"
	testIssuer   = "bucovinastay-auth"
	testAudience = "bucovinastay-api"
)

type testEnv struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      testSecret,
		JWTIssuer:      testIssuer,
		JWTAudience:    testAudience,
		Env:            "test",
		AllowedOrigins: "http://localhost:5173",
	}
	for _, m := range mutate {
		m(cfg)
	}

	db := testutil.NewSQLiteDB(t)
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	// Registered after the database cleanup, so it runs first.
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.recorder.Close(ctx)
	})

	return &testEnv{srv: srv, app: srv.newApp(), db: db}
}

func signToken(t *testing.T, sub string, issuer, audience string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": "guest",
		"iss":  issuer,
		"aud":  audience,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	str, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return str
}

func tokenFor(t *testing.T, userID uint) string {
	return signToken(t, strconv.FormatUint(uint64(userID), 10), testIssuer, testAudience, time.Hour)
}

// call performs a request and decodes a JSON body into out when out is non-nil.
func (e *testEnv) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp.StatusCode
}

func (e *testEnv) user(t *testing.T, name string, role models.Role) (*models.User, string) {
	t.Helper()
	u := testutil.CreateUser(t, e.db, name, role)
	return u, tokenFor(t, u.ID)
}

func listingBody() map[string]any {
	return map[string]any{
		"title":           "Pensiunea Bucovina Veche",
		"type":            "pensiune",
		"city":            "Gura Humorului",
		"price_per_night": 380,
		"capacity":        8,
		"facilities":      []string{"wifi", "breakfast"},
	}
}

func TestNewServerWithDeps_RequiresDatabase(t *testing.T) {
	_, err := NewServerWithDeps(&config.Config{}, nil, nil)
	assert.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestServer(t)

	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/health/live", "", nil, nil))

	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/health/ready", "", nil, &ready))
	assert.Equal(t, "healthy", ready.Status)
	assert.Equal(t, "disabled", ready.Checks["redis"])
}

func TestAuthRequired(t *testing.T) {
	env := newTestServer(t)
	guest, _ := env.user(t, "Ana Popescu", models.RoleGuest)
	disabled, disabledToken := env.user(t, "Ion Blocat", models.RoleGuest)
	require.NoError(t, env.db.Model(disabled).Update("disabled", true).Error)

	sub := strconv.FormatUint(uint64(guest.ID), 10)
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "valid", token: tokenFor(t, guest.ID), want: http.StatusOK},
		{name: "expired", token: signToken(t, sub, testIssuer, testAudience, -time.Hour), want: http.StatusUnauthorized},
		{name: "wrong issuer", token: signToken(t, sub, "someone-else", testAudience, time.Hour), want: http.StatusUnauthorized},
		{name: "wrong audience", token: signToken(t, sub, testIssuer, "other-client", time.Hour), want: http.StatusUnauthorized},
		{name: "non numeric subject", token: signToken(t, "abc", testIssuer, testAudience, time.Hour), want: http.StatusUnauthorized},
		{name: "unknown user", token: tokenFor(t, 999999), want: http.StatusUnauthorized},
		{name: "disabled user", token: disabledToken, want: http.StatusForbidden},
		{name: "missing", want: http.StatusUnauthorized},
		{name: "malformed header", header: "BearerTokenOnly", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/listings/1/reviews/me", nil)
			switch {
			case tt.header != "":
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			case tt.token != "":
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tt.token)
			}
			resp, err := env.app.Test(req, -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			if tt.want == http.StatusOK {
				// Authenticated; the listing itself does not exist.
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
				return
			}
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRoleGuards(t *testing.T) {
	env := newTestServer(t)
	_, guestToken := env.user(t, "Oaspete", models.RoleGuest)
	_, hostToken := env.user(t, "Gazda", models.RoleHost)

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodGet, "/api/host/listings", guestToken, nil, &errBody))
	assert.Equal(t, "Host account required", errBody.Error)

	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/host/listings", hostToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodGet, "/api/admin/listings", hostToken, nil, nil))
}

func TestBecomeHost(t *testing.T) {
	env := newTestServer(t)
	_, token := env.user(t, "Elena Rusu", models.RoleGuest)

	var user models.User
	assert.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/me/become-host", token, nil, &user))
	assert.Equal(t, models.RoleHost, user.Role)

	// The database role is read on every request, so the same token now passes HostRequired.
	var profile models.HostProfile
	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/host/profile", token, nil, &profile))
	assert.Equal(t, user.ID, profile.UserID)
}

func TestModerationFlow(t *testing.T) {
	env := newTestServer(t)
	host, hostToken := env.user(t, "Maria Gazda", models.RoleHost)
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)
	_, guestToken := env.user(t, "Oaspete", models.RoleGuest)

	var created models.Listing
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/host/listings", hostToken, listingBody(), &created))
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.Equal(t, host.ID, created.HostID)
	id := strconv.FormatUint(uint64(created.ID), 10)

	// Drafts are invisible to the public and to other users.
	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/listings/"+id, "", nil, nil))
	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/listings/"+id, guestToken, nil, nil))
	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+id, hostToken, nil, nil))

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusConflict, env.call(t, http.MethodPost, "/api/admin/listings/"+id+"/approve", adminToken, nil, &errBody))
	assert.Equal(t, models.CodeInvalidTransition, errBody.Code)

	var submitted models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/host/listings/"+id+"/submit", hostToken, nil, &submitted))
	assert.Equal(t, models.StatusPending, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	var queue listResponse[models.Listing]
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/listings?status=pending", adminToken, nil, &queue))
	require.Len(t, queue.Items, 1)
	assert.Equal(t, created.ID, queue.Items[0].ID)

	var approved models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/admin/listings/"+id+"/approve", adminToken, nil, &approved))
	assert.Equal(t, models.StatusLive, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	errBody = models.ErrorResponse{}
	assert.Equal(t, http.StatusConflict, env.call(t, http.MethodPost, "/api/admin/listings/"+id+"/approve", adminToken, nil, &errBody))
	assert.Equal(t, models.CodeInvalidTransition, errBody.Code)

	var public listResponse[models.Listing]
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings?city=gura%20humorului", "", nil, &public))
	assert.Equal(t, int64(1), public.Total)

	var paused models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/host/listings/"+id+"/toggle-pause", hostToken, nil, &paused))
	assert.Equal(t, models.StatusPaused, paused.Status)
	assert.NotNil(t, paused.PausedAt)

	var resumed models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/host/listings/"+id+"/toggle-pause", hostToken, nil, &resumed))
	assert.Equal(t, models.StatusLive, resumed.Status)
	assert.Nil(t, resumed.PausedAt)

	// Only pending listings can be rejected.
	errBody = models.ErrorResponse{}
	assert.Equal(t, http.StatusConflict, env.call(t, http.MethodPost, "/api/admin/listings/"+id+"/reject", adminToken,
		rejectRequest{Reason: "Fotografiile nu corespund proprietății."}, &errBody))
	assert.Equal(t, models.CodeInvalidTransition, errBody.Code)

	var second models.Listing
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/host/listings", hostToken, listingBody(), &second))
	secondID := strconv.FormatUint(uint64(second.ID), 10)
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/host/listings/"+secondID+"/submit", hostToken, nil, nil))

	errBody = models.ErrorResponse{}
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/admin/listings/"+secondID+"/reject", adminToken,
		rejectRequest{Reason: "scurt"}, &errBody))
	assert.Equal(t, models.CodeValidation, errBody.Code)

	var rejected models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/admin/listings/"+secondID+"/reject", adminToken,
		rejectRequest{Reason: "Fotografiile nu corespund proprietății."}, &rejected))
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Equal(t, "Fotografiile nu corespund proprietății.", rejected.RejectionReason)

	// Host activity is written asynchronously by the recorder.
	require.Eventually(t, func() bool {
		var page struct {
			Total int64 `json:"total"`
		}
		return env.call(t, http.MethodGet, "/api/host/activity?range=24h", hostToken, nil, &page) == http.StatusOK &&
			page.Total >= 8
	}, 3*time.Second, 20*time.Millisecond)
}

func TestHostCannotEditForeignListing(t *testing.T) {
	env := newTestServer(t)
	owner, _ := env.user(t, "Proprietar", models.RoleHost)
	_, otherToken := env.user(t, "Alt Gazda", models.RoleHost)
	l := testutil.CreateListing(t, env.db, owner.ID, models.StatusDraft)
	id := strconv.FormatUint(uint64(l.ID), 10)

	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodPatch, "/api/host/listings/"+id, otherToken,
		map[string]any{"title": "Furat"}, nil))
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodPost, "/api/host/listings/"+id+"/submit", otherToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodDelete, "/api/host/listings/"+id, otherToken, nil, nil))
}

func TestReviewFlow(t *testing.T) {
	env := newTestServer(t)
	host, hostToken := env.user(t, "Gazda Recenzii", models.RoleHost)
	_, guestToken := env.user(t, "Turist", models.RoleGuest)
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)
	l := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	id := strconv.FormatUint(uint64(l.ID), 10)

	body := map[string]any{"rating": 5, "comment": "Priveliște superbă spre Rarău."}

	var review models.Review
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/listings/"+id+"/reviews", guestToken, body, &review))
	assert.Equal(t, models.ReviewVisible, review.Status)

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusConflict, env.call(t, http.MethodPost, "/api/listings/"+id+"/reviews", guestToken, body, &errBody))
	assert.Equal(t, models.CodeDuplicate, errBody.Code)

	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodPost, "/api/listings/"+id+"/reviews", hostToken, body, nil))
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/listings/"+id+"/reviews", guestToken,
		map[string]any{"rating": 6, "comment": "prea bine"}, nil))

	var listing models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+id, "", nil, &listing))
	assert.Equal(t, 1, listing.ReviewsCount)
	assert.InDelta(t, 5.0, listing.RatingAvg, 0.001)

	var mine models.Review
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+id+"/reviews/me", guestToken, nil, &mine))
	assert.Equal(t, review.ID, mine.ID)

	reviewID := strconv.FormatUint(uint64(review.ID), 10)
	var hidden models.Review
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPatch, "/api/admin/reviews/"+reviewID, adminToken,
		map[string]any{"status": "hidden"}, &hidden))
	assert.Equal(t, models.ReviewHidden, hidden.Status)

	var visible listResponse[models.Review]
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+id+"/reviews", "", nil, &visible))
	assert.Empty(t, visible.Items)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+id, "", nil, &listing))
	assert.Equal(t, 0, listing.ReviewsCount)

	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodDelete, "/api/reviews/"+reviewID, guestToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/listings/"+id+"/reviews/me", guestToken, nil, nil))
}

func TestMaintenanceMode(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)
	_, hostToken := env.user(t, "Gazda", models.RoleHost)

	patch := map[string]any{"branding": map[string]any{"maintenance_mode": true}}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPut, "/api/admin/settings", adminToken, patch, nil))

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusServiceUnavailable, env.call(t, http.MethodPost, "/api/host/listings", hostToken, listingBody(), &errBody))
	assert.Equal(t, "MAINTENANCE", errBody.Code)
	assert.Equal(t, defaultMaintenanceMessage, errBody.Error)

	// Reads keep working.
	assert.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings", "", nil, nil))

	// Admins can still write, including switching maintenance off.
	off := map[string]any{"branding": map[string]any{"maintenance_mode": false}}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPut, "/api/admin/settings", adminToken, off, nil))
	assert.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/host/listings", hostToken, listingBody(), nil))
}

func TestAdminSettings(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)

	var settings models.AdminSettings
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/settings", adminToken, nil, &settings))
	assert.Equal(t, 10, settings.Moderation.MinRejectionReasonLength)

	patch := map[string]any{"moderation": map[string]any{"min_rejection_reason_length": 25}}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPut, "/api/admin/settings", adminToken, patch, &settings))
	assert.Equal(t, 25, settings.Moderation.MinRejectionReasonLength)
	assert.True(t, settings.Moderation.AllowAdminReject, "omitted fields keep their value")

	bad := map[string]any{"moderation": map[string]any{"min_rejection_reason_length": -1}}
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPut, "/api/admin/settings", adminToken, bad, nil))
}

func TestAdminUsers(t *testing.T) {
	env := newTestServer(t)
	admin, adminToken := env.user(t, "Admin", models.RoleAdmin)
	guest, guestToken := env.user(t, "Oaspete", models.RoleGuest)

	var users listResponse[models.User]
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/users?role=guest", adminToken, nil, &users))
	require.Len(t, users.Items, 1)
	assert.Equal(t, guest.ID, users.Items[0].ID)

	guestID := strconv.FormatUint(uint64(guest.ID), 10)
	var patched models.User
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPatch, "/api/admin/users/"+guestID, adminToken,
		map[string]any{"disabled": true}, &patched))
	assert.True(t, patched.Disabled)
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodGet, "/api/listings/1/reviews/me", guestToken, nil, nil))

	adminID := strconv.FormatUint(uint64(admin.ID), 10)
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodPatch, "/api/admin/users/"+adminID, adminToken,
		map[string]any{"role": "guest"}, nil))
}

func TestFeatureFlagsEndpoint(t *testing.T) {
	env := newTestServer(t, func(cfg *config.Config) {
		cfg.FeatureFlags = "guest_tracking=off,activity_ws=50%"
	})
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)

	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated []map[string]any  `json:"evaluated"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/feature-flags", adminToken, nil, &body))
	assert.Equal(t, "off", body.Raw["guest_tracking"])
	assert.Equal(t, "50%", body.Raw["activity_ws"])
	assert.Len(t, body.Evaluated, 3)

	var forHost struct {
		Subject uint `json:"subject"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/feature-flags?subject=42", adminToken, nil, &forHost))
	assert.Equal(t, uint(42), forHost.Subject)
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/api/admin/feature-flags?subject=abc", adminToken, nil, nil))
}

func TestTrackListingEvent(t *testing.T) {
	env := newTestServer(t)
	host, hostToken := env.user(t, "Gazda", models.RoleHost)
	live := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	draft := testutil.CreateListing(t, env.db, host.ID, models.StatusDraft)
	liveID := strconv.FormatUint(uint64(live.ID), 10)

	assert.Equal(t, http.StatusAccepted, env.call(t, http.MethodPost, "/api/listings/"+liveID+"/events", "",
		map[string]any{"type": "click_contact_phone"}, nil))
	assert.Equal(t, http.StatusAccepted, env.call(t, http.MethodPost, "/api/listings/"+liveID+"/events", "",
		map[string]any{"type": "impression", "meta": nil}, nil))
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/listings/"+liveID+"/events", "",
		map[string]any{"type": "property_published"}, nil))
	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodPost,
		"/api/listings/"+strconv.FormatUint(uint64(draft.ID), 10)+"/events", "",
		map[string]any{"type": "impression"}, nil))

	require.Eventually(t, func() bool {
		var page struct {
			Total int64              `json:"total"`
			KPI   models.ActivityKPI `json:"kpi"`
		}
		ok := env.call(t, http.MethodGet, "/api/host/activity", hostToken, nil, &page) == http.StatusOK
		return ok && page.KPI.Impressions == 1 && page.KPI.Clicks == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestTrackListingEvent_RejectsClientMeta(t *testing.T) {
	env := newTestServer(t)
	host, _ := env.user(t, "Gazda", models.RoleHost)
	live := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	path := "/api/listings/" + strconv.FormatUint(uint64(live.ID), 10) + "/events"

	bodies := map[string]map[string]any{
		"large blob": {"type": "impression", "meta": map[string]any{"blob": strings.Repeat("x", 2<<20)}},
		"nested":     {"type": "click_share", "meta": map[string]any{"a": map[string]any{"b": []int{1, 2, 3}}}},
		"scalar":     {"type": "impression", "meta": map[string]any{"source": "search"}},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var resp models.ErrorResponse
			require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, path, "", body, &resp))
			assert.Equal(t, models.CodeValidation, resp.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"type":"click_gallery"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderUserAgent, strings.Repeat("Mozilla/5.0 ", 20))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var rows []models.HostActivityEvent
	require.Eventually(t, func() bool {
		require.NoError(t, env.db.Where("host_id = ?", host.ID).Find(&rows).Error)
		return len(rows) == 1
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, models.ActivityClickGallery, rows[0].Type)
	require.Len(t, rows[0].Meta, 1)
	ua, _ := rows[0].Meta["ua"].(string)
	assert.Len(t, ua, 120)
	assert.True(t, strings.HasPrefix(ua, "Mozilla/5.0"))
}

func TestTrackImpressions(t *testing.T) {
	env := newTestServer(t)
	host, hostToken := env.user(t, "Gazda", models.RoleHost)
	a := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	b := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	draft := testutil.CreateListing(t, env.db, host.ID, models.StatusDraft)

	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost, "/api/listings/impressions", "",
		map[string]any{"listing_ids": []uint{a.ID, b.ID, a.ID, draft.ID, 12345}}, nil))
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/listings/impressions", "",
		map[string]any{"listing_ids": "all"}, nil))

	require.Eventually(t, func() bool {
		var page struct {
			KPI models.ActivityKPI `json:"kpi"`
		}
		ok := env.call(t, http.MethodGet, "/api/host/activity", hostToken, nil, &page) == http.StatusOK
		return ok && page.KPI.Impressions == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestTrackListingEvent_FlagOff(t *testing.T) {
	env := newTestServer(t, func(cfg *config.Config) {
		cfg.FeatureFlags = "guest_tracking=off"
	})
	host, _ := env.user(t, "Gazda", models.RoleHost)
	live := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)

	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost,
		"/api/listings/"+strconv.FormatUint(uint64(live.ID), 10)+"/events", "",
		map[string]any{"type": "impression"}, nil))
}

func TestActivityWebSocket_UnavailableWithoutRedis(t *testing.T) {
	env := newTestServer(t)
	_, hostToken := env.user(t, "Gazda", models.RoleHost)

	assert.Equal(t, http.StatusServiceUnavailable, env.call(t, http.MethodGet, "/api/ws/activity", hostToken, nil, nil))
}

func TestActivityWebSocket_FlagOff(t *testing.T) {
	env := newTestServer(t, func(cfg *config.Config) {
		cfg.FeatureFlags = "activity_ws=off"
	})
	_, hostToken := env.user(t, "Gazda", models.RoleHost)

	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/ws/activity", hostToken, nil, nil))
}

func TestHostProfileEndpoints(t *testing.T) {
	env := newTestServer(t)
	host, hostToken := env.user(t, "Maria Gazda", models.RoleHost)

	patch := map[string]any{"display_name": "Maria din Sucevița", "languages": []string{"ro", "en", "ro"}}
	var profile models.HostProfile
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPatch, "/api/host/profile", hostToken, patch, &profile))
	assert.Equal(t, "Maria din Sucevița", profile.DisplayName)

	var public map[string]any
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet,
		"/api/hosts/"+strconv.FormatUint(uint64(host.ID), 10), "", nil, &public))
	assert.Equal(t, "Maria din Sucevița", public["display_name"])

	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/hosts/424242", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/api/hosts/abc", "", nil, nil))
}

func TestHostSettingsEndpoints(t *testing.T) {
	env := newTestServer(t)
	_, hostToken := env.user(t, "Gazda Setări", models.RoleHost)
	_, guestToken := env.user(t, "Turist", models.RoleGuest)

	var settings models.HostSettings
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/host/settings", hostToken, nil, &settings))
	assert.True(t, settings.Notifications.Messages)
	assert.Equal(t, "RON", settings.Preferences.Currency)
	assert.Equal(t, "Europe/Bucharest", settings.Preferences.Timezone)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPatch, "/api/host/settings", hostToken, map[string]any{
		"notifications": map[string]any{"weekly_report": true},
		"preferences":   map[string]any{"currency": "EUR"},
	}, &settings))
	assert.True(t, settings.Notifications.WeeklyReport)
	assert.True(t, settings.Notifications.Messages, "untouched fields keep their value")
	assert.Equal(t, "EUR", settings.Preferences.Currency)

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPatch, "/api/host/settings", hostToken,
		map[string]any{"preferences": map[string]any{"timezone": "Mars/Olympus"}}, &errBody))
	assert.Equal(t, models.CodeValidation, errBody.Code)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/host/settings", hostToken, nil, &settings))
	assert.Equal(t, "Europe/Bucharest", settings.Preferences.Timezone)
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodGet, "/api/host/settings", guestToken, nil, nil))
}

func TestAdminReviewList(t *testing.T) {
	env := newTestServer(t)
	host, _ := env.user(t, "Gazda", models.RoleHost)
	_, adminToken := env.user(t, "Admin", models.RoleAdmin)
	_, hostToken := env.user(t, "Alt Gazda", models.RoleHost)
	l := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	path := "/api/listings/" + strconv.FormatUint(uint64(l.ID), 10) + "/reviews"

	author, authorToken := env.user(t, "Elena Popescu", models.RoleGuest)
	_, otherToken := env.user(t, "Mihai", models.RoleGuest)
	var kept, flagged models.Review
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, path, authorToken,
		map[string]any{"rating": 5, "comment": "Mic dejun excelent."}, &kept))
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, path, otherToken,
		map[string]any{"rating": 1, "comment": "Vizitați site-ul meu!"}, &flagged))

	var page service.ReviewPage
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/reviews?sort=rating_asc", adminToken, nil, &page))
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, flagged.ID, page.Items[0].ID)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/reviews?q="+url.QueryEscape(author.Email), adminToken, nil, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, kept.ID, page.Items[0].ID)
	require.NotNil(t, page.Items[0].User)
	assert.Equal(t, author.Email, page.Items[0].User.Email)
	require.NotNil(t, page.Items[0].Listing)
	assert.Equal(t, l.Title, page.Items[0].Listing.Title)

	var errBody models.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/api/admin/reviews?rating=9", adminToken, nil, &errBody))
	assert.Equal(t, models.CodeValidation, errBody.Code)
	assert.Equal(t, http.StatusForbidden, env.call(t, http.MethodGet, "/api/admin/reviews", hostToken, nil, nil))

	flaggedID := strconv.FormatUint(uint64(flagged.ID), 10)
	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodDelete, "/api/admin/reviews/"+flaggedID, adminToken, nil, nil))
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/admin/reviews?rating=1", adminToken, nil, &page))
	assert.Empty(t, page.Items)

	var listing models.Listing
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/listings/"+strconv.FormatUint(uint64(l.ID), 10), "", nil, &listing))
	assert.Equal(t, 1, listing.ReviewsCount)
}
