package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/models"
)

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func login(t *testing.T, engine *gin.Engine, email, password string) (int, map[string]any) {
	t.Helper()
	rec, body := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	return rec.Code, body
}

func mustLogin(t *testing.T, engine *gin.Engine, email, password string) string {
	t.Helper()
	code, body := login(t, engine, email, password)
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%v)", email, code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return token
}

func TestAcademyLifecycleScenario(t *testing.T) {
	engine, store := newTestServer(t)
	seedUser(t, store, "root@academyhub.test", "super-secret-pw", models.RoleSuperAdmin, nil)

	// Register Riverside FC.
	rec, body := doJSON(t, engine, http.MethodPost, "/api/v1/academies/register", "", gin.H{
		"name":          "Riverside FC",
		"location":      "X",
		"contactEmail":  "a@riverside.test",
		"contactName":   "Avery Park",
		"adminPassword": "registered-pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", rec.Code, body)
	}
	academy := body["academy"].(map[string]any)
	if academy["status"] != "pending" {
		t.Fatalf("expected pending academy, got %v", academy["status"])
	}
	admin := body["admin"].(map[string]any)
	if admin["role"] != "admin" {
		t.Fatalf("expected admin role, got %v", admin["role"])
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Fatalf("registration response leaks password material: %s", rec.Body.String())
	}
	academyID := academy["id"].(string)

	// Wrong password is 401 regardless of academy status.
	if code, _ := login(t, engine, "a@riverside.test", "wrong-password"); code != http.StatusUnauthorized {
		t.Fatalf("wrong password before approval: expected 401, got %d", code)
	}

	// Correct credentials but unapproved academy is 403.
	if code, _ := login(t, engine, "a@riverside.test", "registered-pw"); code != http.StatusForbidden {
		t.Fatalf("login before approval: expected 403, got %d", code)
	}

	// Super admin reviews the queue.
	rootToken := mustLogin(t, engine, "root@academyhub.test", "super-secret-pw")
	rec, body = doJSON(t, engine, http.MethodGet, "/api/v1/admin/approvals", rootToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list approvals: expected 200, got %d", rec.Code)
	}
	queue := body["academies"].([]any)
	if len(queue) != 1 || queue[0].(map[string]any)["id"] != academyID {
		t.Fatalf("expected queued academy %s, got %v", academyID, queue)
	}

	// Approve it.
	rec, body = doJSON(t, engine, http.MethodPost, "/api/v1/admin/approvals/"+academyID, rootToken, gin.H{"action": "approve"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (%v)", rec.Code, body)
	}
	if body["academy"].(map[string]any)["status"] != "approved" {
		t.Fatalf("expected approved, got %v", body["academy"])
	}

	// Now the registered admin can sign in.
	adminToken := mustLogin(t, engine, "a@riverside.test", "registered-pw")

	// And verify returns the live projection.
	rec, body = doJSON(t, engine, http.MethodGet, "/api/v1/auth/verify", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", rec.Code)
	}
	user := body["user"].(map[string]any)
	if user["role"] != "admin" || user["academyId"] != academyID {
		t.Fatalf("unexpected verified user: %v", user)
	}
}

func TestRegistrationValidation(t *testing.T) {
	engine, store := newTestServer(t)

	cases := []gin.H{
		{"location": "X", "contactEmail": "a@b.test", "contactName": "A", "adminPassword": "long-enough"},
		{"name": "FC", "contactEmail": "a@b.test", "contactName": "A", "adminPassword": "long-enough"},
		{"name": "FC", "location": "X", "contactEmail": "nope", "contactName": "A", "adminPassword": "long-enough"},
	}

	for _, body := range cases {
		rec, resp := doJSON(t, engine, http.MethodPost, "/api/v1/academies/register", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d (%v)", rec.Code, resp)
		}
		if resp["error"] == "" {
			t.Fatalf("expected an error message")
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.academies) != 0 || len(store.users) != 0 {
		t.Fatalf("validation failures must create nothing, got %d/%d", len(store.academies), len(store.users))
	}
}

func TestApprovalEndpointsRequireSuperAdmin(t *testing.T) {
	engine, store := newTestServer(t)
	academy := seedAcademy(t, store, "aca-1", models.AcademyStatusApproved)
	seedUser(t, store, "admin@aca1.test", "admin-password", models.RoleAdmin, &academy.ID)

	// No token at all.
	rec, _ := doJSON(t, engine, http.MethodGet, "/api/v1/admin/approvals", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	// Academy admin is not enough.
	adminToken := mustLogin(t, engine, "admin@aca1.test", "admin-password")
	rec, _ = doJSON(t, engine, http.MethodGet, "/api/v1/admin/approvals", adminToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin token: expected 403, got %d", rec.Code)
	}
	rec, _ = doJSON(t, engine, http.MethodPost, "/api/v1/admin/approvals/aca-1", adminToken, gin.H{"action": "approve"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin decide: expected 403, got %d", rec.Code)
	}
}

func TestApprovalUnknownAcademyIs404(t *testing.T) {
	engine, store := newTestServer(t)
	seedUser(t, store, "root@academyhub.test", "super-secret-pw", models.RoleSuperAdmin, nil)
	rootToken := mustLogin(t, engine, "root@academyhub.test", "super-secret-pw")

	rec, _ := doJSON(t, engine, http.MethodPost, "/api/v1/admin/approvals/missing", rootToken, gin.H{"action": "approve"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRejectedAcademyCannotLogin(t *testing.T) {
	engine, store := newTestServer(t)
	seedUser(t, store, "root@academyhub.test", "super-secret-pw", models.RoleSuperAdmin, nil)
	academy := seedAcademy(t, store, "aca-1", models.AcademyStatusPending)
	seedUser(t, store, "admin@aca1.test", "admin-password", models.RoleAdmin, &academy.ID)

	rootToken := mustLogin(t, engine, "root@academyhub.test", "super-secret-pw")
	rec, _ := doJSON(t, engine, http.MethodPost, "/api/v1/admin/approvals/aca-1", rootToken, gin.H{"action": "reject"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d", rec.Code)
	}

	if code, _ := login(t, engine, "admin@aca1.test", "admin-password"); code != http.StatusForbidden {
		t.Fatalf("rejected academy login: expected 403, got %d", code)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	engine, _ := newTestServer(t)

	rec, _ := doJSON(t, engine, http.MethodGet, "/api/v1/auth/verify", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", recorder.Code)
	}
}

func TestLogoutIsStateless(t *testing.T) {
	engine, _ := newTestServer(t)

	rec, body := doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected logout body: %v", body)
	}
}
