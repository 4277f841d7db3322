package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/preferencial-eng/incendio/pkg/controller/http"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/repository"
	"github.com/preferencial-eng/incendio/pkg/usecase"
)

const adminEmail = "chefe@example.com"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := repository.NewMemory()
	site := model.DefaultSiteConfig()
	authUC := usecase.NewAuth(repo, adminEmail)
	issueUC := usecase.NewIssue(repo, nil, site)
	dashboardUC := usecase.NewDashboard(repo, site)

	server, err := controller.NewServer(context.Background(), "localhost:0",
		site, authUC, issueUC, dashboardUC)
	gt.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

// signUpAndLogin registers an account and returns its session cookies
func signUpAndLogin(t *testing.T, ts *httptest.Server, name, email string) []*http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"secret1"}`, name, email)
	resp, err := http.Post(ts.URL+"/api/auth/signup", "application/json",
		bytes.NewReader([]byte(body)))
	gt.NoError(t, err)
	defer resp.Body.Close()
	gt.Equal(t, http.StatusCreated, resp.StatusCode)

	loginBody := fmt.Sprintf(`{"email":%q,"password":"secret1"}`, email)
	resp, err = http.Post(ts.URL+"/api/auth/login", "application/json",
		bytes.NewReader([]byte(loginBody)))
	gt.NoError(t, err)
	defer resp.Body.Close()
	gt.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	gt.Equal(t, 2, len(cookies))
	return cookies
}

// doJSON sends an authenticated JSON request and decodes the response
func doJSON(t *testing.T, ts *httptest.Server, cookies []*http.Cookie, method, path string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	gt.NoError(t, err)
	defer resp.Body.Close()
	gt.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	gt.Equal(t, "healthy", body["status"])
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Protected routes reject anonymous requests", func(t *testing.T) {
		for _, path := range []string{"/api/issues", "/api/dashboard", "/api/sectors", "/api/auth/me"} {
			resp, err := http.Get(ts.URL + path)
			gt.NoError(t, err)
			resp.Body.Close()
			gt.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		}
	})

	t.Run("Sign up, login and me", func(t *testing.T) {
		cookies := signUpAndLogin(t, ts, "Maria", "maria@example.com")

		var me map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/auth/me", nil, &me)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "Maria", me["name"])
		gt.Equal(t, "maria@example.com", me["email"])
		gt.Equal(t, false, me["isAdmin"])
	})

	t.Run("Admin flag on me", func(t *testing.T) {
		cookies := signUpAndLogin(t, ts, "Chefe", adminEmail)

		var me map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/auth/me", nil, &me)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, true, me["isAdmin"])
	})

	t.Run("Duplicate sign up conflicts", func(t *testing.T) {
		body := `{"name":"Maria Again","email":"maria@example.com","password":"secret1"}`
		resp, err := http.Post(ts.URL+"/api/auth/signup", "application/json",
			bytes.NewReader([]byte(body)))
		gt.NoError(t, err)
		resp.Body.Close()
		gt.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Bad credentials rejected", func(t *testing.T) {
		body := `{"email":"maria@example.com","password":"wrong"}`
		resp, err := http.Post(ts.URL+"/api/auth/login", "application/json",
			bytes.NewReader([]byte(body)))
		gt.NoError(t, err)
		resp.Body.Close()
		gt.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Logout invalidates the session", func(t *testing.T) {
		cookies := signUpAndLogin(t, ts, "José", "jose@example.com")

		status := doJSON(t, ts, cookies, http.MethodPost, "/api/auth/logout", nil, nil)
		gt.Equal(t, http.StatusOK, status)

		status = doJSON(t, ts, cookies, http.MethodGet, "/api/auth/me", nil, nil)
		gt.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestIssueEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cookies := signUpAndLogin(t, ts, "Maria", "maria@example.com")

	createBody := map[string]any{
		"sector":               "subsolo",
		"discipline":           "eletrica",
		"severity":             3,
		"isBottleneck":         true,
		"description":          "quadro sem tampa",
		"responsible":          "João",
		"occurredOn":           "2024-01-01",
		"targetResolutionDate": "2000-01-10",
		"xPercent":             30.5,
		"yPercent":             40.25,
		"pageIndex":            1,
	}

	var created map[string]any
	status := doJSON(t, ts, cookies, http.MethodPost, "/api/issues", createBody, &created)
	gt.Equal(t, http.StatusCreated, status)
	issueID := created["id"].(string)
	gt.True(t, issueID != "")
	gt.Equal(t, "overdue", created["status"])
	gt.Equal(t, 30.5, created["xPercent"])
	gt.Equal(t, any(float64(1)), created["pageIndex"])

	t.Run("List includes the issue", func(t *testing.T) {
		var listed map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/issues", nil, &listed)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, any(float64(1)), listed["count"])
	})

	t.Run("Filter by status", func(t *testing.T) {
		var listed map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/issues?status=closed", nil, &listed)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, any(float64(0)), listed["count"])
	})

	t.Run("Invalid filter value rejected", func(t *testing.T) {
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/issues?severity=9", nil, nil)
		gt.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Get by ID", func(t *testing.T) {
		var got map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/issues/"+issueID, nil, &got)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "quadro sem tampa", got["description"])
	})

	t.Run("Get unknown ID", func(t *testing.T) {
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/issues/missing", nil, nil)
		gt.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Partial update", func(t *testing.T) {
		var updated map[string]any
		status := doJSON(t, ts, cookies, http.MethodPatch, "/api/issues/"+issueID,
			map[string]any{"responsible": "Carlos"}, &updated)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "Carlos", updated["responsible"])
		gt.Equal(t, "quadro sem tampa", updated["description"])
	})

	t.Run("Resolve closes the issue", func(t *testing.T) {
		var resolved map[string]any
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/issues/"+issueID+"/resolve",
			map[string]any{"resolvedOn": "2024-01-16"}, &resolved)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "closed", resolved["status"])
		gt.Equal(t, "2024-01-16", resolved["resolvedOn"])
	})

	t.Run("Delete requires admin", func(t *testing.T) {
		status := doJSON(t, ts, cookies, http.MethodDelete, "/api/issues/"+issueID, nil, nil)
		gt.Equal(t, http.StatusForbidden, status)

		adminCookies := signUpAndLogin(t, ts, "Chefe", adminEmail)
		status = doJSON(t, ts, adminCookies, http.MethodDelete, "/api/issues/"+issueID, nil, nil)
		gt.Equal(t, http.StatusOK, status)

		status = doJSON(t, ts, cookies, http.MethodGet, "/api/issues/"+issueID, nil, nil)
		gt.Equal(t, http.StatusNotFound, status)
	})
}

func TestMarkResolveEndpoint(t *testing.T) {
	ts := newTestServer(t)
	cookies := signUpAndLogin(t, ts, "Maria", "maria@example.com")

	createBody := map[string]any{
		"sector":     "subsolo",
		"discipline": "civil",
		"severity":   1,
		"xPercent":   50.0,
		"yPercent":   50.0,
		"pageIndex":  1,
	}
	var created map[string]any
	status := doJSON(t, ts, cookies, http.MethodPost, "/api/issues", createBody, &created)
	gt.Equal(t, http.StatusCreated, status)

	t.Run("Click near the mark selects it", func(t *testing.T) {
		var resp map[string]any
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/marks/resolve",
			map[string]any{"sector": "subsolo", "xPercent": 50.5, "yPercent": 50.5, "pageIndex": 1},
			&resp)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "select", resp["action"])

		issue := resp["issue"].(map[string]any)
		gt.Equal(t, created["id"], issue["id"])
	})

	t.Run("Click far away creates", func(t *testing.T) {
		var resp map[string]any
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/marks/resolve",
			map[string]any{"sector": "subsolo", "xPercent": 80.0, "yPercent": 80.0, "pageIndex": 1},
			&resp)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "create", resp["action"])

		pos := resp["position"].(map[string]any)
		gt.Equal(t, 80.0, pos["xPercent"])
	})

	t.Run("Same spot on another page creates", func(t *testing.T) {
		var resp map[string]any
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/marks/resolve",
			map[string]any{"sector": "subsolo", "xPercent": 50.0, "yPercent": 50.0, "pageIndex": 2},
			&resp)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, "create", resp["action"])
	})

	t.Run("Unknown sector rejected", func(t *testing.T) {
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/marks/resolve",
			map[string]any{"sector": "penthouse", "xPercent": 50.0, "yPercent": 50.0, "pageIndex": 1},
			nil)
		gt.Equal(t, http.StatusBadRequest, status)
	})
}

func TestSiteAndDashboardEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cookies := signUpAndLogin(t, ts, "Maria", "maria@example.com")

	t.Run("Sectors", func(t *testing.T) {
		var resp map[string][]map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/sectors", nil, &resp)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, 12, len(resp["sectors"]))
	})

	t.Run("Disciplines", func(t *testing.T) {
		var resp map[string][]map[string]any
		status := doJSON(t, ts, cookies, http.MethodGet, "/api/disciplines", nil, &resp)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, 4, len(resp["disciplines"]))
	})

	t.Run("Dashboard aggregates", func(t *testing.T) {
		createBody := map[string]any{
			"sector":               "subsolo",
			"discipline":           "eletrica",
			"severity":             2,
			"targetResolutionDate": "2000-01-01",
			"xPercent":             10.0,
			"yPercent":             10.0,
			"pageIndex":            1,
		}
		status := doJSON(t, ts, cookies, http.MethodPost, "/api/issues", createBody, nil)
		gt.Equal(t, http.StatusCreated, status)

		var summary map[string]any
		status = doJSON(t, ts, cookies, http.MethodGet, "/api/dashboard", nil, &summary)
		gt.Equal(t, http.StatusOK, status)
		gt.Equal(t, any(float64(1)), summary["total"])
		gt.Equal(t, any(float64(1)), summary["open"])
		gt.Equal(t, any(float64(1)), summary["overdue"])

		sectors := summary["sectors"].([]any)
		gt.Equal(t, 12, len(sectors))
		top := sectors[0].(map[string]any)
		gt.Equal(t, "subsolo", top["id"])
		gt.Equal(t, any(float64(1)), top["count"])
	})
}
