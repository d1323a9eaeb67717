package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/folio/internal/api"
	"github.com/halvard/folio/internal/auth"
	"github.com/halvard/folio/internal/testutil"
)

type testEnv struct {
	srv      *httptest.Server
	sessions *auth.Sessions
}

func newTestEnv(t *testing.T, authEnabled bool) *testEnv {
	t.Helper()
	svc, _, blobs := testutil.TestService(t)

	var sessions *auth.Sessions
	if authEnabled {
		hash, err := auth.HashPasskey("open-sesame")
		if err != nil {
			t.Fatal(err)
		}
		sessions = auth.New(true, hash, "test-session-secret")
	} else {
		sessions = auth.New(false, "", "")
	}

	h := api.NewHandler(svc, blobs, sessions)

	r := chi.NewRouter()
	r.Mount("/api", api.NewRouter(h, http.NotFoundHandler()))
	r.Get("/blobs/{id}", h.ServeBlob)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHeaderCRUD(t *testing.T) {
	e := newTestEnv(t, false)

	resp, body := e.do(t, http.MethodPost, "/api/header", "", map[string]string{
		"name":        "Halvard",
		"description": "Software engineer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}

	resp, body = e.do(t, http.MethodGet, "/api/header/latest", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Halvard") {
		t.Errorf("latest body = %s", body)
	}

	resp, _ = e.do(t, http.MethodPatch, "/api/header/"+created.ID, "", map[string]string{
		"name": "Halvard Berg",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d", resp.StatusCode)
	}

	_, body = e.do(t, http.MethodGet, "/api/header/latest", "", nil)
	if !strings.Contains(string(body), "Halvard Berg") {
		t.Errorf("patched body = %s", body)
	}
	if !strings.Contains(string(body), "Software engineer") {
		t.Errorf("unpatched field lost: %s", body)
	}

	resp, _ = e.do(t, http.MethodDelete, "/api/header/"+created.ID, "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, _ = e.do(t, http.MethodGet, "/api/header/latest", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("latest after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestValidationErrorsCarryFieldMap(t *testing.T) {
	e := newTestEnv(t, false)

	resp, body := e.do(t, http.MethodPost, "/api/skills", "", map[string]string{
		"title": "Go",
		// missing description, link and icon source
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var errBody struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatal(err)
	}
	if len(errBody.Fields) == 0 {
		t.Errorf("no field map in %s", body)
	}
	if _, ok := errBody.Fields["description"]; !ok {
		t.Errorf("description missing from field map: %v", errBody.Fields)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	e := newTestEnv(t, true)

	// Write without a token is rejected.
	resp, _ := e.do(t, http.MethodPost, "/api/header", "", map[string]string{
		"name":        "X",
		"description": "Y",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated write status = %d, want 401", resp.StatusCode)
	}

	// Wrong passkey is rejected.
	resp, _ = e.do(t, http.MethodPost, "/api/login", "", map[string]string{"passkey": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}

	// Correct passkey yields a working token.
	resp, body := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"passkey": "open-sesame"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d: %s", resp.StatusCode, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatal(err)
	}
	if login.Token == "" {
		t.Fatal("empty token")
	}

	resp, _ = e.do(t, http.MethodPost, "/api/header", login.Token, map[string]string{
		"name":        "X",
		"description": "Y",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("authenticated write status = %d, want 201", resp.StatusCode)
	}

	// Public reads stay open.
	resp, _ = e.do(t, http.MethodGet, "/api/header/latest", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("public read status = %d, want 200", resp.StatusCode)
	}
}

func TestUploadFlowAndSignedRetrieval(t *testing.T) {
	e := newTestEnv(t, false)

	// Step 1: request an upload target.
	resp, body := e.do(t, http.MethodPost, "/api/uploads", "", map[string]string{
		"content_type": "image/png",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("issue status = %d: %s", resp.StatusCode, body)
	}
	var target struct {
		Token     string `json:"token"`
		UploadURL string `json:"upload_url"`
	}
	if err := json.Unmarshal(body, &target); err != nil {
		t.Fatal(err)
	}

	// Step 2: PUT the raw bytes.
	req, err := http.NewRequest(http.MethodPut, e.srv.URL+target.UploadURL, strings.NewReader("fake png"))
	if err != nil {
		t.Fatal(err)
	}
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(resp2.Body)
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", resp2.StatusCode, data)
	}
	var up struct {
		StorageID string `json:"storageId"`
	}
	if err := json.Unmarshal(data, &up); err != nil {
		t.Fatal(err)
	}
	if up.StorageID == "" {
		t.Fatal("empty storage id")
	}

	// Token is single-use.
	req, _ = http.NewRequest(http.MethodPut, e.srv.URL+target.UploadURL, strings.NewReader("again"))
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusGone {
		t.Errorf("token reuse status = %d, want 410", resp3.StatusCode)
	}

	// Step 3: attach the blob to a skill and read back the signed URL.
	resp, body = e.do(t, http.MethodPost, "/api/skills", "", map[string]string{
		"title":       "Go",
		"description": "Backend services",
		"link":        "https://go.dev",
		"icon_ref":    up.StorageID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("skill create status = %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}

	resp, body = e.do(t, http.MethodGet, "/api/skills/"+created.ID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("skill get status = %d", resp.StatusCode)
	}
	var skill struct {
		Icon string `json:"icon"`
	}
	if err := json.Unmarshal(body, &skill); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(skill.Icon, "/blobs/") {
		t.Fatalf("icon = %q, want signed /blobs/ URL", skill.Icon)
	}

	// Step 4: fetch the blob through the signed URL.
	resp4, err := http.Get(e.srv.URL + skill.Icon)
	if err != nil {
		t.Fatal(err)
	}
	blobData, _ := io.ReadAll(resp4.Body)
	resp4.Body.Close()
	if resp4.StatusCode != http.StatusOK {
		t.Fatalf("blob fetch status = %d", resp4.StatusCode)
	}
	if string(blobData) != "fake png" {
		t.Errorf("blob content = %q", blobData)
	}
	if ct := resp4.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("blob content type = %q", ct)
	}

	// Unsigned and tampered fetches are rejected.
	base := strings.SplitN(skill.Icon, "?", 2)[0]
	resp5, err := http.Get(e.srv.URL + base)
	if err != nil {
		t.Fatal(err)
	}
	resp5.Body.Close()
	if resp5.StatusCode != http.StatusUnauthorized {
		t.Errorf("unsigned fetch status = %d, want 401", resp5.StatusCode)
	}

	resp6, err := http.Get(e.srv.URL + skill.Icon + "0")
	if err != nil {
		t.Fatal(err)
	}
	resp6.Body.Close()
	if resp6.StatusCode != http.StatusUnauthorized {
		t.Errorf("tampered fetch status = %d, want 401", resp6.StatusCode)
	}
}

func TestProjectListQueryParams(t *testing.T) {
	e := newTestEnv(t, false)

	for i := 0; i < 3; i++ {
		resp, body := e.do(t, http.MethodPost, "/api/projects", "", map[string]any{
			"image_ref":        fmt.Sprintf("ref-%d", i),
			"card_title":       fmt.Sprintf("Project %d", i),
			"card_description": "desc",
			"tags":             []string{"go"},
			"github_link":      "https://github.com/x/y",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %d status = %d: %s", i, resp.StatusCode, body)
		}
	}

	resp, body := e.do(t, http.MethodGet, "/api/projects?limit=2", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var page struct {
		Projects   []json.RawMessage `json:"projects"`
		Total      int               `json:"total"`
		NextCursor int               `json:"next_cursor"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || len(page.Projects) != 2 || page.NextCursor != 2 {
		t.Errorf("page = total %d, len %d, next %d", page.Total, len(page.Projects), page.NextCursor)
	}

	resp, body = e.do(t, http.MethodGet, "/api/projects?q=Project+1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 {
		t.Errorf("search total = %d, want 1", page.Total)
	}
}

func TestExperiencesLatestRoute(t *testing.T) {
	e := newTestEnv(t, false)

	// Patch latest on an empty collection answers 404.
	resp, _ := e.do(t, http.MethodPatch, "/api/experiences/latest", "", map[string]string{
		"work_title": "Lead",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty latest status = %d, want 404", resp.StatusCode)
	}

	resp, body := e.do(t, http.MethodPost, "/api/experiences", "", map[string]any{
		"icon_ref":       "ref-x",
		"workplace":      "Acme",
		"work_title":     "Engineer",
		"description":    []string{"built things"},
		"start_date":     1640995200000,
		"is_current_job": true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}

	resp, _ = e.do(t, http.MethodPatch, "/api/experiences/latest", "", map[string]string{
		"work_title": "Lead",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest patch status = %d", resp.StatusCode)
	}

	_, body = e.do(t, http.MethodGet, "/api/experiences", "", nil)
	if !strings.Contains(string(body), "Lead") {
		t.Errorf("patched title missing: %s", body)
	}
}

func TestMalformedJSONRejected(t *testing.T) {
	e := newTestEnv(t, false)

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/api/header", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}
}
