//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
}

// adminToken logs in when INTEGRATION_ADMIN_PASSWORD is set; otherwise admin routes are
// expected to be open.
func adminToken(t *testing.T) string {
	t.Helper()
	password := os.Getenv("INTEGRATION_ADMIN_PASSWORD")
	if password == "" {
		return ""
	}
	resp := doJSON(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": password})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed: %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &out)
	return out.AccessToken
}

func doJSON(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		t.Fatalf("expected %d, got %d, body: %v", want, resp.StatusCode, errResp)
	}
}

type teamDoc struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type questionDoc struct {
	ID       string `json:"_id"`
	Question string `json:"question"`
}

func createTeam(t *testing.T, prefix string) teamDoc {
	t.Helper()
	resp := doJSON(t, http.MethodPost, "/api/teams", "", map[string]string{
		"name": fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	var out teamDoc
	decode(t, resp, &out)
	if out.ID == "" {
		t.Fatal("empty team id")
	}
	return out
}

func createQuestion(t *testing.T, token, text string) questionDoc {
	t.Helper()
	resp := doJSON(t, http.MethodPost, "/api/admin/questions", token, map[string]string{
		"question": text,
		"category": "general",
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	var out questionDoc
	decode(t, resp, &out)
	return out
}

func drawQuestion(t *testing.T, teamID string) (questionDoc, int) {
	t.Helper()
	resp := doJSON(t, http.MethodGet, "/api/teams/"+teamID+"/question", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return questionDoc{}, resp.StatusCode
	}
	var out questionDoc
	decode(t, resp, &out)
	return out, resp.StatusCode
}

func dispose(t *testing.T, teamID, kind, questionID, user string) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodPost, "/api/teams/"+teamID+"/"+kind+"-question", "", map[string]string{
		"questionId": questionID,
		"userName":   user,
	})
}
