//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

// TestExhaustAndReset skips through the whole bank, expects exhaustion, then resets.
func TestExhaustAndReset(t *testing.T) {
	token := adminToken(t)
	team := createTeam(t, "exhaust")

	seen := map[string]bool{}
	for i := 0; i < 10000; i++ {
		q, status := drawQuestion(t, team.ID)
		if status == http.StatusNotFound {
			break
		}
		if status != http.StatusOK {
			t.Fatalf("unexpected draw status: %d", status)
		}
		if seen[q.ID] {
			t.Fatalf("question %s returned after being skipped", q.ID)
		}
		seen[q.ID] = true

		resp := dispose(t, team.ID, "skip", q.ID, "Integration")
		expectStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}
	if len(seen) == 0 {
		t.Fatal("bank is empty")
	}

	resp := doJSON(t, http.MethodPost, "/api/admin/teams/"+team.ID+"/reset", token, nil)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Reset twice is fine.
	resp = doJSON(t, http.MethodPost, "/api/admin/teams/"+team.ID+"/reset", token, nil)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	if _, status := drawQuestion(t, team.ID); status != http.StatusOK {
		t.Fatalf("expected a question after reset, got %d", status)
	}
}

func TestUseTwiceConflicts(t *testing.T) {
	team := createTeam(t, "conflict")
	q, status := drawQuestion(t, team.ID)
	if status != http.StatusOK {
		t.Fatalf("draw failed: %d", status)
	}

	resp := dispose(t, team.ID, "use", q.ID, "Ada")
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = dispose(t, team.ID, "use", q.ID, "Ada")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusConflict)

	users := doJSON(t, http.MethodGet, "/api/teams/"+team.ID+"/users", "", nil)
	defer users.Body.Close()
	var names []string
	decode(t, users, &names)
	if len(names) != 1 || names[0] != "Ada" {
		t.Fatalf("unexpected user names: %v", names)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	token := adminToken(t)
	team := createTeam(t, "cascade")
	q := createQuestion(t, token, "Integration cascade question?")

	resp := dispose(t, team.ID, "use", q.ID, "Grace")
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, "/api/admin/questions/"+q.ID, token, nil)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	stats := doJSON(t, http.MethodGet, "/api/admin/usage-stats", token, nil)
	defer stats.Body.Close()
	expectStatus(t, stats, http.StatusOK)
	var out struct {
		Usage []struct {
			QuestionID string `json:"questionId"`
		} `json:"usage"`
	}
	decode(t, stats, &out)
	for _, u := range out.Usage {
		if u.QuestionID == q.ID {
			t.Fatalf("usage row for deleted question %s survived", q.ID)
		}
	}
}

func TestErrorResponses(t *testing.T) {
	team := createTeam(t, "errors")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing question id", http.MethodPost, "/api/teams/" + team.ID + "/use-question", map[string]string{"userName": "Ada"}, http.StatusBadRequest},
		{"missing team name", http.MethodPost, "/api/teams", map[string]string{}, http.StatusBadRequest},
		{"duplicate team name", http.MethodPost, "/api/teams", map[string]string{"name": team.Name}, http.StatusBadRequest},
		{"unknown team", http.MethodGet, "/api/teams/00000000-0000-0000-0000-000000000000/question", nil, http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/does-not-exist", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, tt.method, tt.path, "", tt.body)
			defer resp.Body.Close()
			expectStatus(t, resp, tt.status)

			var errResp map[string]interface{}
			decode(t, resp, &errResp)
			if errResp["error"] == nil {
				t.Fatal("error field is missing")
			}
		})
	}
}
