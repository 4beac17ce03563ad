//go:build integration
// +build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsmsg "github.com/gokatarajesh/icebreaker/pkg/http/ws"
)

func TestTeamFeedReceivesUse(t *testing.T) {
	team := createTeam(t, "feed")

	conn, _, err := websocket.DefaultDialer.Dial(wsBase()+"/ws/teams/"+team.ID, nil)
	if err != nil {
		t.Fatalf("dial team feed failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var welcome wsmsg.Message
	if err := conn.ReadJSON(&welcome); err != nil || welcome.Type != wsmsg.TypeWelcome {
		t.Fatalf("expected welcome, got %+v (%v)", welcome, err)
	}

	q, status := drawQuestion(t, team.ID)
	if status != http.StatusOK {
		t.Fatalf("draw failed: %d", status)
	}
	resp := dispose(t, team.ID, "use", q.ID, "Linus")
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// A read error leaves the connection unusable, so one deadline covers the wait.
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	for {
		var msg wsmsg.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for question_used event: %v", err)
		}
		if msg.Type == wsmsg.TypeQuestionUsed && strings.Contains(string(msg.Payload), q.ID) {
			return
		}
	}
}
