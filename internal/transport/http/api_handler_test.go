package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"fanzone-service/internal/domain"
)

func TestRegisterAndProfileEndpoints(t *testing.T) {
	service := newTestService(t)
	server := newTestServer(service)
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/register", map[string]string{
		"name":         "Alice",
		"email":        "alice@example.com",
		"favoriteMode": "games",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var fan domain.FanProfile
	decode(t, resp, &fan)
	if fan.ID == "" || fan.Points != 0 || fan.Level != domain.LevelBeginner {
		t.Fatalf("unexpected profile: %+v", fan)
	}

	// Duplicate email is a client error.
	resp = postJSON(t, server.URL+"/api/register", map[string]string{
		"name":  "Alice II",
		"email": "alice@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = get(t, server.URL+"/api/profile/"+fan.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = get(t, server.URL+"/api/profile/unknown-id")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCompleteQuizEndpointAndDailyGate(t *testing.T) {
	service := newTestService(t)
	server := newTestServer(service)
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/register", map[string]string{
		"name":  "Bob",
		"email": "bob@example.com",
	})
	var fan domain.FanProfile
	decode(t, resp, &fan)

	body := map[string]any{
		"userId": fan.ID,
		"answers": []map[string]string{
			{"questionId": "q1", "optionId": "q1-right"},
			{"questionId": "q2", "optionId": "q2-right"},
			{"questionId": "q3", "optionId": "q3-right"},
			{"questionId": "q4", "optionId": "q4-right"},
		},
	}
	resp = postJSON(t, server.URL+"/api/quiz/daily/complete", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var outcome domain.QuizOutcome
	decode(t, resp, &outcome)
	if outcome.TotalPoints != 100 || outcome.Level != domain.LevelVeteran || !outcome.EnteredSweepstakes {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	// Same day, same fan: informational conflict, not a server fault.
	resp = postJSON(t, server.URL+"/api/quiz/daily/complete", body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	var denial struct {
		Code string `json:"code"`
	}
	decode(t, resp, &denial)
	if denial.Code != "already_played" {
		t.Fatalf("expected already_played, got %q", denial.Code)
	}

	resp = get(t, server.URL+"/api/ranking?limit=5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var lb domain.Leaderboard
	decode(t, resp, &lb)
	if len(lb.Entries) != 1 || lb.Entries[0].Points != 100 {
		t.Fatalf("unexpected leaderboard: %+v", lb.Entries)
	}
}

func TestSweepstakesAdminEndpoints(t *testing.T) {
	service := newTestService(t)
	server := newTestServer(service)
	defer server.Close()

	resp := postJSON(t, server.URL+"/api/admin/sweepstakes/draw", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 with no entrants, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/register", map[string]string{
		"name":  "Carol",
		"email": "carol@example.com",
	})
	var fan domain.FanProfile
	decode(t, resp, &fan)

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/admin/profile/"+fan.ID+"/sweepstakes",
		bytes.NewBufferString(`{"inSweepstakes":true}`))
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", putResp.StatusCode)
	}
	putResp.Body.Close()

	resp = postJSON(t, server.URL+"/api/admin/sweepstakes/draw", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected a winner, got %d", resp.StatusCode)
	}
	var winner domain.FanProfile
	decode(t, resp, &winner)
	if winner.ID != fan.ID {
		t.Fatalf("expected %s to win, got %s", fan.ID, winner.ID)
	}

	resp = postJSON(t, server.URL+"/api/admin/sweepstakes/reset", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &body)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
