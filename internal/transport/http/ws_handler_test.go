package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/infra/memory"
)

func TestWebSocketClassicGame(t *testing.T) {
	server, answers, _ := newTestServer(t)

	conn := dial(t, server, "mode=classic&difficulty=easy&count=2")

	state := readState(t, conn, func(v domain.GameView) bool { return v.Question != nil })
	if state.Total != 2 || state.Lives != domain.DefaultLives {
		t.Fatalf("unexpected initial state %+v", state)
	}

	send(t, conn, "answer", map[string]string{"option": answers[state.Question.ID]})
	state = readState(t, conn, func(v domain.GameView) bool { return v.HasAnswered })
	if state.Score != 1 || state.CorrectAnswer != answers[state.Question.ID] {
		t.Fatalf("expected correct answer scored, got %+v", state)
	}

	send(t, conn, "next", nil)
	state = readState(t, conn, func(v domain.GameView) bool { return v.Index == 1 && !v.HasAnswered })

	wrong := ""
	for _, o := range state.Question.Options {
		if o != answers[state.Question.ID] {
			wrong = o
			break
		}
	}
	send(t, conn, "answer", map[string]string{"option": wrong})
	state = readState(t, conn, func(v domain.GameView) bool { return v.HasAnswered })
	if state.Score != 1 || state.Lives != domain.DefaultLives-1 {
		t.Fatalf("expected wrong answer to cost a life, got %+v", state)
	}

	send(t, conn, "next", nil)
	state = readState(t, conn, func(v domain.GameView) bool { return v.IsGameOver })
	if state.Score != 1 || !state.NewHighScore || state.Reason != domain.ReasonCompleted {
		t.Fatalf("unexpected final state %+v", state)
	}
}

func TestWebSocketRejectsForeignOption(t *testing.T) {
	server, _, _ := newTestServer(t)
	conn := dial(t, server, "mode=practice&count=1")
	readState(t, conn, func(v domain.GameView) bool { return v.Question != nil })

	send(t, conn, "answer", map[string]string{"option": "definitely not an option"})
	typ, payload := readNext(t, conn)
	if typ != "error" || !strings.Contains(string(payload), "option not offered") {
		t.Fatalf("expected invalid option error, got %s %s", typ, payload)
	}
}

func TestWebSocketTimedModeCountsDown(t *testing.T) {
	server, _, _ := newTestServer(t)
	conn := dial(t, server, "mode=time_attack&difficulty=medium&count=2")

	state := readState(t, conn, func(v domain.GameView) bool { return v.HasAnswered })
	if state.SelectedOption != nil || state.Lives != domain.DefaultLives-1 || *state.TimeRemaining != 0 {
		t.Fatalf("expected timeout to cost a life, got %+v", state)
	}
}

func TestWebSocketSetupErrors(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws?mode=blitz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", resp.StatusCode)
	}

	conn := dial(t, server, "difficulty=hard&count=40")
	typ, payload := readNext(t, conn)
	if typ != "error" || !strings.Contains(string(payload), "insufficient questions") {
		t.Fatalf("expected insufficient questions error, got %s %s", typ, payload)
	}
}

func TestWebSocketDisconnectEndsSession(t *testing.T) {
	server, _, sessions := newTestServer(t)
	conn := dial(t, server, "count=1")
	readState(t, conn, func(v domain.GameView) bool { return v.Question != nil })
	if sessions.Len() != 1 {
		t.Fatalf("expected one live session, got %d", sessions.Len())
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for sessions.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("session not cleaned up after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHighScoreEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/highscores?mode=classic&difficulty=easy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before any game, got %d", resp.StatusCode)
	}

	// Play a one-question practice game to completion.
	server2, answers, _ := newTestServer(t)
	conn := dial(t, server2, "mode=practice&difficulty=easy&count=1")
	state := readState(t, conn, func(v domain.GameView) bool { return v.Question != nil })
	send(t, conn, "answer", map[string]string{"option": answers[state.Question.ID]})
	readState(t, conn, func(v domain.GameView) bool { return v.HasAnswered })
	send(t, conn, "next", nil)
	readState(t, conn, func(v domain.GameView) bool { return v.IsGameOver })

	resp, err = http.Get(server2.URL + "/highscores?mode=practice&difficulty=easy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Mode  string `json:"mode"`
		Value int    `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Mode != "practice" || body.Value != 1 {
		t.Fatalf("unexpected high score %+v", body)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, map[string]string, *memory.SessionStore) {
	t.Helper()
	questions := memory.SampleQuestions()
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.Answer
	}

	sessions := memory.NewSessionStore()
	service := app.NewGameService(sessions, memory.NewQuestionBank(questions), memory.NewHighScoreStore())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(service, WithTickInterval(5*time.Millisecond)).ServeWS)
	mux.Handle("/highscores", NewHighScoreHandler(service))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, answers, sessions
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.DialContext(context.Background(), u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}

// readState skips messages until a state snapshot satisfies match.
func readState(t *testing.T, conn *websocket.Conn, match func(domain.GameView) bool) domain.GameView {
	t.Helper()
	for i := 0; i < 100; i++ {
		typ, payload := readNext(t, conn)
		if typ == "error" {
			t.Fatalf("unexpected error message: %s", payload)
		}
		if typ != "state" {
			continue
		}
		var view domain.GameView
		if err := json.Unmarshal(payload, &view); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if match(view) {
			return view
		}
	}
	t.Fatalf("no matching state received")
	return domain.GameView{}
}
