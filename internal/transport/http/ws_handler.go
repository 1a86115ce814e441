package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
	tick     time.Duration
	logger   *slog.Logger
}

type Option func(*WSHandler)

// WithTickInterval sets how often timed modes count down; one tick is one second of game time.
func WithTickInterval(d time.Duration) Option {
	return func(h *WSHandler) {
		if d > 0 {
			h.tick = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *WSHandler) { h.logger = l }
}

func NewWSHandler(service *app.GameService, opts ...Option) *WSHandler {
	h := &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		tick:   time.Second,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one game per connection.
// The connection's reader, its countdown ticker and the service share the
// session lock, so every mutation reaches the engine one at a time.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	settings, err := settingsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	game, err := h.service.NewGame(ctx, settings)
	if err != nil {
		h.logger.Info("game setup failed", "mode", settings.Mode, "difficulty", settings.Difficulty, "error", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	id := game.SessionID
	log := h.logger.With("session", id)
	log.Info("game started", "mode", settings.Mode, "difficulty", settings.Difficulty, "questions", game.Total)
	defer h.service.End(context.WithoutCancel(ctx), id)

	updates, cancel, err := h.service.Subscribe(ctx, id)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	tickerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", "error", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	go func() {
		defer close(tickerDone)
		if _, timed := settings.Mode.TimePerQuestion(); timed {
			h.runTicker(ctx, id, closeSignals, log)
		}
	}()

	reply := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var opErr error
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			_, opErr = h.service.Answer(ctx, id, payload.Option)
		case "next":
			_, opErr = h.service.Next(ctx, id)
		case "restart":
			_, opErr = h.service.Restart(ctx, id)
		default:
			reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
			continue
		}
		if opErr != nil {
			if errors.Is(opErr, domain.ErrInvalidOption) {
				log.Warn("answer rejected", "error", opErr)
			} else {
				log.Error("game operation failed", "type", inbound.Type, "error", opErr)
			}
			reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: opErr.Error()}})
		}
	}

	close(closeSignals)
	<-tickerDone
	<-updatesDone
	close(send)
	<-writerDone
}

// runTicker drives the countdown of timed modes until the connection closes.
func (h *WSHandler) runTicker(ctx context.Context, id string, done <-chan struct{}, log *slog.Logger) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Ticks after an answer or game over are no-ops in the engine.
			if _, err := h.service.Tick(ctx, id); err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return
				}
				log.Error("timer tick failed", "error", err)
			}
		case <-done:
			return
		}
	}
}

func settingsFromQuery(r *http.Request) (domain.GameSettings, error) {
	q := r.URL.Query()
	mode, err := domain.ParseMode(q.Get("mode"))
	if err != nil {
		return domain.GameSettings{}, err
	}
	difficulty, err := domain.ParseDifficulty(q.Get("difficulty"))
	if err != nil {
		return domain.GameSettings{}, err
	}
	settings := domain.GameSettings{Mode: mode, Difficulty: difficulty}
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.GameSettings{}, errors.New("count must be an integer")
		}
		settings.NumberOfQuestions = &n
	}
	return settings, settings.Validate()
}
