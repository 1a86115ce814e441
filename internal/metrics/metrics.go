package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
)

const namespace = "trivia"

// Collector records game lifecycle counters. It implements app.Observer.
type Collector struct {
	registry *prometheus.Registry

	gamesStarted  *prometheus.CounterVec
	questions     *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started, by mode and difficulty.",
		}, []string{"mode", "difficulty"}),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_scored_total",
			Help:      "Questions resolved, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games finished, by mode, reason and whether a high score was set.",
		}, []string{"mode", "reason", "high_score"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.gamesStarted,
		c.questions,
		c.gamesFinished,
	)
	return c
}

// Handler serves the collector's registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) GameStarted(s domain.GameSettings) {
	c.gamesStarted.WithLabelValues(string(s.Mode), string(s.Difficulty)).Inc()
}

func (c *Collector) QuestionScored(s domain.GameSettings, outcome app.Outcome) {
	c.questions.WithLabelValues(string(s.Mode), string(outcome)).Inc()
}

func (c *Collector) GameFinished(s domain.GameSettings, reason domain.GameOverReason, newHighScore bool) {
	c.gamesFinished.WithLabelValues(string(s.Mode), string(reason), strconv.FormatBool(newHighScore)).Inc()
}
