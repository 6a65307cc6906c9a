package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var postsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "magpie_posts_total",
	Help: "The total number of post attempts, by outcome",
}, []string{"status"})

var postsDeniedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "magpie_posts_denied_total",
	Help: "The total number of scheduled posts skipped because the daily budget was spent",
})

var repliesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "magpie_replies_total",
	Help: "The total number of reply attempts, by channel and outcome",
}, []string{"channel", "status"})

var engageActionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "magpie_engage_actions_total",
	Help: "The total number of search-and-engage actions, by action and outcome",
}, []string{"action", "status"})

var pollsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "magpie_polls_total",
	Help: "The total number of inbox polls, by loop",
}, []string{"loop"})

var loopErrorsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "magpie_loop_errors_total",
	Help: "The total number of loop iterations abandoned on a remote error, by loop",
}, []string{"loop"})

var tracer = otel.Tracer("magpie")
