package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fitness_tracker"

var (
	signupCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "signups_total",
		Help:      "Accounts created.",
	})
	loginCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})
	workoutCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Workouts created by visibility.",
	}, []string{"visibility"})
	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by a rate limiter, by limiter scope.",
	}, []string{"scope"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(signupCounter, loginCounter, workoutCounter, rateLimited, httpDuration)
}

func RecordSignup() {
	signupCounter.Inc()
}

// RecordLogin counts a login attempt; ok=false means rejected credentials.
func RecordLogin(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	loginCounter.WithLabelValues(outcome).Inc()
}

func RecordWorkoutCreated(public bool) {
	visibility := "private"
	if public {
		visibility = "public"
	}
	workoutCounter.WithLabelValues(visibility).Inc()
}

func RecordRateLimited(scope string) {
	rateLimited.WithLabelValues(scope).Inc()
}

// ObserveHTTP records one request. Unmatched routes are bucketed together.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
