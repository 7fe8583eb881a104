package host

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/maps"
)

// Emitter emits different types of metrics
type Emitter interface {
	AddCounter(metricName string, value float64, labels map[string]string)
	EmitGauge(metricName string, value float64, labels map[string]string)
}

type PrometheusEmitter struct {
	mutex    sync.Mutex
	gauges   map[string]*prometheus.GaugeVec
	counters map[string]*prometheus.CounterVec
	registry prometheus.Registerer
}

func NewPrometheusEmitter(r prometheus.Registerer) *PrometheusEmitter {
	return &PrometheusEmitter{
		gauges:   make(map[string]*prometheus.GaugeVec),
		counters: make(map[string]*prometheus.CounterVec),
		registry: r,
	}
}

func (pe *PrometheusEmitter) EmitGauge(name string, value float64, labels map[string]string) {
	pe.mutex.Lock()
	defer pe.mutex.Unlock()
	vec, exists := pe.gauges[name]
	if !exists {
		labelKeys := maps.Keys(labels)
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name}, labelKeys)
		pe.registry.MustRegister(vec)
		pe.gauges[name] = vec
	}
	vec.With(labels).Set(value)
}

func (pe *PrometheusEmitter) AddCounter(name string, value float64, labels map[string]string) {
	pe.mutex.Lock()
	defer pe.mutex.Unlock()
	vec, exists := pe.counters[name]
	if !exists {
		labelKeys := maps.Keys(labels)
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name}, labelKeys)
		pe.registry.MustRegister(vec)
		pe.counters[name] = vec
	}
	vec.With(labels).Add(value)
}

// patternRe is used to strip the METHOD string from the [ServeMux] pattern string.
var patternRe = regexp.MustCompile(`^[^\s]*\s+`)

type MetricsMiddleware struct {
	Emitter
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code sent to the client.
func (mrw *metricsResponseWriter) WriteHeader(code int) {
	mrw.statusCode = code
	mrw.ResponseWriter.WriteHeader(code)
}

// Metrics middleware to capture response time and status code
func (mm MetricsMiddleware) Metrics() MiddlewareFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		startTime := time.Now()

		mrw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(mrw, r) // Process the request

		duration := time.Since(startTime).Seconds()

		// Get the route pattern that matched
		var routePattern string
		if patt := PatternFromContext(r.Context()); patt != nil {
			routePattern = patternRe.ReplaceAllString(*patt, "")
		}

		mm.Emitter.AddCounter("whoami_requests_total", 1.0, map[string]string{
			"verb":  r.Method,
			"code":  strconv.Itoa(mrw.statusCode),
			"route": routePattern,
		})

		mm.Emitter.EmitGauge("whoami_request_duration", duration, map[string]string{
			"verb":  r.Method,
			"code":  strconv.Itoa(mrw.statusCode),
			"route": routePattern,
		})
	}
}
