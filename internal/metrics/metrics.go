// Package metrics counts activations, renames and generator actions with
// Prometheus, fed by the engine's lifecycle hooks.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
	ResultPlanned = "planned"
)

// Metrics owns a dedicated registry so tests and the CLI do not share
// global state.
type Metrics struct {
	registry    *prometheus.Registry
	activations *prometheus.CounterVec
	renames     *prometheus.CounterVec
	actions     *prometheus.CounterVec
}

// New creates and registers the envswitch collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envswitch_activations_total",
				Help: "Total number of environment activations",
			},
			[]string{"environment", "result"},
		),
		renames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envswitch_workspace_renames_total",
				Help: "Total number of workspace rename operations",
			},
			[]string{"result"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envswitch_actions_total",
				Help: "Total number of generator actions",
			},
			[]string{"action", "result"},
		),
	}
	m.registry.MustRegister(m.activations, m.renames, m.actions)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivationEnd: func(_ context.Context, e *domain.ActivationEvent) {
			result := ResultSuccess
			if e.Err != nil || (e.Report != nil && len(e.Report.Failed()) > 0) {
				result = ResultFailure
			}
			m.activations.WithLabelValues(e.Environment, result).Inc()
		},
		OnRename: func(_ context.Context, e *domain.RenameEvent) {
			result := ResultSuccess
			switch {
			case e.Result.Err != nil:
				result = ResultFailure
			case e.Result.Planned:
				result = ResultPlanned
			}
			m.renames.WithLabelValues(result).Inc()
		},
		OnAction: func(_ context.Context, e *domain.ActionEvent) {
			result := ResultSuccess
			switch {
			case e.Result.Err != nil:
				result = ResultFailure
			case e.Result.Skipped != "":
				result = ResultSkipped
			}
			m.actions.WithLabelValues(e.Result.Action, result).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
