// Package metrics defines the custom Prometheus metrics of the BileMo API.
// HTTP request metrics come from echoprometheus; the vectors here describe
// what the API did with those requests.
//
// Every vector is registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bilemo"

// ListResponsesTotal counts conditional list responses.
// Labels:
//   - resource: "clients", "mobiles" or "users"
//   - outcome: "fresh" (200 with a page) or "not_modified" (304)
var ListResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_responses_total",
		Help:      "Total number of list responses, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// ResourcesCreatedTotal counts resources created through the API.
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created, by resource.",
	},
	[]string{"resource"},
)

// ResourcesDeletedTotal counts resources deleted through the API.
var ResourcesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_deleted_total",
		Help:      "Total number of resources deleted, by resource.",
	},
	[]string{"resource"},
)

// ValidationFailuresTotal counts submitted documents rejected with 400.
// Label:
//   - route: the matched route path, e.g. "/api/users/:id"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected by validation, by route.",
	},
	[]string{"route"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
