// Package metrics объявляет счётчики Prometheus, публикуемые сервисом на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokensIssued считает успешно выпущенные токены доступа.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Number of access tokens issued by successful logins.",
	})

	// RequestsResolved считает успешно аутентифицированные запросы
	// (каждый из них увеличивает счётчик посещений пользователя).
	RequestsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_requests_resolved_total",
		Help: "Number of bearer tokens successfully resolved to a user.",
	})
)
