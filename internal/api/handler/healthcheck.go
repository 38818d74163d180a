package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger verifica a disponibilidade de uma dependência
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthcheckHandler responde 503 quando alguma dependência não responde ao ping
func HealthcheckHandler(pingers map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		overall := "ok"
		checks := make(map[string]string, len(pingers))
		for name, pinger := range pingers {
			if err := pinger.PingContext(ctx); err != nil {
				logrus.WithError(err).WithField("dependency", name).Warn("Dependência indisponível no healthcheck")
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				overall = "degraded"
				continue
			}
			checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		err := json.NewEncoder(w).Encode(map[string]any{
			"status": overall,
			"checks": checks,
		})
		if err != nil {
			logrus.WithError(err).Warn("Erro ao responder healthcheck")
		}
	})
}
