package handler

import (
	"net/http"
	"sync"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/di"
	"github.com/lucasaveiro/service-scheduler/shared/logger"
	transport "github.com/lucasaveiro/service-scheduler/transport/http"
	"github.com/lucasaveiro/service-scheduler/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	service *transport.HTTP
)

// Handler is the serverless entrypoint. Warm invocations reuse the router and its connections.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()
		logger.Init(cfg, "serverless")

		if err := cfg.Validate(); err != nil {
			log.Error().Err(err).Msg("Invalid service configuration")

			return
		}

		service = di.InitializeService()
	})

	if service == nil {
		response.WithUnhealthy(w)

		return
	}

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
