package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/barbarashop/storefront-backend/api/responses"
	"github.com/barbarashop/storefront-backend/pkg/config"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BarbaraShop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BarbaraShop-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		var pingErr error

		for name, p := range map[string]pinger{"database": dbP, "redis": redisP} {
			if p == nil {
				checks[name] = "skipped"
				continue
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				pingErr = multierr.Append(pingErr, fmt.Errorf("%s: %w", name, err))
				continue
			}
			checks[name] = "up"
		}

		if pingErr != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, pingErr, "dependency unavailable").
					WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
