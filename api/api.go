// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves the committed accounts state over HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/vechain/thorstate/accounts"
	apiaccounts "github.com/vechain/thorstate/api/accounts"
	"github.com/vechain/thorstate/api/blocks"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/metrics"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(
	applier *chain.Applier,
	accs *accounts.Accounts,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	apiaccounts.New(applier, accs).
		Mount(router, "/accounts")
	blocks.New(applier).
		Mount(router, "/blocks")

	if opts.EnableMetrics && metrics.IsEnabled() {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLoggerHandler(handler)
	}
	return handler.ServeHTTP
}

func requestLoggerHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("API Request",
			"URI", r.URL.String(),
			"Method", r.Method,
			"RemoteAddr", r.RemoteAddr,
		)
		next.ServeHTTP(w, r)
	})
}
