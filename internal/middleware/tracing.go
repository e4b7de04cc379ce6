package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/store"
)

// TracingMiddleware installs New Relic transactions around the carpool
// API.
//
// It is made of two layers that must run in this order:
//  1. NewRelicMiddleware starts the transaction.
//  2. EnhanceTracing tags it with request and store details.
//
// When New Relic is disabled nrApp is nil and both layers pass requests
// through untouched.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware binds the tracing layers to the server config and
// to nrApp, which may be nil.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns nrecho's middleware, which opens a
// transaction per request and stores it in the request context for
// newrelic.FromContext. Transactions are named after the matched route.
//
// Without an application it returns a middleware that calls next
// directly.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds carpool attributes to the current transaction.
//
// Before the handler runs it records:
//   - http.real_ip and http.user_agent
//   - store.driver, the configured table store
//   - request.id, when RequestID has set one
//
// After the handler it records http.status_code. A returned error is
// noticed with its stack, and a *store.Error also sets store.op,
// store.table and store.code so store outages can be grouped by table.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			txn.AddAttribute("store.driver", tm.server.Config.Store.Driver)

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				addStoreAttributes(txn, err)
			}

			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}

func addStoreAttributes(txn *newrelic.Transaction, err error) {
	storeErr, ok := store.AsError(err)
	if !ok {
		return
	}

	txn.AddAttribute("store.op", string(storeErr.Op))
	if storeErr.Table != "" {
		txn.AddAttribute("store.table", storeErr.Table)
	}
	if storeErr.Code != "" {
		txn.AddAttribute("store.code", storeErr.Code)
	}
}
