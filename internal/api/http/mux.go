package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-zajac/busfactor/internal/app"
	"github.com/sirupsen/logrus"
)

// Service can compute bus factors for top repositories of a language.
type Service interface {
	BusFactors(
		ctx context.Context,
		language string,
		projectsCount int,
	) ([]app.BusFactorResult, error)
}

// NewMux creates router for app's http server.
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)
	loggingMiddleware := NewLoggingMiddleware(l)

	busFactorPath := "/busfactor/"
	busFactorHandler := NewBusFactorHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, busFactorPath)
		},
		service,
	)
	busFactorHandler = loggingMiddleware(timeoutMiddleware(busFactorHandler))

	m := http.NewServeMux()
	m.HandleFunc(busFactorPath, busFactorHandler)

	return m
}
