// Package server exposes the function handlers over plain HTTP for local
// development, translating requests into API Gateway proxy events.
//
// Endpoints:
//
//	GET /files        list the bucket root with one-hour links
//	GET /example      list the example/ prefix with one-hour links
//	GET /files/all    list the bucket root with fifteen-minute links
//	GET /upload-link  issue a presigned POST for ?key=
package server

import (
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/handler"
	"github.com/sh3r4rd/bucket_links/internal/model"
)

// LocalStage is the stage name reported in translated request contexts.
const LocalStage = "local"

// Server routes HTTP requests to the function handlers.
type Server struct {
	router chi.Router
	logger *zap.Logger
}

// New creates a Server for the given handlers.
func New(prefix *handler.PrefixLister, flat *handler.FlatLister, upload *handler.Uploader, logger *zap.Logger) *Server {
	s := &Server{router: chi.NewRouter(), logger: logger}

	s.router.Use(middleware.Recoverer)
	s.router.Get("/files", s.invoke("/files", prefix.Handle))
	s.router.Get(model.ExampleResourcePath, s.invoke(model.ExampleResourcePath, prefix.Handle))
	s.router.Get("/files/all", s.invoke("/files/all", flat.Handle))
	s.router.Get("/upload-link", s.invoke("/upload-link", upload.Handle))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) invoke(resource string, fn handler.Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := ProxyRequest(r, resource)

		resp, err := fn(r.Context(), req)
		if err != nil {
			// Matches what API Gateway returns when the function errors.
			s.logger.Error("handler failed",
				zap.String("resource", resource),
				zap.String("request_id", req.RequestContext.RequestID),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", model.ContentTypeJSON)
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message": "Internal server error"}`))
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Body))
	}
}

// ProxyRequest translates r into the event API Gateway would deliver for
// the given resource. Single-value maps keep the last value, as API
// Gateway does, and are nil when empty.
func ProxyRequest(r *http.Request, resource string) events.APIGatewayProxyRequest {
	query := r.URL.Query()

	return events.APIGatewayProxyRequest{
		Resource:                        resource,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         lastValues(r.Header),
		MultiValueHeaders:               r.Header,
		QueryStringParameters:           lastValues(query),
		MultiValueQueryStringParameters: query,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:    uuid.NewString(),
			ResourcePath: resource,
			Path:         r.URL.Path,
			HTTPMethod:   r.Method,
			Stage:        LocalStage,
		},
	}
}

func lastValues(m map[string][]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if len(v) > 0 {
			out[k] = v[len(v)-1]
		}
	}
	return out
}
