package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpListenerTimeout = time.Second * 10

// HarnessConfig contains the parameters for NewTestHarness.
type HarnessConfig struct {
	// ServiceBaseURL is the base URL of the echo service, such as "https://postman-echo.com".
	ServiceBaseURL string

	// RequestTimeout applies to each request to the echo service. Zero means 30 seconds.
	RequestTimeout time.Duration

	// StatusQueryTimeout is how long to keep trying to reach the service at startup.
	StatusQueryTimeout time.Duration

	// Headers are added to every request, unless a test sets the same header.
	Headers map[string]string
}

type TestHarness struct {
	service *ServiceClient
	logger  Logger
}

// NewTestHarness creates a TestHarness, and verifies that the echo service is responding by
// querying its GET endpoint.
func NewTestHarness(
	config HarnessConfig,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if config.ServiceBaseURL == "" {
		return nil, errors.New("echo service URL is required")
	}

	h := &TestHarness{
		service: NewServiceClient(config.ServiceBaseURL, config.RequestTimeout, config.Headers),
		logger:  debugLogger,
	}
	if err := h.service.probeService(config.StatusQueryTimeout, startupOutput); err != nil {
		return nil, err
	}
	debugLogger.Printf("Echo service at %s is available", h.service.BaseURL())
	return h, nil
}

// Service returns the client for the echo service.
func (h *TestHarness) Service() *ServiceClient {
	return h.service
}

// StartServer starts an HTTP server on the specified port, and does not return until the server
// is accepting requests. HEAD requests to any path get a 200 status so we can tell when the
// listener is active.
func StartServer(port int, handler http.Handler, logger Logger) (*http.Server, error) {
	if logger == nil {
		logger = NullLogger()
	}
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusOK)
				return
			}
			logger.Printf("Received %s %s", r.Method, r.URL)
			handler.ServeHTTP(w, r)
		}),
	}
	listenErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case err := <-listenErr:
			return nil, fmt.Errorf("could not start listener at %s: %w", server.Addr, err)
		case <-deadline.C:
			_ = server.Shutdown(context.Background())
			return nil, fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(fmt.Sprintf("http://localhost:%d", port))
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return server, nil
				}
			}
		}
	}
}
