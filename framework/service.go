package framework

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/launchdarkly/echo-contract-tests/servicedef"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const defaultRequestTimeout = time.Second * 30

// ServiceClient sends requests to the echo service.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// NewServiceClient creates a ServiceClient for the echo service at baseURL. A zero timeout
// means the default of 30 seconds. The headers, if any, are added to every request unless the
// request sets the same header itself.
func NewServiceClient(baseURL string, timeout time.Duration, headers map[string]string) *ServiceClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &ServiceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
	}
}

// BaseURL returns the echo service's base URL, without a trailing slash.
func (c *ServiceClient) BaseURL() string {
	return c.baseURL
}

// Do sends one request and returns the response. An error means the request could not be
// built or no response was received; a non-2xx status is not an error.
//
// The equivalent curl command and a summary of the response are written to logger.
func (c *ServiceClient) Do(ctx context.Context, r servicedef.Request, logger Logger) (servicedef.Response, error) {
	if logger == nil {
		logger = NullLogger()
	}
	req, bodyText, err := c.newHTTPRequest(ctx, r)
	if err != nil {
		return servicedef.Response{}, err
	}
	logger.Printf("Sending request: %s", curlCommand(req, bodyText))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return servicedef.Response{}, fmt.Errorf("%s %s failed: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return servicedef.Response{}, fmt.Errorf("error reading response body from %s: %w", req.URL, err)
	}
	logger.Printf("Received HTTP %d: %s", resp.StatusCode, string(data))

	ret := servicedef.Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		RawBody: data,
	}
	var body ldvalue.Value
	if len(data) != 0 && json.Unmarshal(data, &body) == nil {
		ret.Body = body
	}
	return ret, nil
}

func (c *ServiceClient) newHTTPRequest(ctx context.Context, r servicedef.Request) (*http.Request, string, error) {
	if r.HasJSONBody() && len(r.Form) != 0 {
		return nil, "", errors.New("a request cannot have both a JSON body and a form body")
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(c.baseURL + r.Path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid request path %q: %w", r.Path, err)
	}
	if len(r.Query) != 0 {
		q := u.Query()
		for k, v := range r.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var bodyText, contentType string
	switch {
	case r.HasJSONBody():
		bodyText, contentType = r.JSON.JSONString(), servicedef.ContentTypeJSON
	case len(r.Form) != 0:
		form := make(url.Values)
		for k, v := range r.Form {
			form.Set(k, v)
		}
		bodyText, contentType = form.Encode(), servicedef.ContentTypeForm
	}

	var body io.Reader
	if bodyText != "" {
		body = bytes.NewBufferString(bodyText)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	return req, bodyText, nil
}

// probeService polls GET <baseURL>/get until the service responds with a 200 status or the
// timeout expires. A 200 response that is not a JSON object means this is not an echo service,
// so that is an error right away.
func (c *ServiceClient) probeService(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to echo service at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		ctx, cancel := context.WithDeadline(context.Background(), deadline)
		resp, err := c.Do(ctx, servicedef.Request{Method: http.MethodGet, Path: servicedef.PathGet}, nil)
		cancel()
		if err == nil {
			if resp.Status == http.StatusOK {
				fmt.Fprintln(output)
				if resp.Body.Type() != ldvalue.ObjectType {
					return fmt.Errorf("echo service did not return a JSON object: %s", string(resp.RawBody))
				}
				fmt.Fprintf(output, "Echo service is responding\n")
				return nil
			}
			err = fmt.Errorf("echo service returned status code %d", resp.Status)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

func curlCommand(req *http.Request, body string) string {
	args := []string{"curl", "-X", req.Method}
	var names []string
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "-H", name+": "+req.Header.Get(name))
	}
	if body != "" {
		args = append(args, "-d", body)
	}
	args = append(args, req.URL.String())
	return shellescape.QuoteCommand(args)
}
