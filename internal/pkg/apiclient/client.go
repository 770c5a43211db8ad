package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Request is one call to the backend. Cookies are the upstream session
// cookies stored for the browser making the call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Cookies map[string]string
}

type Response struct {
	Status  int
	Body    []byte
	Cookies []*http.Cookie
}

// Doer is what services depend on.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Do sends req and returns the response for any status below 400. Failures
// come back as *APIError. Calls are never retried.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for name, value := range req.Cookies {
		httpReq.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	logger := c.log.WithFields(logrus.Fields{"method": req.Method, "path": req.Path})
	start := time.Now()

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		logger.WithError(err).Error("Upstream request failed")
		return nil, newTransportError(err)
	}
	defer httpRes.Body.Close()

	resBody, err := io.ReadAll(httpRes.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to read upstream response")
		return nil, newTransportError(err)
	}

	logger = logger.WithFields(logrus.Fields{"status": httpRes.StatusCode, "latency": time.Since(start).String()})
	if httpRes.StatusCode >= http.StatusBadRequest {
		apiErr := newStatusError(httpRes.StatusCode, resBody)
		if httpRes.StatusCode >= http.StatusInternalServerError {
			logger.Error(apiErr.Message)
		} else {
			logger.Warn(apiErr.Message)
		}
		return nil, apiErr
	}
	logger.Debug("Upstream request completed")

	return &Response{
		Status:  httpRes.StatusCode,
		Body:    resBody,
		Cookies: httpRes.Cookies(),
	}, nil
}

// DecodeData unwraps the backend envelope when present, otherwise decodes the
// raw body. An envelope with success=false becomes an *APIError.
func DecodeData(resp *Response, out interface{}) error {
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &probe); err != nil {
		if out == nil {
			return nil
		}
		return json.Unmarshal(resp.Body, out)
	}

	rawSuccess, hasSuccess := probe["success"]
	rawData, hasData := probe["data"]

	if hasSuccess {
		var success bool
		if err := json.Unmarshal(rawSuccess, &success); err == nil && !success {
			return newStatusError(resp.Status, resp.Body)
		}
	}

	if out == nil {
		return nil
	}
	if hasSuccess && hasData {
		if string(rawData) == "null" {
			return nil
		}
		return json.Unmarshal(rawData, out)
	}
	return json.Unmarshal(resp.Body, out)
}

// Call is Do followed by DecodeData.
func Call(ctx context.Context, d Doer, req Request, out interface{}) (*Response, error) {
	resp, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := DecodeData(resp, out); err != nil {
		return resp, err
	}
	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
