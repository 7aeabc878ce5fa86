package client

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
	"reflect"
	"strings"
)

// get sends an http request to the Marathon API using the method GET.
func (cli *Client) get(ctx context.Context, path string, query url.Values, headers http.Header) (*http.Response, error) {
	return cli.sendRequest(ctx, http.MethodGet, path, query, nil, headers)
}

// post sends an http POST request to the API.
func (cli *Client) post(ctx context.Context, path string, query url.Values, body any, headers http.Header) (*http.Response, error) {
	jsonBody, headers, err := prepareJSONRequest(body, headers)
	if err != nil {
		return nil, err
	}
	return cli.sendRequest(ctx, http.MethodPost, path, query, jsonBody, headers)
}

func (cli *Client) put(ctx context.Context, path string, query url.Values, body any, headers http.Header) (*http.Response, error) {
	jsonBody, headers, err := prepareJSONRequest(body, headers)
	if err != nil {
		return nil, err
	}
	// PUT requests are expected to always have a body.
	if jsonBody == nil {
		jsonBody = http.NoBody
	}
	return cli.sendRequest(ctx, http.MethodPut, path, query, jsonBody, headers)
}

// delete sends an http request to the Marathon API using the method DELETE.
func (cli *Client) delete(ctx context.Context, path string, query url.Values, headers http.Header) (*http.Response, error) {
	return cli.sendRequest(ctx, http.MethodDelete, path, query, nil, headers)
}

// prepareJSONRequest encodes the given body to JSON and returns it as an
// [io.Reader], and sets the Content-Type header. If body is nil, or a
// nil-interface, a "nil" body is returned without error.
func prepareJSONRequest(body any, headers http.Header) (io.Reader, http.Header, error) {
	if body == nil {
		return nil, headers, nil
	}
	// encoding/json encodes a nil pointer or map as the JSON document `null`,
	// which is not what the caller intended as the request body.
	if v := reflect.ValueOf(body); (v.Kind() == reflect.Pointer || v.Kind() == reflect.Map) && v.IsNil() {
		return nil, headers, nil
	}

	jsonBody, err := jsonEncode(body)
	if err != nil {
		return nil, headers, err
	}
	hdr := http.Header{}
	if headers != nil {
		hdr = headers.Clone()
	}

	hdr.Set("Content-Type", "application/json")
	return jsonBody, hdr, nil
}

// buildURL joins path to the base URL of the API.
func (cli *Client) buildURL(path string, query url.Values) *url.URL {
	u := *cli.host
	u.Path = cli.host.Path + path
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func (cli *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, cli.buildURL(path, query).String(), body)
	if err != nil {
		return nil, err
	}
	req = cli.addHeaders(req, headers)

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "text/plain")
	}
	return req, nil
}

func (cli *Client) sendRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Response, error) {
	req, err := cli.buildRequest(ctx, method, path, query, body, headers)
	if err != nil {
		return nil, err
	}

	resp, err := cli.doRequest(req)
	if err != nil {
		// Failed to connect or context error.
		return resp, err
	}

	// Successfully made a request; return the response and handle any
	// API HTTP response errors.
	return resp, checkResponseErr(resp)
}

// doRequest sends an HTTP request and returns an HTTP response. It is a
// wrapper around [http.Client.Do] with extra handling to decorate errors.
//
// A non-2xx status code doesn't cause an error.
func (cli *Client) doRequest(req *http.Request) (*http.Response, error) {
	resp, err := cli.client.Do(req)
	if err == nil {
		return resp, nil
	}

	// Don't decorate context sentinel errors; users may be comparing to
	// them directly.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	if cli.host.Scheme == "https" && strings.Contains(err.Error(), "certificate") {
		return nil, errConnectionFailed{fmt.Errorf("%w.\n* Use --no-verify-ssl to connect to a server with an untrusted certificate", err)}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return nil, errConnectionFailed{fmt.Errorf("failed to connect to Marathon at %v: %w", cli.host, dnsErr)}
	}

	var nErr net.Error
	if errors.As(err, &nErr) {
		if nErr.Timeout() || strings.Contains(nErr.Error(), "connection refused") {
			return nil, connectionFailed(cli.host.String())
		}
	}

	return nil, errConnectionFailed{fmt.Errorf("error during connect: %w", err)}
}

// errorResponse is the body Marathon returns with a failed request.
type errorResponse struct {
	Message string `json:"message"`
}

func checkResponseErr(serverResp *http.Response) error {
	if serverResp == nil {
		return nil
	}
	// Marathon answers 200 or 201 to every request it accepted; any other
	// status, including other 2xx and 3xx, is a failure.
	if serverResp.StatusCode == http.StatusOK || serverResp.StatusCode == http.StatusCreated {
		return nil
	}

	var reqURL string
	if serverResp.Request != nil {
		reqURL = serverResp.Request.URL.String()
	}

	var body []byte
	if serverResp.Body != nil {
		bodyMax := 1 * 1024 * 1024 // 1 MiB
		bodyR := &io.LimitedReader{
			R: serverResp.Body,
			N: int64(bodyMax),
		}
		var err error
		body, err = io.ReadAll(bodyR)
		if err != nil {
			return err
		}
	}

	message := strings.TrimSpace(string(body))
	if strings.HasPrefix(serverResp.Header.Get("Content-Type"), "application/json") {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			message = strings.TrimSpace(errResp.Message)
		}
	}
	return newStatusError(serverResp.StatusCode, reqURL, message)
}

func (cli *Client) addHeaders(req *http.Request, headers http.Header) *http.Request {
	// Custom headers go first; the headers set below take precedence.
	for k, v := range cli.customHTTPHeaders {
		req.Header.Set(k, v)
	}

	for k, v := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}

	if cli.authorization != "" {
		req.Header.Set("Authorization", cli.authorization)
	}
	req.Header.Set("Accept", "application/json")

	switch {
	case cli.userAgent == nil:
		req.Header.Set("User-Agent", DefaultUserAgent)
	case *cli.userAgent == "":
		req.Header.Del("User-Agent")
	default:
		req.Header.Set("User-Agent", *cli.userAgent)
	}
	return req
}

func jsonEncode(data any) (io.Reader, error) {
	var params bytes.Buffer
	if data != nil {
		enc := json.NewEncoder(&params)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return nil, err
		}
	}
	return &params, nil
}

func ensureReaderClosed(response *http.Response) {
	if response != nil && response.Body != nil {
		// Drain up to 512 bytes and close the body to let the Transport reuse the connection
		_, _ = io.CopyN(io.Discard, response.Body, 512)
		_ = response.Body.Close()
	}
}
