/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package locator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/tinywasm/fetch"
)

// acceptCSS is sent with every stylesheet request. Servers that negotiate
// on Accept then answer with CSS rather than an HTML page.
const acceptCSS = "text/css,*/*;q=0.1"

// Response is the answer to a stylesheet request.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher performs a GET request for url. A non-nil error means no response
// was received; HTTP error statuses are returned as a Response.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPFetcher implements Fetcher using tinywasm/fetch.
type HTTPFetcher struct{}

// Fetch implements Fetcher. The request gives up at the context deadline.
func (HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	type result struct {
		resp *Response
		err  error
	}
	done := make(chan result, 1)

	req := fetch.Get(url).Header("Accept", acceptCSS)
	if deadline, ok := ctx.Deadline(); ok {
		req = req.Timeout(max(1, int(time.Until(deadline).Milliseconds())))
	}
	req.Send(func(resp *fetch.Response, err error) {
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{resp: &Response{
			StatusCode:  resp.Status,
			ContentType: resp.GetHeader("Content-Type"),
			Body:        resp.Body(),
		}}
	})

	select {
	case r := <-done:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FetchError is a stylesheet request that did not yield a stylesheet.
type FetchError struct {
	URL string
	// StatusCode is 0 when no response was received.
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %s", e.URL, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

// IsNotFound reports whether the server said the stylesheet does not exist.
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == 404 || e.StatusCode == 410
}

// HTTPLocator locates http and https stylesheets.
//
// Only 2xx responses are accepted. A body served as HTML is rejected even
// with a 2xx status, since that is how many CDNs render missing files. A
// charset parameter in the Content-Type header is applied to the body.
type HTTPLocator struct {
	fetcher Fetcher
	timeout time.Duration
}

// NewHTTPLocator creates an HTTPLocator using fetcher, or HTTPFetcher if
// fetcher is nil. A zero timeout means fetches are bounded only by the
// caller's context.
func NewHTTPLocator(fetcher Fetcher, timeout time.Duration) *HTTPLocator {
	if fetcher == nil {
		fetcher = HTTPFetcher{}
	}
	return &HTTPLocator{fetcher: fetcher, timeout: timeout}
}

// Locate implements Locator.
func (l *HTTPLocator) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	resp, err := l.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, &NotFoundError{URI: uri, Err: &FetchError{URL: uri, Reason: err.Error()}}
	}
	body, err := stylesheetBody(uri, resp)
	if err != nil {
		return nil, &NotFoundError{URI: uri, Err: err}
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func stylesheetBody(uri string, resp *Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: uri, StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}
	if resp.ContentType == "" {
		return resp.Body, nil
	}
	mediaType, params, err := mime.ParseMediaType(resp.ContentType)
	if err != nil {
		// Unparseable headers are ignored, as browsers do.
		return resp.Body, nil
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return nil, &FetchError{URL: uri, StatusCode: resp.StatusCode, Reason: "response is " + mediaType + ", not a stylesheet"}
	}
	if label, ok := params["charset"]; ok {
		return transcode(uri, label, resp.Body)
	}
	return resp.Body, nil
}
