package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/Yester03/ipinfotool/intellib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(ioutil.Discard, resp) // nolint: errcheck
	resp.Close()
}

// fetchJSON issues one GET request and decodes the body into a raw map
// for the normalizers. A body which is not a JSON object is a
// parse-error; transport and status failures come back from the client
// as they are.
func fetchJSON(ctx context.Context,
	client intellib.HTTPClient,
	url string,
	headers http.Header) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	for name := range headers {
		req.Header.Set(name, headers.Get(name))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	raw := map[string]interface{}{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&raw); err != nil {
		return nil, intellib.NewLookupError(intellib.ErrorKindParse,
			fmt.Errorf("cannot parse a response: %w", err))
	}

	return raw, nil
}
