// stdlib_http.go — the 'http' module.
//
// http.get is a suspension point: the fetch runs under the evaluation's
// context, so cancelling the evaluation cancels the request.
package olojs

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

func httpModule() Value {
	return NamespaceVal(moduleNS(
		"get", NativeFn("get", func(ctx context.Context, args []Value) (Value, error) {
			url, err := wantString("http.get", tupleOf(args))
			if err != nil {
				return Nothing, err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return Nothing, err
			}
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				return Nothing, err
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusOK {
				return Nothing, fmt.Errorf("GET %s: %s", url, res.Status)
			}
			body, err := io.ReadAll(res.Body)
			if err != nil {
				return Nothing, err
			}
			return String(string(body)), nil
		}),
	))
}
