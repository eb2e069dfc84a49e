/*
Copyright 2026 The Funcbase Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package funcbase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/funcbase/funcbase-go/libfb/json"
)

// Function is a callable handle: a local proxy for a function deployed
// under an application on the platform.
type Function struct {
	app    string
	name   string
	client *Client

	// info is set when the handle came from a verified lookup
	info *FunctionInfo
}

// App returns the owning application name.
func (f *Function) App() string {
	return f.app
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.name
}

// Info returns the function metadata from lookup, or nil for handles
// constructed locally via App.Function.
func (f *Function) Info() *FunctionInfo {
	return f.info
}

// ListFunctions lists the functions registered under an application.
func (c *Client) ListFunctions(ctx context.Context, app string) ([]FunctionInfo, error) {
	if app == "" {
		return nil, fmt.Errorf("empty app name")
	}
	respBody, err := c.sendRequest(ctx, http.MethodGet, c.apiURL("apps", app, "functions"), "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing functions: %w", notFoundOr(err, "app", app, ""))
	}

	var functions []FunctionInfo
	if err := json.Unmarshal(respBody, &functions); err != nil {
		return nil, fmt.Errorf("parsing list functions response: %w", err)
	}

	return functions, nil
}

// LookupFunction resolves a callable handle by application and function
// name. The names must match the deployed registration exactly. A missing
// app or function yields a NotFoundError.
func (c *Client) LookupFunction(ctx context.Context, app, name string) (*Function, error) {
	if app == "" {
		return nil, fmt.Errorf("empty app name")
	}
	if name == "" {
		return nil, fmt.Errorf("empty function name")
	}
	respBody, err := c.sendRequest(ctx, http.MethodGet, c.apiURL("apps", app, "functions", name), "", nil)
	if err != nil {
		return nil, fmt.Errorf("looking up function: %w", notFoundOr(err, "function", app, name))
	}

	var info FunctionInfo
	if err := json.Unmarshal(respBody, &info); err != nil {
		return nil, fmt.Errorf("parsing function response: %w", err)
	}

	return &Function{app: app, name: name, client: c, info: &info}, nil
}

// Remote invokes the function synchronously with the given positional
// arguments and blocks until the remote call returns. Exactly one HTTP
// request is issued; there are no retries. A remote-side execution
// failure surfaces as a RemoteError.
func (f *Function) Remote(ctx context.Context, args ...any) (*InvokeResult, error) {
	if err := f.client.waitLimiter(ctx); err != nil {
		return nil, err
	}
	if f.info != nil {
		if err := f.info.ValidateArgs(args); err != nil {
			return nil, fmt.Errorf("validating arguments: %w", err)
		}
	}

	body, err := json.Marshal(invokeRequest{Args: normalizeArgs(args)})
	if err != nil {
		return nil, fmt.Errorf("marshalling invoke request: %w", err)
	}

	invokeURL := f.client.apiURL("apps", f.app, "functions", f.name, "invoke")
	f.client.logger.Debug("invoking function",
		zap.String("app", f.app),
		zap.String("function", f.name),
	)

	respBody, err := f.client.sendRequest(ctx, http.MethodPost, invokeURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		err = remoteErrOr(notFoundOr(err, "function", f.app, f.name), respBody)
		return nil, fmt.Errorf("invoking function: %w", err)
	}

	var envelope invokeEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("parsing invoke response: %w", err)
	}
	if envelope.Status == InvokeFailure {
		return nil, &RemoteError{Message: envelope.Error, Traceback: envelope.Traceback}
	}

	return &InvokeResult{Output: envelope.Output}, nil
}

// Spawn starts the function asynchronously and returns a call handle
// without waiting for it to finish.
func (f *Function) Spawn(ctx context.Context, args ...any) (*FunctionCall, error) {
	if err := f.client.waitLimiter(ctx); err != nil {
		return nil, err
	}
	if f.info != nil {
		if err := f.info.ValidateArgs(args); err != nil {
			return nil, fmt.Errorf("validating arguments: %w", err)
		}
	}

	body, err := json.Marshal(invokeRequest{Args: normalizeArgs(args)})
	if err != nil {
		return nil, fmt.Errorf("marshalling spawn request: %w", err)
	}

	spawnURL := f.client.apiURL("apps", f.app, "functions", f.name, "spawn")
	respBody, err := f.client.sendRequest(ctx, http.MethodPost, spawnURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("spawning function: %w", notFoundOr(err, "function", f.app, f.name))
	}

	var envelope spawnEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("parsing spawn response: %w", err)
	}
	if envelope.CallID == "" {
		return nil, fmt.Errorf("spawn response missing call_id")
	}

	return &FunctionCall{id: envelope.CallID, client: f.client}, nil
}

// DecodeInto decodes the raw output into v.
func (r *InvokeResult) DecodeInto(v any) error {
	if err := json.Unmarshal(r.Output, v); err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	return nil
}

// String returns the raw JSON output as a string.
func (r *InvokeResult) String() string {
	return string(r.Output)
}

// normalizeArgs guarantees a non-nil slice so the wire body always
// carries an args array.
func normalizeArgs(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}
