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
	"context"
	"fmt"
	"net/http"

	"github.com/funcbase/funcbase-go/libfb/json"
)

// App is a local handle on a named application. Constructing one performs
// no I/O; the name is resolved when a function is looked up or invoked.
type App struct {
	name   string
	client *Client
}

// App returns a handle for the named application.
func (c *Client) App(name string) *App {
	return &App{name: name, client: c}
}

// Name returns the application name.
func (a *App) Name() string {
	return a.name
}

// Function returns a local callable handle for the named function without
// verifying it exists. Use Client.LookupFunction for a verified handle.
func (a *App) Function(name string) *Function {
	return &Function{app: a.name, name: name, client: a.client}
}

// ListApps lists all deployed applications.
func (c *Client) ListApps(ctx context.Context) ([]AppInfo, error) {
	respBody, err := c.sendRequest(ctx, http.MethodGet, c.apiURL("apps"), "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}

	var apps []AppInfo
	if err := json.Unmarshal(respBody, &apps); err != nil {
		return nil, fmt.Errorf("parsing list apps response: %w", err)
	}

	return apps, nil
}

// GetApp fetches the deployment state of a named application.
func (c *Client) GetApp(ctx context.Context, name string) (*AppInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("empty app name")
	}
	respBody, err := c.sendRequest(ctx, http.MethodGet, c.apiURL("apps", name), "", nil)
	if err != nil {
		return nil, fmt.Errorf("getting app: %w", notFoundOr(err, "app", name, ""))
	}

	var app AppInfo
	if err := json.Unmarshal(respBody, &app); err != nil {
		return nil, fmt.Errorf("parsing app response: %w", err)
	}

	return &app, nil
}
