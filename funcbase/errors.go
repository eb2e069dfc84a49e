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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/funcbase/funcbase-go/libfb/json"
)

// ErrNotFound reports that an application or function does not exist on
// the platform. Use errors.Is against lookup errors.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the platform API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("received status %d: %s", e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a response body. The platform
// returns {"error": "..."} envelopes; anything else is kept verbatim.
func newAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		message = envelope.Error
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// NotFoundError reports a failed lookup of a named resource.
type NotFoundError struct {
	// Kind is "app" or "function".
	Kind string
	// App is the application name.
	App string
	// Name is the function name, empty for app lookups.
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.App)
	}
	return fmt.Sprintf("%s %q not found in app %q", e.Kind, e.Name, e.App)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RemoteError is raised by the deployed function during execution. The
// platform reports it in the invoke envelope; the traceback is whatever
// the function runtime captured, and may be empty.
type RemoteError struct {
	Message   string
	Traceback string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote function error: %s", e.Message)
}

// notFoundOr converts a 404 APIError into a NotFoundError for the given
// resource, leaving other errors untouched.
func notFoundOr(err error, kind, app, name string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{Kind: kind, App: app, Name: name}
	}
	return err
}

// remoteErrOr converts a 502 APIError into a RemoteError. The platform
// answers 502 when the function raised before it could produce a success
// envelope; the body still carries the error envelope with the traceback.
func remoteErrOr(err error, body []byte) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway {
		return err
	}
	var envelope struct {
		Error     string `json:"error"`
		Traceback string `json:"traceback,omitempty"`
	}
	if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error != "" {
		return &RemoteError{Message: envelope.Error, Traceback: envelope.Traceback}
	}
	return &RemoteError{Message: apiErr.Message}
}
