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
	"encoding/json"
	"time"
)

// AppInfo describes a deployed application: a named grouping under which
// remote functions are registered.
type AppInfo struct {
	// Name is the application name, unique per workspace
	Name string `json:"name"`

	// State of the deployment: "deployed", "stopped"
	State string `json:"state,omitempty"`

	// FunctionCount is the number of functions registered under this app
	FunctionCount int `json:"function_count,omitempty"`

	// CreatedAt is when the app was first deployed
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// FunctionInfo describes a deployed function.
type FunctionInfo struct {
	// Name is the function name, unique within its app
	Name string `json:"name"`

	// App is the owning application name
	App string `json:"app"`

	// InputSchema is an optional JSON schema for the positional arguments,
	// expressed as a schema over an array. Empty means unvalidated.
	InputSchema map[string]any `json:"input_schema,omitempty"`

	// TimeoutSeconds is the platform-side execution timeout (0 = platform default)
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// InvokeStatus is the terminal status reported in an invoke envelope.
type InvokeStatus string

const (
	InvokeSuccess InvokeStatus = "success"
	InvokeFailure InvokeStatus = "failure"
)

// invokeRequest is the wire body for invoke and spawn.
type invokeRequest struct {
	// Args are the positional arguments, JSON-encoded as given
	Args []any `json:"args"`
}

// invokeEnvelope is the wire response for a synchronous invocation.
type invokeEnvelope struct {
	Status    InvokeStatus    `json:"status"`
	Output    json.RawMessage `json:"output,omitempty"`
	Error     string          `json:"error,omitempty"`
	Traceback string          `json:"traceback,omitempty"`
}

// spawnEnvelope is the wire response for an asynchronous invocation.
type spawnEnvelope struct {
	CallID string `json:"call_id"`
}

// InvokeResult is the outcome of a successful synchronous invocation.
type InvokeResult struct {
	// Output is the raw JSON value the function returned
	Output json.RawMessage
}

// CallState is the lifecycle state of an asynchronous call.
type CallState string

const (
	CallPending CallState = "pending"
	CallRunning CallState = "running"
	CallSuccess CallState = "success"
	CallFailure CallState = "failure"
)

// Terminal reports whether the state is final.
func (s CallState) Terminal() bool {
	return s == CallSuccess || s == CallFailure
}

// CallStatus is the platform's view of an asynchronous call.
type CallStatus struct {
	CallID    string          `json:"call_id"`
	State     CallState       `json:"state"`
	Output    json.RawMessage `json:"output,omitempty"`
	Error     string          `json:"error,omitempty"`
	Traceback string          `json:"traceback,omitempty"`
}
