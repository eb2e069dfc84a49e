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
	"time"

	"github.com/funcbase/funcbase-go/libfb/json"
)

// defaultPollInterval is how often Result polls a non-terminal call.
const defaultPollInterval = 500 * time.Millisecond

// FunctionCall is a handle on an asynchronous invocation started with Spawn.
type FunctionCall struct {
	id     string
	client *Client

	// PollInterval overrides the default polling cadence of Result
	PollInterval time.Duration
}

// ID returns the platform-assigned call identifier.
func (fc *FunctionCall) ID() string {
	return fc.id
}

// Status fetches the current state of the call.
func (fc *FunctionCall) Status(ctx context.Context) (*CallStatus, error) {
	respBody, err := fc.client.sendRequest(ctx, http.MethodGet, fc.client.apiURL("calls", fc.id), "", nil)
	if err != nil {
		return nil, fmt.Errorf("getting call status: %w", err)
	}

	var status CallStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("parsing call status: %w", err)
	}

	return &status, nil
}

// Result polls the call until it reaches a terminal state and returns the
// outcome. Cancellation is honored through ctx; callers that need a
// deadline should use context.WithTimeout. A failed call surfaces as a
// RemoteError.
func (fc *FunctionCall) Result(ctx context.Context) (*InvokeResult, error) {
	interval := fc.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := fc.Status(ctx)
		if err != nil {
			return nil, err
		}
		switch status.State {
		case CallSuccess:
			return &InvokeResult{Output: status.Output}, nil
		case CallFailure:
			return nil, &RemoteError{Message: status.Error, Traceback: status.Traceback}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for call %s: %w", fc.id, ctx.Err())
		case <-ticker.C:
		}
	}
}
