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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestLookupFunction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/apps/legal-search-api/functions/generate_sparse_embedding_internal", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"generate_sparse_embedding_internal","app":"legal-search-api","timeout_seconds":120}`))
	})
	client := newTestClient(t, mux)

	fn, err := client.LookupFunction(context.Background(), "legal-search-api", "generate_sparse_embedding_internal")
	if err != nil {
		t.Fatalf("LookupFunction: %v", err)
	}
	if fn.App() != "legal-search-api" {
		t.Errorf("App() = %q, want legal-search-api", fn.App())
	}
	if fn.Name() != "generate_sparse_embedding_internal" {
		t.Errorf("Name() = %q, want generate_sparse_embedding_internal", fn.Name())
	}
	if fn.Info() == nil || fn.Info().TimeoutSeconds != 120 {
		t.Errorf("Info() = %+v, want timeout 120", fn.Info())
	}
}

func TestLookupFunctionNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"function not found"}`))
	})
	client := newTestClient(t, mux)

	_, err := client.LookupFunction(context.Background(), "legal-search-api", "no_such_function")
	if err == nil {
		t.Fatal("expected error for missing function")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, err = %v", err)
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nfe.Kind != "function" || nfe.App != "legal-search-api" || nfe.Name != "no_such_function" {
		t.Errorf("NotFoundError = %+v", nfe)
	}
}

func TestLookupFunctionEmptyNames(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	if _, err := client.LookupFunction(context.Background(), "", "fn"); err == nil {
		t.Error("expected error for empty app name")
	}
	if _, err := client.LookupFunction(context.Background(), "app", ""); err == nil {
		t.Error("expected error for empty function name")
	}
}

func TestRemote(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/apps/legal-search-api/functions/generate_sparse_embedding_internal/invoke", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","output":{"indices":[3,17],"values":[0.5,1.25]}}`))
	})
	client := newTestClient(t, mux)

	fn := client.App("legal-search-api").Function("generate_sparse_embedding_internal")
	result, err := fn.Remote(context.Background(), "test query")
	if err != nil {
		t.Fatalf("Remote: %v", err)
	}
	if gotBody != `{"args":["test query"]}` {
		t.Errorf("request body = %s", gotBody)
	}

	var output struct {
		Indices []int32   `json:"indices"`
		Values  []float32 `json:"values"`
	}
	if err := result.DecodeInto(&output); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	if len(output.Indices) != 2 || output.Indices[1] != 17 {
		t.Errorf("output = %+v", output)
	}
}

func TestRemoteNoArgs(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"status":"success","output":null}`))
	})
	client := newTestClient(t, mux)

	if _, err := client.App("a").Function("f").Remote(context.Background()); err != nil {
		t.Fatalf("Remote: %v", err)
	}
	if gotBody != `{"args":[]}` {
		t.Errorf("request body = %s, want empty args array", gotBody)
	}
}

func TestRemoteRemoteError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"failure","error":"model not loaded","traceback":"Traceback (most recent call last): ..."}`))
	})
	client := newTestClient(t, mux)

	_, err := client.App("legal-search-api").Function("generate_sparse_embedding_internal").Remote(context.Background(), "test query")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.Message != "model not loaded" {
		t.Errorf("Message = %q", remoteErr.Message)
	}
	if remoteErr.Traceback == "" {
		t.Error("expected traceback to be preserved")
	}
}

func TestRemoteBadGateway(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"function crashed","traceback":"Traceback (most recent call last): ..."}`))
	})
	client := newTestClient(t, mux)

	_, err := client.App("legal-search-api").Function("generate_sparse_embedding_internal").Remote(context.Background(), "test query")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError for 502 invoke, got %T: %v", err, err)
	}
	if remoteErr.Message != "function crashed" {
		t.Errorf("Message = %q", remoteErr.Message)
	}
	if remoteErr.Traceback == "" {
		t.Error("expected traceback from the error envelope")
	}
}

func TestRemoteBadGatewayWithoutEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream error"))
	})
	client := newTestClient(t, mux)

	_, err := client.App("a").Function("f").Remote(context.Background(), "x")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.Message != "upstream error" {
		t.Errorf("Message = %q", remoteErr.Message)
	}
}

func TestRemoteAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"platform overloaded"}`))
	})
	client := newTestClient(t, mux)

	_, err := client.App("a").Function("f").Remote(context.Background(), "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "platform overloaded" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestRemoteSendsBearerToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","output":1}`))
	})
	client := newTestClient(t, mux, WithToken("fb-secret"))

	if _, err := client.App("a").Function("f").Remote(context.Background(), "x"); err != nil {
		t.Fatalf("Remote: %v", err)
	}
	if gotAuth != "Bearer fb-secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestListApps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/apps", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"legal-search-api","state":"deployed","function_count":4}]`))
	})
	client := newTestClient(t, mux)

	apps, err := client.ListApps(context.Background())
	if err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if len(apps) != 1 || apps[0].Name != "legal-search-api" || apps[0].FunctionCount != 4 {
		t.Errorf("apps = %+v", apps)
	}
}

func TestListFunctions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/apps/legal-search-api/functions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"generate_sparse_embedding_internal","app":"legal-search-api"},{"name":"search","app":"legal-search-api"}]`))
	})
	client := newTestClient(t, mux)

	functions, err := client.ListFunctions(context.Background(), "legal-search-api")
	if err != nil {
		t.Fatalf("ListFunctions: %v", err)
	}
	if len(functions) != 2 || functions[1].Name != "search" {
		t.Errorf("functions = %+v", functions)
	}
}

func TestSpawnAndResult(t *testing.T) {
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/apps/a/functions/f/spawn", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"call_id":"ca-123"}`))
	})
	mux.HandleFunc("GET /v1/calls/ca-123", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 3 {
			w.Write([]byte(`{"call_id":"ca-123","state":"running"}`))
			return
		}
		w.Write([]byte(`{"call_id":"ca-123","state":"success","output":"done"}`))
	})
	client := newTestClient(t, mux)

	call, err := client.App("a").Function("f").Spawn(context.Background(), "x")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if call.ID() != "ca-123" {
		t.Errorf("ID() = %q", call.ID())
	}

	call.PollInterval = time.Millisecond
	result, err := call.Result(context.Background())
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.String() != `"done"` {
		t.Errorf("output = %s", result.String())
	}
	if polls < 3 {
		t.Errorf("polls = %d, want at least 3", polls)
	}
}

func TestResultFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/calls/ca-err", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"call_id":"ca-err","state":"failure","error":"boom"}`))
	})
	client := newTestClient(t, mux)

	call := &FunctionCall{id: "ca-err", client: client, PollInterval: time.Millisecond}
	_, err := call.Result(context.Background())
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.Message != "boom" {
		t.Errorf("Message = %q", remoteErr.Message)
	}
}

func TestResultContextCancel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"call_id":"ca-slow","state":"pending"}`))
	})
	client := newTestClient(t, mux)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	call := &FunctionCall{id: "ca-slow", client: client, PollInterval: 5 * time.Millisecond}
	_, err := call.Result(ctx)
	if err == nil {
		t.Fatal("expected error after context timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestValidateArgs(t *testing.T) {
	info := FunctionInfo{
		Name: "generate_sparse_embedding_internal",
		App:  "legal-search-api",
		InputSchema: map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 1,
			"maxItems": 1,
		},
	}

	if err := info.ValidateArgs([]any{"test query"}); err != nil {
		t.Errorf("valid args rejected: %v", err)
	}
	if err := info.ValidateArgs([]any{42}); err == nil {
		t.Error("expected error for non-string argument")
	}
	if err := info.ValidateArgs(nil); err == nil {
		t.Error("expected error for missing argument")
	}

	// No schema accepts anything
	unvalidated := FunctionInfo{Name: "f", App: "a"}
	if err := unvalidated.ValidateArgs([]any{1, "two", true}); err != nil {
		t.Errorf("schemaless function rejected args: %v", err)
	}
}
