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
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonschema"
)

// ValidateArgs validates positional arguments against the function's
// declared input schema, if any. The schema is a JSON schema over the
// args array. An empty schema accepts everything.
//
// This is a client-side guard: the platform enforces the same schema
// server-side, but failing before the request avoids burning an
// invocation on input the function will reject anyway.
func (fi *FunctionInfo) ValidateArgs(args []any) error {
	if len(fi.InputSchema) == 0 {
		return nil
	}

	// Create a new compiler with sonic JSON encoder/decoder for consistency
	compiler := jsonschema.NewCompiler()
	compiler.WithDecoderJSON(sonic.Unmarshal)
	compiler.WithEncoderJSON(sonic.Marshal)

	schemaBytes, err := sonic.Marshal(fi.InputSchema)
	if err != nil {
		return fmt.Errorf("marshalling input schema: %w", err)
	}

	compiledSchema, err := compiler.Compile(schemaBytes)
	if err != nil {
		return fmt.Errorf("compiling input schema: %w", err)
	}

	result := compiledSchema.Validate(normalizeArgs(args))
	if result.IsValid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors))
	for field, e := range result.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e.Message))
	}
	return fmt.Errorf("arguments do not match input schema of %s/%s: %s",
		fi.App, fi.Name, strings.Join(messages, "; "))
}
