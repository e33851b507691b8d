// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaName = "manifest-schema.json"

var compiledSchema = func() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("embedded manifest schema is not valid JSON: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, doc); err != nil {
		panic(fmt.Sprintf("failed to register manifest schema: %v", err))
	}
	sch, err := compiler.Compile(schemaName)
	if err != nil {
		panic(fmt.Sprintf("embedded manifest schema does not compile: %v", err))
	}
	return sch
}()

// ValidateSchema checks a raw manifest document against the embedded JSON
// Schema, before any decoding into typed structs.
func ValidateSchema(contents []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(contents))
	if err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(inst); err != nil {
		return err
	}
	return nil
}
