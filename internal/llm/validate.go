package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas, keyed by Schema.Name.
var schemas sync.Map

// checkJSON extracts the JSON value from a structured reply and validates
// it against schema. The cleaned value is returned so callers can decode
// it directly. A nil schema disables the check.
func checkJSON(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	content := extractJSON(raw)
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compile(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return content, nil
}

// extractJSON strips a markdown code fence or surrounding prose from a
// reply. Grounded requests cannot always force a JSON mime type, so
// models sometimes answer "Here you go: ```json {...} ```".
func extractJSON(raw []byte) json.RawMessage {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || b[0] == '{' || b[0] == '[' {
		return b
	}
	start := bytes.IndexAny(b, "{[")
	if start < 0 {
		return b
	}
	closer := byte('}')
	if b[start] == '[' {
		closer = ']'
	}
	end := bytes.LastIndexByte(b, closer)
	if end < start {
		return b
	}
	return b[start : end+1]
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON document, not Go maps with typed
	// slices, so round-trip the definition.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := schemas.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// Decode unmarshals a structured response into v. Failures are reported
// as *ErrInvalidResponse.
func Decode(resp *Response, v any) error {
	if resp == nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("no response")}
	}
	if err := json.Unmarshal(extractJSON(resp.Content), v); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return nil
}

// finish applies the checks every provider shares to a raw reply: a
// structured reply cut off at the token limit is unrecoverable, anything
// else must pass its schema.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema != nil && resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	content, err := checkJSON(req.Schema, resp.Content)
	if err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}
