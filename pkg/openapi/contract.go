package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrEmptyDocument is returned when loading an empty payload.
	ErrEmptyDocument = errors.New("openapi: raw document is empty")
	// ErrUnknownOperation is returned for method/path pairs the contract
	// does not declare.
	ErrUnknownOperation = errors.New("openapi: unknown operation")
)

const jsonMediaType = "application/json"

// Operation is the public summary of one declared endpoint.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	HasBody bool
}

// Contract is a loaded and validated OpenAPI document. It is immutable and
// safe for concurrent use.
type Contract struct {
	raw        []byte
	title      string
	version    string
	operations []Operation
	bodies     map[string]*openapi3.Schema
}

// Load parses raw (YAML or JSON), resolves references, and validates the
// document.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}

	contract := &Contract{
		raw:    append([]byte(nil), raw...),
		bodies: make(map[string]*openapi3.Schema),
	}
	if doc.Info != nil {
		contract.title = doc.Info.Title
		contract.version = doc.Info.Version
	}

	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				contract.collect(strings.ToUpper(method), path, op)
			}
		}
	}
	sort.Slice(contract.operations, func(i, j int) bool {
		if contract.operations[i].Path == contract.operations[j].Path {
			return contract.operations[i].Method < contract.operations[j].Method
		}
		return contract.operations[i].Path < contract.operations[j].Path
	})
	return contract, nil
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default returns the contract built from the embedded document.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), embeddedSpec)
	})
	return defaultContract, defaultErr
}

func (c *Contract) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	summary := Operation{
		ID:      op.OperationID,
		Method:  method,
		Path:    path,
		Summary: op.Summary,
	}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if media := op.RequestBody.Value.Content.Get(jsonMediaType); media != nil && media.Schema != nil && media.Schema.Value != nil {
			c.bodies[operationKey(method, path)] = media.Schema.Value
			summary.HasBody = true
		}
	}
	c.operations = append(c.operations, summary)
}

// Raw returns a copy of the source document.
func (c *Contract) Raw() []byte {
	return append([]byte(nil), c.raw...)
}

// Title returns info.title.
func (c *Contract) Title() string { return c.title }

// Version returns info.version.
func (c *Contract) Version() string { return c.version }

// Operations lists declared operations sorted by path, then method.
func (c *Contract) Operations() []Operation {
	return append([]Operation(nil), c.operations...)
}

// Operation looks up a declared operation.
func (c *Contract) Operation(method, path string) (Operation, bool) {
	method = strings.ToUpper(method)
	for _, op := range c.operations {
		if op.Method == method && op.Path == path {
			return op, true
		}
	}
	return Operation{}, false
}

func operationKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
