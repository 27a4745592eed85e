package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation is a parsed GraphQL document holding exactly one operation.
type Operation struct {
	// Name is the operation name sent as operationName. It is empty for
	// anonymous operations.
	Name  string
	Kind  ast.Operation
	Query string
}

// ParseOperation parses src and returns its single operation. Documents
// with syntax errors, no operation, or more than one operation are rejected.
func ParseOperation(src string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: src})
	if err != nil {
		return Operation{}, fmt.Errorf("graphql: parse operation: %w", err)
	}
	switch len(doc.Operations) {
	case 0:
		return Operation{}, fmt.Errorf("graphql: parse operation: document has no operation")
	case 1:
	default:
		return Operation{}, fmt.Errorf("graphql: parse operation: document has %d operations, want 1", len(doc.Operations))
	}
	def := doc.Operations[0]
	return Operation{
		Name:  def.Name,
		Kind:  def.Operation,
		Query: src,
	}, nil
}

// MustParseOperation is like ParseOperation but panics on error. It is meant
// for package-level operation documents.
func MustParseOperation(src string) Operation {
	op, err := ParseOperation(src)
	if err != nil {
		panic(err)
	}
	return op
}

// String returns a short label such as "query GetGames".
func (o Operation) String() string {
	name := o.Name
	if name == "" {
		name = "(anonymous)"
	}
	return string(o.Kind) + " " + name
}
