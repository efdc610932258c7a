// Package tool provides the tool registry, argument binding, and dispatch
// layer that every handler group plugs into.
package tool

import "context"

// ParamType enumerates the argument types a tool parameter may declare.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeInt        ParamType = "integer"
	TypeBool       ParamType = "boolean"
	TypeStringList ParamType = "string list"
)

// Param declares a single named parameter of a tool.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any // ignored for required params
	Description string
}

// Args is the bound argument set passed to a handler. Values are normalized
// by the binder, so the typed getters are safe for declared parameters.
type Args map[string]any

// String returns a string argument, or "" if absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns an integer argument, or 0 if absent.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// Bool returns a boolean argument, or false if absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// StringList returns a string-list argument, or nil if absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// Has reports whether the argument was supplied by the caller or filled from
// a non-nil default.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Handler is the implementation of a tool: bound arguments in, display text
// out. A returned error is rendered by the dispatcher, never propagated.
type Handler func(ctx context.Context, args Args) (string, error)

// Descriptor is the identity of a callable tool. Descriptors are created at
// startup when each handler group registers its tools and never mutated.
type Descriptor struct {
	Name    string
	Summary string
	Params  []Param
	Handler Handler
}

// Request is one inbound invocation: a tool name plus a raw argument bag as
// decoded from JSON.
type Request struct {
	Name      string
	Arguments map[string]any
}

// Result is the outcome envelope produced by dispatch. Exactly one variant
// applies: IsError false carries a success payload, IsError true carries a
// rendered failure message. Neither is fatal to the process.
type Result struct {
	Text    string
	IsError bool
}

// Success wraps handler output in a success envelope.
func Success(text string) Result { return Result{Text: text} }

// Failure wraps a rendered error message in a failure envelope.
func Failure(text string) Result { return Result{Text: text, IsError: true} }
