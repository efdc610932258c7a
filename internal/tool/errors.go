package tool

import "fmt"

// DuplicateToolNameError reports a second registration under a taken name.
// This is a configuration error and surfaces at startup, not per call.
type DuplicateToolNameError struct {
	Name string
}

func (e *DuplicateToolNameError) Error() string {
	return fmt.Sprintf("duplicate tool name: %s", e.Name)
}

// UnknownToolError reports a call against a name absent from the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// MissingArgumentError reports an absent required parameter.
type MissingArgumentError struct {
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Param)
}

// UnknownArgumentError reports an argument key not declared on the
// descriptor. Binding is strict so caller typos are not silently dropped.
type UnknownArgumentError struct {
	Key string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument: %s", e.Key)
}

// ArgumentTypeError reports a value whose type does not match the declared
// parameter type.
type ArgumentTypeError struct {
	Param    string
	Expected ParamType
	Received string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("argument %s: expected %s, received %s", e.Param, e.Expected, e.Received)
}
