package slash

import "fmt"

// ArgError names the argument whose decoding failed. Err is one of the arg
// package errors.
type ArgError struct {
	Name string
	Err  error
}

func (e *ArgError) Error() string { return fmt.Sprintf("argument %q: %v", e.Name, e.Err) }
func (e *ArgError) Unwrap() error { return e.Err }

// DispatchError names the command whose decoding failed.
type DispatchError struct {
	Name string
	Err  error
}

func (e *DispatchError) Error() string { return fmt.Sprintf("command %q: %v", e.Name, e.Err) }
func (e *DispatchError) Unwrap() error { return e.Err }

// UnknownCommandError is returned when no registered command has the
// invoked name.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string { return fmt.Sprintf("unknown command %q", e.Name) }
