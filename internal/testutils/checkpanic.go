package testutils

import (
	"fmt"
	"reflect"
	"strings"
)

// CheckPanic runs fun(args...), captures all panics() and returns whether a panic occurred.
// It does not re-raise or return the actual panic argument (unless the panic argument is a string starting with "reflect" -- likely an error raised from inside the reflect package by a malformed call to CheckPanic itself)
//
// This function is only used in testing.
func CheckPanic(fun interface{}, args ...interface{}) (didPanic bool) {
	didPanic = true
	funValue := reflect.ValueOf(fun)
	if funValue.Kind() != reflect.Func {
		panic("CheckPanic's first argument must be a function")
	}
	callArgs := make([]reflect.Value, len(args))
	for i := 0; i < len(args); i++ {
		callArgs[i] = reflect.ValueOf(args[i])
	}
	// By convention, errors from the reflect package have messages starting with the
	// package name; those indicate wrong usage of CheckPanic, so we re-raise them.
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		var errstring string
		switch err := err.(type) {
		case string:
			errstring = err
		case error:
			errstring = err.Error()
		case fmt.Stringer:
			errstring = err.String()
		default:
			return
		}
		if strings.HasPrefix(errstring, "reflect") {
			panic(err)
		}
	}()
	funValue.Call(callArgs)
	didPanic = false
	return
}
