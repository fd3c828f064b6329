package scripting

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

// GojaEngine runs a user-supplied JavaScript transform over page
// transcripts. The script must define a function
//
//	function transform(page, text) { return text; }
//
// which receives the zero-based page index and the transcript and returns
// the replacement text. A single runtime backs the engine, so calls must
// not be issued concurrently; the pipeline applies transforms sequentially
// after all pages have transcribed.
type GojaEngine struct {
	vm *goja.Runtime
	fn goja.Callable
}

// NewGojaEngine compiles the script and resolves its transform function.
func NewGojaEngine(script string) (*GojaEngine, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("compile script: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("transform"))
	if !ok {
		return nil, fmt.Errorf("script does not define a transform function")
	}
	return &GojaEngine{vm: vm, fn: fn}, nil
}

func (e *GojaEngine) TransformText(ctx context.Context, pageIndex int, text string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.fn(goja.Undefined(), e.vm.ToValue(pageIndex), e.vm.ToValue(text))
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return "", cause
			}
			return "", context.Canceled
		}
		return "", err
	}
	out, ok := val.Export().(string)
	if !ok {
		return "", fmt.Errorf("transform returned %T, want string", val.Export())
	}
	return out, nil
}
