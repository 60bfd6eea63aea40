// Package script executes Lua drawing scripts against an easel command
// list. It provides a sandboxed runtime with CPU and memory limits, a
// canvas_* drawing API for scripts, and a file watcher for hot reload.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// Config contains configuration options for the script engine.
type Config struct {
	// CPULimit is the Lua instruction budget per execution.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes a script can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives Lua print output. If nil, os.Stdout is used.
	Stdout io.Writer
}

// DefaultConfig returns a Config with sensible default limits:
// 10,000,000 instructions and 50 MB of memory.
func DefaultConfig() Config {
	return Config{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Engine wraps a Lua runtime with resource-limited execution. Methods
// are safe for concurrent use; in practice the game loop and a reload
// watcher may touch it from two goroutines.
type Engine struct {
	config  Config
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.Mutex
}

// NewEngine creates an Engine with the Lua standard libraries loaded.
func NewEngine(config Config) (*Engine, error) {
	output := &bytes.Buffer{}
	stdout := config.Stdout
	if stdout == nil {
		stdout = output
	} else {
		// Capture output while also writing to the configured stdout.
		stdout = io.MultiWriter(stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &Engine{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

// LoadString compiles a Lua chunk. The returned closure runs via Execute.
func (e *Engine) LoadString(name, code string) (*rt.Closure, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	closure, err := e.runtime.CompileAndLoadLuaChunk(
		name,
		[]byte(code),
		rt.TableValue(e.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return closure, nil
}

// LoadFile reads and compiles a Lua file from disk.
func (e *Engine) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	closure, err := e.runtime.CompileAndLoadLuaChunk(
		path,
		content,
		rt.TableValue(e.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return closure, nil
}

// Execute runs a compiled closure within the configured resource limits.
func (e *Engine) Execute(closure *rt.Closure) (rt.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    e.config.CPULimit,
			Memory: e.config.MemoryLimit,
		},
	}
	e.runtime.PushContext(ctx)
	defer e.runtime.PopContext()

	thread := e.runtime.MainThread()
	result, err := rt.Call1(thread, rt.FunctionValue(closure))
	if err != nil {
		return rt.NilValue, fmt.Errorf("run script: %w", err)
	}
	return result, nil
}

// ExecuteString compiles and runs a Lua code string.
func (e *Engine) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := e.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return e.Execute(closure)
}

// SetGlobal sets a global variable in the Lua environment.
func (e *Engine) SetGlobal(name string, value rt.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// SetGoFunction registers a Go function in the Lua global environment.
// The function is declared memory-safe and CPU-safe so it stays callable
// under resource limits.
func (e *Engine) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	e.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// Output returns the captured output from Lua print statements.
func (e *Engine) Output() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.output.String()
}

// Close releases the runtime's standard library resources.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}
