package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
)

var (
	panicHooksMu sync.Mutex
	panicHooks   []func()
)

// OnPanic registers f to run before a recovered panic exits the process,
// e.g. to give the terminal back.
func OnPanic(f func()) {
	panicHooksMu.Lock()
	defer panicHooksMu.Unlock()
	panicHooks = append(panicHooks, f)
}

func Run(f func()) {
	go func() {
		defer Recover()
		f()
	}()
}

func Recover() {
	if r := recover(); r != nil {
		HandlePanic(r)
	}
}

func HandlePanic(panic any) {
	defer os.Exit(1)

	runPanicHooks()

	buf := make([]byte, 100000)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	fmt.Fprintf(os.Stderr, "Panic: %v\n\n%s\n\n", panic, string(buf))
}

// runPanicHooks runs the registered hooks, latest first.
func runPanicHooks() {
	panicHooksMu.Lock()
	defer panicHooksMu.Unlock()
	for i := len(panicHooks) - 1; i >= 0; i-- {
		panicHooks[i]()
	}
}
