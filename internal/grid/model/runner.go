package model

import (
	"context"
	"fmt"
)

// StepRunner advances a simulation by one step.
type StepRunner interface {
	Step(step int) error
}

// StepLogic computes next from current. next starts out all-default.
type StepLogic[E comparable] func(current Readable[E], next Writable[E], step int) error

// SyncRunner double-buffers two models: every step reads only the current
// generation and writes only the next one, then the buffers swap.
type SyncRunner[E comparable] struct {
	logic   StepLogic[E]
	current Writable[E]
	next    Writable[E]
}

// NewSyncRunner takes ownership of initial.
func NewSyncRunner[E comparable](initial Writable[E], logic StepLogic[E]) *SyncRunner[E] {
	return &SyncRunner[E]{
		logic:   logic,
		current: initial,
		next:    initial.CopyWithDefaultEntity(),
	}
}

// Step runs the logic and swaps buffers. On error the buffers are left
// unswapped and the next buffer is cleared.
func (r *SyncRunner[E]) Step(step int) error {
	if err := r.logic(r.current, r.next, step); err != nil {
		r.next.Clear()
		return fmt.Errorf("model: step %d: %w", step, err)
	}
	r.current, r.next = r.next, r.current
	r.next.Clear()
	return nil
}

// Current returns the latest generation.
func (r *SyncRunner[E]) Current() Writable[E] { return r.current }

// AsyncRunner mutates a single model in place, for agent-style logic where
// later updates in a step observe earlier ones.
type AsyncRunner[E comparable] struct {
	model Writable[E]
	logic func(m Writable[E], step int) error
}

func NewAsyncRunner[E comparable](m Writable[E], logic func(m Writable[E], step int) error) *AsyncRunner[E] {
	return &AsyncRunner[E]{model: m, logic: logic}
}

func (r *AsyncRunner[E]) Step(step int) error {
	if err := r.logic(r.model, step); err != nil {
		return fmt.Errorf("model: step %d: %w", step, err)
	}
	return nil
}

func (r *AsyncRunner[E]) Current() Writable[E] { return r.model }

// Termination decides whether a simulation is finished after step steps.
type Termination[E comparable] func(m Readable[E], step int) bool

func (t Termination[E]) And(other Termination[E]) Termination[E] {
	return func(m Readable[E], step int) bool { return t(m, step) && other(m, step) }
}

func (t Termination[E]) Or(other Termination[E]) Termination[E] {
	return func(m Readable[E], step int) bool { return t(m, step) || other(m, step) }
}

func (t Termination[E]) Not() Termination[E] {
	return func(m Readable[E], step int) bool { return !t(m, step) }
}

// Never keeps the simulation running.
func Never[E comparable]() Termination[E] {
	return func(Readable[E], int) bool { return false }
}

// AfterSteps finishes once n steps have run.
func AfterSteps[E comparable](n int) Termination[E] {
	return func(_ Readable[E], step int) bool { return step >= n }
}

// WhenEmpty finishes once every cell holds the default entity.
func WhenEmpty[E comparable]() Termination[E] {
	return func(m Readable[E], _ int) bool { return IsEmpty(m) }
}

// ExecutionResult summarizes an ExecuteSteps call.
type ExecutionResult struct {
	StepCount   int  // total steps executed so far
	Executed    int  // steps executed by this call
	Finished    bool // termination condition reached
	Interrupted bool // context cancelled
}

// Executor drives a StepRunner and tracks the step count.
type Executor[E comparable] struct {
	runner      StepRunner
	current     func() Readable[E]
	termination Termination[E]
	steps       int
}

// NewExecutor wires a runner with a view of its current model.
func NewExecutor[E comparable](runner StepRunner, current func() Readable[E], termination Termination[E]) *Executor[E] {
	if termination == nil {
		termination = Never[E]()
	}
	return &Executor[E]{runner: runner, current: current, termination: termination}
}

func (e *Executor[E]) StepCount() int       { return e.steps }
func (e *Executor[E]) Current() Readable[E] { return e.current() }
func (e *Executor[E]) IsFinished() bool     { return e.termination(e.current(), e.steps) }

// ExecuteStep runs exactly one step.
func (e *Executor[E]) ExecuteStep() error {
	if err := e.runner.Step(e.steps); err != nil {
		return err
	}
	e.steps++
	return nil
}

// ExecuteSteps runs up to count steps. It stops early when ctx is done or,
// if checkTermination is set, when the termination condition holds.
// onStep, if non-nil, runs after every step.
func (e *Executor[E]) ExecuteSteps(ctx context.Context, count int, checkTermination bool, onStep func(step int)) (ExecutionResult, error) {
	before := e.steps
	result := func(finished, interrupted bool) ExecutionResult {
		return ExecutionResult{StepCount: e.steps, Executed: e.steps - before, Finished: finished, Interrupted: interrupted}
	}

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return result(false, true), nil
		}
		if err := e.ExecuteStep(); err != nil {
			return result(false, false), err
		}
		if onStep != nil {
			onStep(e.steps)
		}
		if checkTermination && e.IsFinished() {
			return result(true, false), nil
		}
	}
	return result(false, false), nil
}
