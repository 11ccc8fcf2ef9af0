package vm

import "fmt"

// DecodeError, StackError and ControlFlowError are the three context-fatal
// error categories from the error taxonomy: each aborts the context that
// raised it (every context, when that is context 0), never the scheduler
// (DESIGN.md Open Question 6).

type DecodeError struct {
	PC  uint32
	Msg string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode error at pc=%d: %s", e.PC, e.Msg) }

type StackError struct {
	PC  uint32
	Msg string
}

func (e *StackError) Error() string { return fmt.Sprintf("stack error at pc=%d: %s", e.PC, e.Msg) }

type ControlFlowError struct {
	PC     uint32
	Target uint32
	Msg    string
}

func (e *ControlFlowError) Error() string {
	return fmt.Sprintf("control-flow error at pc=%d targeting %d: %s", e.PC, e.Target, e.Msg)
}
