package vm

import (
	"github.com/vorin-lang/vorin/opcodes"
	"github.com/vorin-lang/vorin/values"
)

// Placeholder executors for instruction types not yet fully implemented
// These provide basic structure for future implementation

// ControlFlowExecutor handles control flow operations
type ControlFlowExecutor struct {
	*BaseExecutor
}

func NewControlFlowExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ControlFlowExecutor {
	return &ControlFlowExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (c *ControlFlowExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement control flow operations (JMP, JMPZ, JMPNZ)
	return nil, NewOpcodeError(c.GetInstruction().Opcode)
}

// FunctionExecutor handles function call operations
type FunctionExecutor struct {
	*BaseExecutor
}

func NewFunctionExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *FunctionExecutor {
	return &FunctionExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (f *FunctionExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement function operations (FCALL, FCALL_BY_NAME, RETURN)
	return nil, NewOpcodeError(f.GetInstruction().Opcode)
}

// ArrayExecutor handles array operations
type ArrayExecutor struct {
	*BaseExecutor
}

func NewArrayExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ArrayExecutor {
	return &ArrayExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (a *ArrayExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement array operations (INIT_ARRAY, ADD_ARRAY_ELEMENT, FETCH_DIM_R, FETCH_DIM_W)
	return nil, NewOpcodeError(a.GetInstruction().Opcode)
}

// ObjectExecutor handles object operations
type ObjectExecutor struct {
	*BaseExecutor
}

func NewObjectExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ObjectExecutor {
	return &ObjectExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (o *ObjectExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement object operations (NEW, FETCH_OBJ_R, FETCH_OBJ_W, ASSIGN_OBJ)
	return nil, NewOpcodeError(o.GetInstruction().Opcode)
}

// StringExecutor handles string operations
type StringExecutor struct {
	*BaseExecutor
}

func NewStringExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *StringExecutor {
	return &StringExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (s *StringExecutor) Execute() (*ExecutionResult, error) {
	inst := s.GetInstruction()

	switch inst.Opcode {
	case opcodes.OP_CONCAT:
		return s.executeConcat()
	default:
		return nil, NewOpcodeError(inst.Opcode)
	}
}

func (s *StringExecutor) executeConcat() (*ExecutionResult, error) {
	op1, op2, err := s.ReadBothOperands()
	if err != nil {
		return nil, err
	}

	result := values.NewString(op1.ToString() + op2.ToString())
	return s.CreateAdvanceResult(result)
}

// TypeExecutor handles type casting operations
type TypeExecutor struct {
	*BaseExecutor
}

func NewTypeExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *TypeExecutor {
	return &TypeExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (t *TypeExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement type operations (CAST)
	return nil, NewOpcodeError(t.GetInstruction().Opcode)
}

// BitwiseExecutor handles bitwise operations
type BitwiseExecutor struct {
	*BaseExecutor
}

func NewBitwiseExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *BitwiseExecutor {
	return &BitwiseExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (b *BitwiseExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement bitwise operations (BW_OR, BW_AND, BW_XOR)
	return nil, NewOpcodeError(b.GetInstruction().Opcode)
}

// LogicalExecutor handles logical operations
type LogicalExecutor struct {
	*BaseExecutor
}

func NewLogicalExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *LogicalExecutor {
	return &LogicalExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (l *LogicalExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement logical operations (BOOL_AND, BOOL_OR, BOOL_NOT)
	return nil, NewOpcodeError(l.GetInstruction().Opcode)
}

// ControlStructureExecutor handles control structures
type ControlStructureExecutor struct {
	*BaseExecutor
}

func NewControlStructureExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ControlStructureExecutor {
	return &ControlStructureExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (c *ControlStructureExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement control structures (SWITCH_LONG)
	return nil, NewOpcodeError(c.GetInstruction().Opcode)
}

// ExceptionExecutor handles exception operations
type ExceptionExecutor struct {
	*BaseExecutor
}

func NewExceptionExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ExceptionExecutor {
	return &ExceptionExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (e *ExceptionExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement exception operations (THROW)
	return nil, NewOpcodeError(e.GetInstruction().Opcode)
}

// OutputExecutor handles output operations
type OutputExecutor struct {
	*BaseExecutor
}

func NewOutputExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *OutputExecutor {
	return &OutputExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (o *OutputExecutor) Execute() (*ExecutionResult, error) {
	// TODO: Implement output operations (ECHO)
	return nil, NewOpcodeError(o.GetInstruction().Opcode)
}

// NopExecutor handles no-operation
type NopExecutor struct {
	*BaseExecutor
}

func NewNopExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *NopExecutor {
	return &NopExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (n *NopExecutor) Execute() (*ExecutionResult, error) {
	return n.CreateAdvanceResult(values.NewNull())
}

// ExitExecutor handles program exit
type ExitExecutor struct {
	*BaseExecutor
}

func NewExitExecutor(ctx *ExecutionContext, frame *CallFrame, inst *opcodes.Instruction) *ExitExecutor {
	return &ExitExecutor{BaseExecutor: NewBaseExecutor(ctx, frame, inst)}
}

func (e *ExitExecutor) Execute() (*ExecutionResult, error) {
	// Set halted flag and return
	ctx := e.GetContext()
	ctx.Halted = true
	return e.CreateAdvanceResult(values.NewNull())
}