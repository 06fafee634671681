package vm

import (
	"testing"

	"github.com/vorin-lang/vorin/opcodes"
	"github.com/vorin-lang/vorin/registry"
	"github.com/vorin-lang/vorin/values"
)

// bindStaticInstruction builds an OP_BIND_STATIC instruction matching
// compileStaticStatement's operand layout: CV slot, CONST name, and an
// optional default-value operand.
func bindStaticInstruction(slot, nameConst uint32, resultType opcodes.OpType, resultOp uint32) *opcodes.Instruction {
	opType1, opType2 := opcodes.EncodeOpTypes(opcodes.IS_CV, opcodes.IS_CONST, resultType)
	return &opcodes.Instruction{
		Opcode:  opcodes.OP_BIND_STATIC,
		OpType1: opType1,
		OpType2: opType2,
		Op1:     slot,
		Op2:     nameConst,
		Result:  resultOp,
	}
}

func TestBindStaticPersistsAcrossCalls(t *testing.T) {
	vmachine := NewVirtualMachine()
	ctx := NewExecutionContext()

	fn := &registry.Function{Name: "counter"}
	constants := []*values.Value{values.NewString("n"), values.NewInt(0)}

	inst := bindStaticInstruction(5, 0, opcodes.IS_CONST, 1)

	// First call: the Cell is created and seeded with the default.
	frame1 := newCallFrame("counter", fn, nil, constants)
	if _, err := vmachine.execBindStatic(ctx, frame1, inst); err != nil {
		t.Fatalf("execBindStatic: %v", err)
	}
	if got := frame1.getLocal(5).ToInt(); got != 0 {
		t.Fatalf("first call: got %d, want 0", got)
	}
	frame1.setLocal(5, values.NewInt(7))
	frame1.flushStatics()

	// Second call: must observe the value the first call left behind, not
	// the default again.
	frame2 := newCallFrame("counter", fn, nil, constants)
	if _, err := vmachine.execBindStatic(ctx, frame2, inst); err != nil {
		t.Fatalf("execBindStatic: %v", err)
	}
	if got := frame2.getLocal(5).ToInt(); got != 7 {
		t.Fatalf("second call: got %d, want 7 (value left by first call)", got)
	}
}

func TestBindStaticWithoutFunctionFallsBackToLocal(t *testing.T) {
	vmachine := NewVirtualMachine()
	ctx := NewExecutionContext()

	constants := []*values.Value{values.NewString("n"), values.NewInt(3)}
	inst := bindStaticInstruction(5, 0, opcodes.IS_CONST, 1)

	frame := newCallFrame("{main}", nil, nil, constants)
	if _, err := vmachine.execBindStatic(ctx, frame, inst); err != nil {
		t.Fatalf("execBindStatic: %v", err)
	}
	if got := frame.getLocal(5).ToInt(); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}
