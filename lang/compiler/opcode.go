package compiler

// OpCode identifies one operation of the virtual machine.
type OpCode uint8

const (
	Constant OpCode = iota
	Add
	Sub
	Mul
	Div
	Equal
	NotEqual
	LessThan
	GreaterThan
	Pop
	GetGlobal
	SetGlobal
	Call
	Array
	Object
	GetIndex
	SetIndex
	Jump
	JumpIfFalse
	Return
)

var opcodeNames = [...]string{
	Constant:    "Constant",
	Add:         "Add",
	Sub:         "Sub",
	Mul:         "Mul",
	Div:         "Div",
	Equal:       "Equal",
	NotEqual:    "NotEqual",
	LessThan:    "LessThan",
	GreaterThan: "GreaterThan",
	Pop:         "Pop",
	GetGlobal:   "GetGlobal",
	SetGlobal:   "SetGlobal",
	Call:        "Call",
	Array:       "Array",
	Object:      "Object",
	GetIndex:    "GetIndex",
	SetIndex:    "SetIndex",
	Jump:        "Jump",
	JumpIfFalse: "JumpIfFalse",
	Return:      "Return",
}

func (op OpCode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "OpCode(?)"
}

// HasArg reports whether op carries an operand in its Instruction.Arg
// field (a constant-pool index, an argument/element count, or an
// absolute jump target).
func (op OpCode) HasArg() bool {
	switch op {
	case Constant, GetGlobal, SetGlobal, Call, Array, Object, Jump, JumpIfFalse:
		return true
	default:
		return false
	}
}
