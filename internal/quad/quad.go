// Package quad lowers an analyzed parse tree into a textual quadruple
// listing: one stack-machine instruction per line, control flow expressed
// with fresh `Lxxx:` labels rather than patched byte offsets (spec §4.G).
//
// Supported instruction grammar:
//
//	op      asm               operand         description
//	------  ----------------  --------------  --------------------------------
//	PUSH    PUSH_<type>       literal|alias   push a literal or a named cell
//	POP     POP_<type>        alias           pop TOS into a named cell
//	ADD/SUB/MUL/DIV/MOD       <type>          arithmetic, TOS/NOS consumed
//	AND/OR/XOR/NOT/SHL/SHR    <type>          bitwise and logical and/or/not
//	GT/GTE/LT/LTE/EQU/NEQ     <type>          comparisons, push BOOL result
//	NEG       <type>                          arithmetic negate TOS
//	INC/DEC   <type>                          increment/decrement TOS
//	JMP                       label           unconditional jump
//	JZ/JNZ    <type>          label           conditional jump, pops TOS
//	CALL                      alias           call a function by alias
//	RET                                       return from the current function
//	PROC/ENDP                 alias           function prologue/epilogue
//	<T1>_TO_<T2>                              convert TOS from T1 to T2
//
// Unlike the teacher's bytecode.Compiler, this package never patches a byte
// offset after the fact: every jump target is a label name allocated before
// it is referenced, so instructions are append-only.
package quad

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/types"
)

// Emitter walks an analyzed *ast.Program and produces a Listing. It owns
// the fresh-label counter and the break/continue label stacks that control
// constructs push before lowering their bodies and pop afterward (spec
// §4.G, §5 — lexically paired, mirroring the teacher's loopContext
// push/pop-with-defer idiom in bytecode.Compiler).
type Emitter struct {
	lines        []string
	labelCounter int
	breakStack   []string
	continueStack []string
	currentFunc  *ast.FunctionDecl
}

// NewEmitter returns an Emitter with an empty listing.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// FreshLabel returns a new label name, unique within this Emitter's
// lifetime.
func (e *Emitter) FreshLabel() string {
	e.labelCounter++
	return fmt.Sprintf("L%d", e.labelCounter)
}

func (e *Emitter) emit(format string, args ...interface{}) {
	e.lines = append(e.lines, fmt.Sprintf(format, args...))
}

func (e *Emitter) label(name string) {
	e.lines = append(e.lines, name+":")
}

func (e *Emitter) pushBreak(label string)    { e.breakStack = append(e.breakStack, label) }
func (e *Emitter) popBreak()                 { e.breakStack = e.breakStack[:len(e.breakStack)-1] }
func (e *Emitter) topBreak() string          { return e.breakStack[len(e.breakStack)-1] }
func (e *Emitter) pushContinue(label string) { e.continueStack = append(e.continueStack, label) }
func (e *Emitter) popContinue()              { e.continueStack = e.continueStack[:len(e.continueStack)-1] }
func (e *Emitter) topContinue() string       { return e.continueStack[len(e.continueStack)-1] }

// pushLoop pushes both a break and a continue target; loops pair it with an
// explicit popLoop after the body, switches push only a break target
// directly since continue is not "applicable" to a switch (spec §4.G).
func (e *Emitter) pushLoop(breakLabel, continueLabel string) {
	e.pushBreak(breakLabel)
	e.pushContinue(continueLabel)
}

func (e *Emitter) popLoop() {
	e.popBreak()
	e.popContinue()
}

// convert emits a type-conversion instruction taking a value of type from
// to type to, a no-op when the types already match (spec §4.G).
func (e *Emitter) convert(from, to types.DataType) {
	if from == to {
		return
	}
	e.emit("%s_TO_%s", from.QuadTag(), to.QuadTag())
}

// Listing is the finished textual instruction stream.
type Listing struct {
	Lines []string
}

// String renders the listing exactly as it is written to the output file:
// one instruction or label per line, newline-terminated.
func (l *Listing) String() string {
	var sb strings.Builder
	for _, line := range l.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteIndented writes a presentational view of the listing where label
// lines stay flush left and instructions are indented four spaces, purely for
// human inspection (spec's "disassemble"-equivalent; never consumed by the
// driver or any other tool).
func (l *Listing) WriteIndented(w io.Writer) error {
	for _, line := range l.Lines {
		if strings.HasSuffix(line, ":") {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, "    "+line); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) listing() *Listing {
	return &Listing{Lines: e.lines}
}

// literalOperand renders a value literal's PUSH operand text (spec §4.G:
// "Value literal (used): PUSH_<type> literal").
func literalOperand(v *ast.ValueLiteral) string {
	switch val := v.Value.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	case rune:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return v.Text
	}
}
