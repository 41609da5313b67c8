package calculator

import (
	"context"
	"fmt"

	"github.com/leofalp/react-agent/providers/tool"
)

// New returns a [tool.Tool] configured for basic arithmetic.
func New() *tool.Tool[Input, Output] {
	return tool.New(
		"calculator",
		Calc,
		tool.WithDescription("A simple calculator to perform basic arithmetic operations like addition, subtraction, multiplication, and division."),
	)
}

// Calc performs the arithmetic operation specified by req.Op on the operands
// req.A and req.B. Supported operations are "add"/"+", "sub"/"-", "mul"/"*",
// and "div"/"/". Division by zero returns positive or negative infinity
// consistent with IEEE 754 semantics. An unrecognized Op is an error.
func Calc(_ context.Context, req Input) (Output, error) {
	var result float64
	switch req.Op {
	case "add", "+":
		result = req.A + req.B
	case "sub", "-":
		result = req.A - req.B
	case "mul", "*":
		result = req.A * req.B
	case "div", "/":
		result = req.A / req.B
	default:
		return Output{}, fmt.Errorf("unsupported operation %q", req.Op)
	}
	return Output{Result: result}, nil
}

// Input holds the two operands and the operation to be applied by [Calc].
type Input struct {
	A  float64 `json:"A"  jsonschema:"description=First operand,required"`
	B  float64 `json:"B"  jsonschema:"description=Second operand,required"`
	Op string  `json:"Op" jsonschema:"description=Operation type,enum=add,enum=sub,enum=mul,enum=div,required"`
}

// Output carries the floating-point result produced by [Calc].
type Output struct {
	Result float64 `json:"result" jsonschema:"description=The result of the calculation"`
}
