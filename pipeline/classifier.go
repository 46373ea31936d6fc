package pipeline

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// decisionCostLimit bounds the work a single decision evaluation may do
const decisionCostLimit = 1000000

// Classifier scores a row linearly and maps the score to a class with a CEL decision
// The decision sees the transformed row as x (list of double) and the linear
// score as z (double), and must yield a bool, int, uint or double.
type Classifier struct {
	weights  []float64
	bias     float64
	decision string
	program  cel.Program
}

// NewDecisionEnv creates the CEL environment decisions are compiled against
func NewDecisionEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("x", cel.ListType(cel.DoubleType)),
		cel.Variable("z", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// NewClassifier compiles the decision expression of spec
func NewClassifier(spec ModelSpec) (*Classifier, error) {
	env, err := NewDecisionEnv()
	if err != nil {
		return nil, err
	}

	prog, err := compileDecision(env, spec.Decision)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		weights:  make([]float64, len(spec.Weights)),
		bias:     spec.Bias,
		decision: spec.Decision,
		program:  prog,
	}
	copy(c.weights, spec.Weights)
	return c, nil
}

func compileDecision(env *cel.Env, expression string) (cel.Program, error) {
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	if !isDecisionType(ast.OutputType()) {
		return nil, fmt.Errorf("decision must evaluate to bool, int, uint or double, got %s", ast.OutputType())
	}

	prog, err := env.Program(ast, cel.CostLimit(decisionCostLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prog, nil
}

func isDecisionType(t *cel.Type) bool {
	for _, allowed := range []*cel.Type{cel.BoolType, cel.IntType, cel.UintType, cel.DoubleType, cel.DynType} {
		if t.IsExactType(allowed) {
			return true
		}
	}
	return false
}

// Decision returns the source of the decision expression
func (c *Classifier) Decision() string {
	return c.decision
}

// Score computes the linear score of a row
func (c *Classifier) Score(row []float64) (float64, error) {
	if len(c.weights) == 0 {
		return c.bias, nil
	}
	if len(row) != len(c.weights) {
		return 0, fmt.Errorf("row has %d features, model expects %d", len(row), len(c.weights))
	}
	z := c.bias
	for i, w := range c.weights {
		z += w * row[i]
	}
	return z, nil
}

// Predict returns one class per row
func (c *Classifier) Predict(rows [][]float64) ([]float64, error) {
	preds := make([]float64, 0, len(rows))
	for r, row := range rows {
		z, err := c.Score(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}

		out, _, err := c.program.Eval(map[string]any{
			"x": row,
			"z": z,
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: decision failed: %w", r, err)
		}

		var pred float64
		switch v := out.Value().(type) {
		case bool:
			if v {
				pred = 1
			}
		case int64:
			pred = float64(v)
		case uint64:
			pred = float64(v)
		case float64:
			pred = v
		default:
			return nil, fmt.Errorf("row %d: decision returned %T, expected a number or bool", r, out.Value())
		}
		preds = append(preds, pred)
	}
	return preds, nil
}
