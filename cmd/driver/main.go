// Command driver builds an expression exactly once from a small textual
// program, assigns each named secret's ExprID consistently, and writes the
// resulting ProtocolSpec plus one ValueDict file per participant. Every
// cmd/party instance then loads these files verbatim, which is what makes
// every node's ExprID identical across all parties' copies in a real,
// multi-process deployment: the tree is built once here, not independently
// re-derived by each party.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/protocol"
)

// program is the textual input format: a set of named secrets (each owned
// by one participant, with that participant's plain-integer value), and an
// expression built out of those names plus scalar literals.
type program struct {
	Participants []string                 `json:"participants"`
	Secrets      map[string]secretBinding `json:"secrets"`
	Expr         json.RawMessage          `json:"expr"`
}

type secretBinding struct {
	Owner string `json:"owner"`
	Value int64  `json:"value"`
}

func main() {
	var inPath, outDir string

	root := &cobra.Command{
		Use:   "driver",
		Short: "Build a ProtocolSpec and per-participant ValueDicts from a program file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inPath, outDir)
		},
	}
	root.Flags().StringVar(&inPath, "program", "", "path to the program JSON file")
	root.Flags().StringVar(&outDir, "out", ".", "directory to write spec.json and values-<participant>.json into")
	_ = root.MarkFlagRequired("program")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inPath, outDir string) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}
	var prog program
	if err := json.Unmarshal(raw, &prog); err != nil {
		return fmt.Errorf("parsing program: %w", err)
	}

	secretNodes := make(map[string]*expr.Node, len(prog.Secrets))
	for name := range prog.Secrets {
		secretNodes[name] = expr.Secret()
	}

	root, err := buildExpr(prog.Expr, secretNodes)
	if err != nil {
		return fmt.Errorf("building expression: %w", err)
	}

	spec := protocol.New(root, prog.Participants)

	specBytes, err := spec.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling spec: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "spec.json"), specBytes, 0o644); err != nil {
		return fmt.Errorf("writing spec.json: %w", err)
	}

	perOwner := make(map[string]map[string]int64)
	for name, binding := range prog.Secrets {
		node := secretNodes[name]
		if perOwner[binding.Owner] == nil {
			perOwner[binding.Owner] = make(map[string]int64)
		}
		perOwner[binding.Owner][string(node.ID)] = binding.Value
	}

	for _, participant := range prog.Participants {
		values := perOwner[participant]
		if values == nil {
			values = map[string]int64{}
		}
		b, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("marshalling values for %q: %w", participant, err)
		}
		path := filepath.Join(outDir, "values-"+participant+".json")
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	fmt.Printf("wrote %s and %d value-dict files to %s\n", "spec.json", len(prog.Participants), outDir)
	return nil
}

// exprForm is the recursive JSON shape of the expr field:
//   ["scalar", <int>]
//   ["secret", "<name>"]
//   ["add", <expr>, <expr>]
//   ["mul", <expr>, <expr>]
func buildExpr(raw json.RawMessage, secretNodes map[string]*expr.Node) (*expr.Node, error) {
	var form []json.RawMessage
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("expression node must be a JSON array: %w", err)
	}
	if len(form) == 0 {
		return nil, fmt.Errorf("empty expression node")
	}

	var tag string
	if err := json.Unmarshal(form[0], &tag); err != nil {
		return nil, fmt.Errorf("expression node tag must be a string: %w", err)
	}

	switch tag {
	case "scalar":
		if len(form) != 2 {
			return nil, fmt.Errorf("scalar node wants exactly one value")
		}
		var v int64
		if err := json.Unmarshal(form[1], &v); err != nil {
			return nil, fmt.Errorf("scalar value must be an integer: %w", err)
		}
		return expr.Scalar(v), nil

	case "secret":
		if len(form) != 2 {
			return nil, fmt.Errorf("secret node wants exactly one name")
		}
		var name string
		if err := json.Unmarshal(form[1], &name); err != nil {
			return nil, fmt.Errorf("secret name must be a string: %w", err)
		}
		node, ok := secretNodes[name]
		if !ok {
			return nil, fmt.Errorf("secret %q is not declared in \"secrets\"", name)
		}
		return node, nil

	case "add", "mul":
		if len(form) != 3 {
			return nil, fmt.Errorf("%s node wants exactly two operands", tag)
		}
		left, err := buildExpr(form[1], secretNodes)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(form[2], secretNodes)
		if err != nil {
			return nil, err
		}
		if tag == "add" {
			return expr.Add(left, right), nil
		}
		return expr.Mul(left, right), nil

	default:
		return nil, fmt.Errorf("unknown expression node tag %q", tag)
	}
}
