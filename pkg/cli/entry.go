// Package cli implements the dyncall scenario runner: it loads YAML
// scenario files, routes every call through a cached call site, and prints
// the bound vectors or diagnostics.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/callsite"
	"github.com/funvibe/dyncall/internal/object"
	"github.com/funvibe/dyncall/internal/registry"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	calleeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
)

var stdoutIsTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func render(style lipgloss.Style, s string) string {
	if !stdoutIsTTY {
		return s
	}
	return style.Render(s)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: dyncall [-dump] scenario.yaml ...")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  -dump    dump compiled plans and site rule chains after each scenario")
}

// Entry is the CLI entry point. Returns the process exit code.
func Entry(args []string) int {
	dump := false
	var files []string
	for _, arg := range args {
		switch arg {
		case "-dump", "--dump":
			dump = true
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return 0
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		printUsage(os.Stderr)
		return 1
	}

	exit := 0
	for _, path := range files {
		if err := RunScenario(os.Stdout, path, dump); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", render(errorStyle, fmt.Sprintf("%s: %v", path, err)))
			exit = 1
		}
	}
	return exit
}

// RunScenario loads one scenario file and executes every call entry.
// Each call entry gets its own call site; repeat counts exercise the guard
// path, which the rebinds summary makes visible.
func RunScenario(w io.Writer, path string, dump bool) error {
	sc, err := LoadScenario(path)
	if err != nil {
		return err
	}

	reg := registry.New()
	for _, spec := range sc.Callees {
		defaults, err := inferValues(spec.Defaults)
		if err != nil {
			return fmt.Errorf("callee %s: %v", spec.Name, err)
		}
		callee, err := reg.Define(spec.Name, spec.Params, defaults, spec.RestPositional, spec.RestKeyword, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", render(mutedStyle, "callee"), render(calleeStyle, callee.Signature().String()))
	}

	for i, spec := range sc.Calls {
		callee, ok := reg.Lookup(spec.Callee)
		if !ok {
			return fmt.Errorf("call %d: unknown callee %q", i+1, spec.Callee)
		}
		call, err := spec.BuildCall()
		if err != nil {
			return fmt.Errorf("call %d: %v", i+1, err)
		}

		repeat := spec.Repeat
		if repeat < 1 {
			repeat = 1
		}

		site := callsite.New()
		var bound []object.Object
		var diag error
		for n := 0; n < repeat; n++ {
			vector, d := site.Call(callee.Signature(), call)
			if d != nil {
				diag = d
				break
			}
			bound = vector
		}

		fmt.Fprintf(w, "%s %s\n", render(mutedStyle, fmt.Sprintf("call %d", i+1)), renderCall(spec.Callee, call))
		if diag != nil {
			fmt.Fprintf(w, "  %s\n", render(errorStyle, diag.Error()))
		} else {
			fmt.Fprintf(w, "  %s %s\n", render(successStyle, "bound"), renderVector(bound))
		}
		fmt.Fprintf(w, "  %s\n", render(mutedStyle, fmt.Sprintf("rebinds: %d of %d calls", site.Rebinds(), repeat)))

		if dump {
			for _, rule := range site.Rules() {
				fmt.Fprintf(w, "  rule shape=%s guard=%s permanent=%v\n", rule.ShapeKey, rule.Guard, rule.Permanent)
				if rule.Plan != nil {
					fmt.Fprint(w, indent(spew.Sdump(rule.Plan), "    "))
				}
			}
		}
	}
	return nil
}

func renderCall(name string, call *binding.Call) string {
	var parts []string
	for _, v := range call.Positional {
		parts = append(parts, v.Inspect())
	}
	for _, n := range call.Named {
		parts = append(parts, n.Name+"="+n.Value.Inspect())
	}
	if call.SplatSequence != nil {
		if l, ok := call.SplatSequence.(*object.List); ok {
			parts = append(parts, "*"+l.Inspect())
		} else {
			parts = append(parts, "*<sequence>")
		}
	}
	if call.SplatMapping != nil {
		if m, ok := call.SplatMapping.(*object.Map); ok {
			parts = append(parts, "**"+m.Inspect())
		} else {
			parts = append(parts, "**<mapping>")
		}
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func renderVector(vector []object.Object) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = v.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
