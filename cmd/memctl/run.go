package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/arena/printer"
	"github.com/joshuapare/memkit/internal/script"
)

var (
	runDump          bool
	runShowAvailable bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runDump, "dump", false, "Print the block directory after the last statement")
	cmd.Flags().
		BoolVar(&runShowAvailable, "show-available", false, "List searchable blocks in search order when dumping")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute an operation script",
		Long: `The run command executes an operation script against a fresh arena and
prints the result of every statement.

Statements:
  NAME = alloc SIZE
  NAME = calloc COUNT SIZE
  NAME = realloc NAME SIZE
  free NAME
  fill NAME BYTE COUNT
  expect NAME BYTE COUNT
  verify
  stats
  dump

Example:
  memctl run workload.txt
  memctl run workload.txt --layout conflated --dump
  memctl run workload.txt --dump --show-available
  memctl run workload.txt --size 65536 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	path := args[0]
	printVerbose("Reading script: %s\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	stmts, err := script.Parse(f)
	if err != nil {
		return err
	}

	a, err := newAllocator()
	if err != nil {
		return err
	}
	defer a.Close()

	r := newRunner(a, nil)
	r.dump = dumpOptions()
	if !jsonOut && !quiet {
		r.text = os.Stdout
	}

	var results []stepResult
	for _, st := range stmts {
		res, err := r.exec(st)
		if err != nil {
			if jsonOut {
				_ = printJSON(map[string]any{"steps": results, "error": err.Error()})
			}
			return err
		}
		results = append(results, res)
		if !jsonOut {
			printStep(res)
		}
	}

	if jsonOut {
		out := map[string]any{"steps": results, "stats": a.Stats(), "usage": a.Usage()}
		if runDump {
			out["dump"] = a.Snapshot()
		}
		return printJSON(out)
	}

	u := a.Usage()
	printInfo("\n%d statements, %s used, %s free, largest free block %s\n",
		len(stmts), formatBytes(u.UsedBytes), formatBytes(u.FreeBytes), formatBytes(u.LargestFree))
	if runDump && !quiet {
		return printer.New(os.Stdout, r.dump).Print(a)
	}
	return nil
}

// dumpOptions returns the printer options for dump statements and --dump.
func dumpOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.ShowAvailable = runShowAvailable
	return opts
}

func printStep(res stepResult) {
	switch {
	case res.Detail != "":
		printInfo("%4d: %-32s -> %s\n", res.Line, res.Stmt, res.Detail)
	case res.Ptr != nil:
		printInfo("%4d: %-32s -> 0x%X\n", res.Line, res.Stmt, *res.Ptr)
	default:
		printVerbose("%4d: %-32s ok\n", res.Line, res.Stmt)
	}
}
