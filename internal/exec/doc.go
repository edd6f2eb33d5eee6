// Package exec runs the external tools create-my-stack depends on, such as
// git and the Node.js package managers.
//
// # Basic Usage
//
//	executor := exec.NewExecutor(nil)
//	err := executor.Run(ctx, projectDir, "git", "init")
//
// Long-running commands can show a spinner instead of streaming output:
//
//	err := executor.RunWithSpinner(ctx, "Installing dependencies", projectDir, "pnpm", "install")
//
// The spinner is only drawn when stderr is a terminal; otherwise the command
// runs quietly and a single result line is printed.
//
// Executor satisfies generator.Runner, so commands can be scheduled as
// generator.CommandOp alongside file operations.
package exec
