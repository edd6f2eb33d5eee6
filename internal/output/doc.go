// Package output provides styled terminal output for create-my-stack.
//
// # Usage
//
//	output.Success("Project directory created")
//	output.Progress(2, 6, "Generating root configuration...")
//	output.Error("Failed at step 3: unknown backend framework")
//
// # Verbose Mode
//
//	output.SetVerbose(true)
//	output.Verbose("Resolved backend path: /work/app/apps/backend")
//
// # Styling
//
//   - Success: ✓ green
//   - Error: ✗ red bold
//   - Warn: ⚠ yellow
//   - Info: ℹ blue
//   - Progress: [n/total] gray counter, cyan message
//   - Verbose: 🔍 gray (when enabled)
//
// Everything is written to the writer set with SetWriter (stdout by default),
// so tests can capture output without swapping os.Stdout.
package output
