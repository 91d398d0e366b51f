// Package sandbox runs agent decisions in a separate operating system
// process so that a slow, crashing or memory-hungry agent cannot stall or
// corrupt the table.
//
// The worker is the host binary itself, re-executed with the agent name in
// its environment. Any binary that creates sandboxes must hand control to the
// worker before doing anything else:
//
//	func main() {
//		if sandbox.IsWorker() {
//			os.Exit(sandbox.RunWorker())
//		}
//		...
//	}
//
// Requests and replies are JSON lines over the worker's stdin and stdout.
// While a decision is pending the parent polls the worker's resident memory.
// A memory breach, a missed deadline, a cancelled context or a dead worker
// all end with the worker killed and the default decision (fold) returned;
// the next call starts a fresh worker. A panic inside the agent is caught by
// the worker and answered with a fold without a restart.
package sandbox
