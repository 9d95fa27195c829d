/*
Package batch implements the core run loop of fixref.

	+-----------+
	|   Batch   |
	| (Orchest.)|
	+-----+-----+
	      |
	+-----+-----+
	|  Rewrite  |
	| (Per-file)|
	+-----+-----+
	      |
	+-----+-----+
	|  Status   |
	| (Tracking)|
	+-----------+

🎯 Purpose:
- Walks the file list in command-line order
- Delegates each file to the rewriter
- Records every outcome with the status manager
- Decides the overall run result (continue-on-error by default)

🔄 Flow:
1. StartBatch with the file count
2. Process each file (sequentially, or bounded-parallel with Jobs > 1)
3. Track outcome and print the per-file console line
4. Return an error iff any file failed (or immediately, with FailFast)

📝 Design Philosophy:
The operator stays a thin orchestrator: all file I/O lives in the rewrite
package and all presentation in status/log. Files are fully independent, so
the parallel runner needs no coordination beyond the errgroup limit and the
status manager's mutex.
*/
package batch
