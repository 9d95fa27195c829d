/*
Package status tracks per-file outcomes for a fixref batch run.

	+-------------+
	|   Status    |
	| (Tracking)  |
	+------+------+
	       |
	 +-----+-----+
	 |           |
	+-+---+   +--+---+
	|Files|   | Logs |
	+-----+   +------+

🎯 Purpose:
- Records the outcome of every file in the batch (rewritten, unchanged,
  failed, skipped)
- Reports progress and per-file results via zerolog
- Aggregates counts for the end-of-run summary and exit code

🔄 Flow:
1. The batch operator calls StartBatch with the file count
2. Each rewrite outcome is recorded with Track
3. Finish logs the completed batch
4. Summary feeds the CLI's exit code

🤝 Interfaces:
- FileFormatter: formats outcome, progress, and error messages

The manager is safe for concurrent use; the parallel runner tracks outcomes
from multiple goroutines.
*/
package status
