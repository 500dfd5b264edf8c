/*
Package migrate implements the corpus-walking and file-rewriting engine.

	+-------------+
	|   Runner    |
	|  (Phases)   |
	+------+------+
	       |
	+------+------+      +--------------+
	|    Walk     | ---> | MigrateFile  |
	| (Candidates)|      | (Atomic I/O) |
	+-------------+      +------+-------+
	                            |
	                     +------+-------+
	                     |  Classifier  |
	                     |  (directive) |
	                     +--------------+

🎯 Purpose:
- Enumerates migration candidates under a corpus root
- Streams each file through the line classifier
- Replaces files atomically so no partial rewrite is ever observable

🔄 Flow:
1. Runner builds the phase's directive set (pkg/directive)
2. Walk lists candidate files, sorted, with subtree and glob exclusions
3. MigrateFile rewrites each file via a same-directory temp file + rename
4. Per-file results feed the user logger

⚡ Key Responsibilities:
- Deterministic candidate enumeration
- Byte-exact line and terminator preservation
- Temp-file lifecycle (always removed unless committed)
- Fail-fast error propagation: the first error aborts the whole run

📝 Design Philosophy:
Migration is deliberately sequential: I/O dominates, the corpus is finite,
and a loud full stop is safer than a silently partial migration. The only
shared state is the immutable directive set, so the per-file work could be
parallelized later without reworking this package's contracts.
*/
package migrate
