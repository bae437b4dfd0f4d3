/*
Package patch implements the core logic for applying a literal text patch
to a single file.

	+-------------+
	|   Applier   |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|  Replacer   |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Loads the match and replacement text from their companion files
- Verifies the match text occurs in the target before touching it
- Substitutes every occurrence and overwrites the target in place

🔄 Flow:
1. Check both companion files exist (before any target I/O)
2. Load and strip the match and replacement text
3. Load the target verbatim
4. Verify containment, substitute, write back

📝 Design Philosophy:
The applier owns orchestration and file I/O; the actual substitution is
delegated to the text package. Every failure is terminal: the applier
either rewrites the whole target or leaves it byte-for-byte untouched.
There is no backup, no dry-run and no rollback.
*/
package patch
