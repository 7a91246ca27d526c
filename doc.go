// # scriptindex
//
// `scriptindex` keeps a table of your repository's scripts inside its README.
// Each script documents itself in its leading docstring:
//
//	"""Back up the production database.
//
//	Description: Nightly database backup
//	Link: wiki.example.com/backup
//	"""
//
// and `scriptindex` turns those `Field: value` lines into one markdown table
// row per file:
//
//	# Scripts
//	| Name | Description | Link |
//	|:---|:---|:---|
//	| `backup.py` | Nightly database backup | [Link](wiki.example.com/backup) |
//	::
//
// The table lives between the `# Scripts` and `::` lines. The first such
// section is replaced on every run; when there is none, the table is appended
// after a blank line. Everything else in the README is left byte-for-byte
// as it was, and the file is only rewritten when its contents change.
//
// ## Usage
//
//	scriptindex [flags] [root]
//
// Examples:
//
//   - Index `./scripts` into `./README.md` with the default columns:
//
//     scriptindex ./scripts
//
//   - Pick the columns, in order, and which of them are links:
//
//     scriptindex -f Description -f Owner -f Link -l Link ./scripts
//
//   - Index shell scripts instead of Python:
//
//     scriptindex --include '*.sh' ./bin
//
// ## Supported Flags
//
//   - `--root`, `-r`: directory searched recursively (default `.`).
//   - `--readme`: target document. Its name must contain `README` and end in
//     `.md`, `.rst` or `.txt`.
//   - `--field`, `-f`: table column, repeatable (default `Description`, `Link`).
//   - `--link-field`, `-l`: column rendered as `[Link](value)`; must also be a
//     table column (default `Link`).
//   - `--include`: glob selecting candidate files (default `*.py`).
//   - `--ignore`: extra globs for files or directories to skip.
//   - `--workers`, `-j`: parallel readers (default: all CPUs).
//   - `--config`: YAML file with the same settings.
//   - `--verbose`, `-v`: debug logging on stderr.
//
// Globs match either the path relative to the root or the base name, so
// `*.py` selects Python files at any depth while `tools/**.sh` only selects
// shell scripts below `tools`.
//
// ## Configuration
//
// Settings are layered: built-in defaults, then `.scriptindex.yaml` (or the
// file given with `--config`), then `SCRIPTINDEX_*` environment variables
// (a `.env` file is honored), then flags.
//
//	root: scripts
//	readme: README.md
//	table_fields: [Description, Owner, Link]
//	link_fields: [Link]
//	include: ["*.py"]
//	ignore: [.git, __pycache__]
//	workers: 4
//
// ## Exit Codes
//
// `0` nothing to modify, `1` README modified, `2` no source files, `3` README
// invalid or unreadable, `4` README not writable, `5` link fields not among the
// table fields, `64` invalid flags or configuration. Exiting with `1` after a
// change lets the tool act as a pre-commit hook.
//
// ## Shell Completion
//
//	scriptindex completion bash        # bash
//	scriptindex completion zsh         # zsh
//	scriptindex completion fish | source
//	scriptindex completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	scriptindex gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
