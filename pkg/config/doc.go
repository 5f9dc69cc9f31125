/*
Package config loads the optional run configuration for restyle.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |                       |
	+-----+-----+ +---+-----+           +----+----+
	|   YAML    | |  JSON   |           |   HCL   |
	| Parser    | | Parser  |           | Parser  |
	+-----------+ +---------+           +---------+

🎯 Purpose:
- Locates the projects directory (default "proyectos")
- Lists project directories to leave out of a run
- Switches between writing and dry-run

A missing config file is not an error: Load returns Default(). The
replacement rules live in package text and cannot be configured.

🔍 Example:

	root: proyectos
	skip:
	  - "archived-*"
	dry_run: false
*/
package config
