/*
Package operation rewrites the index page of every project directory.

	+-------------+
	|  Rewriter   |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|   Process   |
	| (Transform) |
	+------+------+

🔄 Flow:
1. Lists the immediate subdirectories of the projects directory
2. Skips directories without an index.html
3. Reads, applies the replacement rules in order, overwrites
4. Prints progress per file and a completion notice at the end

Directories are handled one after the other. The first read, encoding or
write failure stops the run; pages already written are not rolled back.

🔍 Example:

	rw, err := operation.New(operation.Options{
		Root:   "proyectos",
		Store:  status.NewManager("proyectos", nil),
		Logger: log.New(os.Stdout, zerolog.Nop()),
	})
	if err != nil {
		return err
	}
	return rw.Run(ctx)
*/
package operation
