/*
Package forthic implements an interpreter for the Forthic programming
language.

Forthic is a concatenative, stack-based language in the Forth family,
designed for building small domain-specific languages over host
applications. Programs are sequences of whitespace-separated tokens.
Most tokens are words, which pop their arguments from a shared data
stack and push their results back onto it.

The interpreter can easily be embedded in another program. To start, use
NewInterpreter to create an interpreter, then Run to execute Forthic
code:

	interp := forthic.NewInterpreter()
	if err := interp.Run("1 2"); err != nil {
		...
	}

Host functionality is exposed by registering modules whose words are
backed by Go functions:

	m := forthic.NewModule("greet")
	m.AddExportableWord(forthic.NewModuleWord("HELLO", func(ctx forthic.Context) error {
		ctx.StackPush("Hello, world!")
		return nil
	}))
	interp.ImportModule(m, "")

Forthic Primer

Literals push themselves onto the stack; words operate on it:

	1 2 +

leaves 3 on the stack. New words are defined with a colon definition:

	: DOUBLE   2 * ;

and memoized words with @:, which run their body once and cache the
result:

	@: USERS   "users.json" LOAD ;

Square brackets collect values into an array:

	[1 2 3]

and curly braces open a module scope, so definitions inside stay local
unless exported:

	{my-module
	    : HELPER   ... ;
	}

Strings are delimited by single quotes, double quotes, or carets, with
triple-quoted forms for text containing the delimiter itself. A # starts
a comment running to the end of the line.

Each module has its own dictionary of words and variables. Words are
resolved against the module stack from the top down, so a module's own
words shadow imported ones. Variables are created with VARIABLES and
accessed with ! and @ from the standard runtime library in package
stdlib.
*/
package forthic
