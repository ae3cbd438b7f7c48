/* Command gostack runs stack scripts.

A stack script manipulates one stack of strings, and can do exactly two
things with it: push a string onto it, or pop the top string off of it and
print it. That is the whole language; there are no variables, no arithmetic,
and no control flow.

	push "hello"
	push "world"
	pop            # prints POP: world
	pop            # prints POP: hello

Section 1: Grammar

A script is a sequence of expressions, followed by the end of the input:

	stack      := expression* EOI
	expression := push_expr | pop_expr
	push_expr  := "push" literal
	pop_expr   := "pop"
	literal    := '"' { any character but '"' } '"'

Spaces, tabs, line breaks and comments may separate any two tokens; a comment
runs from '#' to the end of its line. A literal is taken verbatim: there are
no escapes, and it may span lines. Keywords are whole words, so "pushpop" is
an error rather than two expressions.

Parsing produces a small tree. Its root is a stack node, whose children are
the expressions in source order, plus a final zero-width EOI node. A push_expr
has one child, a literal node spanning just the text between the quotes. Each
node records the exact span of source text it came from.

A script that does not match the grammar fails with a syntax error, pointing
at the first place where the parser could not go on:

	 --> script.stack:1:5
	  |
	1 | push
	  |     ^---
	  |
	  = expected literal, found end of input

Section 2: Execution

Execution walks the root's children from left to right, counting them from
0; this count is the instruction index. A push_expr pushes its literal; a
pop_expr pops the top value and prints it as "POP: value"; the EOI node does
nothing. Every one of them advances the index by one, so a successful run
ends with the index equal to the number of expressions plus one.

Popping an empty stack is the only way a well-formed script can fail. The run
stops right there, and nothing after that point is executed:

	Cannot pop from empty stack at index 0: pop

Section 3: The command

	gostack [-c] [-d] [-t] SCRIPT
	gostack -i

At most one error is ever printed, on standard output after any POP lines,
and the exit status is then 1. The -t option traces each executed node to
standard error, -d dumps the parse tree there, and -i starts an interactive
session whose entries all share one stack.

*/
package main
