/*
Package parser turns LESS-style stylesheet source into an ast.Stylesheet.

# Overview

The parser is a set of small rules composed with combinators. A rule is a
function from an immutable Input cursor to a Result, which is one of three
outcomes:

  - Matched: the rule produced a value and a new cursor.
  - NoMatch: the rule does not apply here and consumed nothing. An enclosing
    Alt moves on to its next alternative.
  - Failed: the rule recognized the start of a construct but the rest of it
    is malformed. The failure carries a *SyntaxError and aborts the parse;
    no enclosing alternative is tried.

Rules switch from NoMatch to Failed at their commit point, via Cut. For a
declaration the commit point is the ':' after the property name, so
`color: ;` reports a missing value instead of falling back to other item
kinds.

# Grammar

	stylesheet    = item* EOF
	item          = mixin-decl | declaration | mixin-call | qualified-rule
	              | variable-decl | variable-call | at-rule
	mixin-decl    = ("." | "#") ident "(" ")" block
	declaration   = ident ":" value ["!important"] ";"
	mixin-call    = mixin-path "(" ")" ";"
	qualified-rule= selector ("," selector)* block
	variable-decl = "@" ident ":" (value ";" | block [";"])
	variable-call = "@" ident "(" ")" ";"
	at-rule       = "@" ident prelude (block | ";")
	block         = "{" item* "}"

Whitespace, block comments and line comments may appear between any two
tokens. The
';' ending a statement may be omitted right before '}'.

# Strings

Quoted strings are scanned by a two state machine. Text runs are split at
`@{name}` (variable) and `${name}` (property) interpolations; a literal with
at least one interpolation becomes an ast.InterpolatedString whose segments
and interpolations, concatenated in order, reproduce the source text between
the quotes.

# Usage

	sheet, err := parser.ParseStylesheet(src, parser.WithFilename("site.less"))
	if err != nil {
		if se, ok := parser.AsSyntaxError(err); ok {
			fmt.Println(se.Pos, se.Rule, se.Expected)
		}
		return err
	}
*/
package parser
