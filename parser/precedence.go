package parser

import "github.com/avscript/avscript/lexer"

// bindingPower is the (left, right) pair the Pratt core binds in place of a
// precedence table + associativity flag (spec.md §4.2, §GLOSSARY). Higher
// binds tighter; left == right-1 for left-associative operators,
// left == right+1 for right-associative ones.
type bindingPower struct {
	left  int
	right int
}

// infixTable is the exact table from spec.md §4.2. Assignment and ternary
// get bespoke handling in the parser (ternary parses its consequent at
// ubp=0 and its alternate at its own right-bp; assignment's right-bp of 0
// lets the right-hand side re-enter the full expression grammar so chained
// assignment associates right), but their left-binding-powers still drive
// the uniform infix-or-postfix loop below.
var infixTable = map[lexer.Kind]bindingPower{
	lexer.ASSIGN:   {6, 0},
	lexer.QUESTION: {2, 1},
	lexer.OR:       {3, 4},
	lexer.AND:      {5, 6},
	lexer.PIPE:     {6, 7},
	lexer.CARET:    {7, 8},
	lexer.AMP:      {8, 9},
	lexer.MATCH:    {7, 8},
	lexer.EQ:       {9, 10},
	lexer.NEQ:      {9, 10},
	lexer.LT:       {11, 12},
	lexer.LE:       {11, 12},
	lexer.GT:       {11, 12},
	lexer.GE:       {11, 12},
	lexer.SHL:      {12, 13},
	lexer.SHR:      {12, 13},
	lexer.USHR:     {12, 13},
	lexer.PLUS:     {13, 14},
	lexer.MINUS:    {13, 14},
	lexer.PCT:      {15, 16},
	lexer.STAR:     {17, 18},
	lexer.SLASH:    {17, 18},
	lexer.POW:      {18, 17},
	lexer.DOT:      {19, 20},
	lexer.LPAREN:   {19, 0}, // postfix call; right-bp unused
	lexer.LBRACKET: {19, 0}, // postfix subscript; right-bp unused
}

// prefixRightBP is the binding power prefix operators recurse with.
const prefixRightBP = 19

func isPostfix(k lexer.Kind) bool { return k == lexer.LPAREN || k == lexer.LBRACKET }
