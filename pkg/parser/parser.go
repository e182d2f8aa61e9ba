package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

// infixLevels lists the left-associative binary levels from loosest to
// tightest binding. Each level folds operands parsed at the next level.
var infixLevels = []map[token.Kind]ast.BinaryOperator{
	{
		token.BangEqual:  ast.BinaryNotEqual,
		token.EqualEqual: ast.BinaryEqual,
	},
	{
		token.Greater:      ast.BinaryGreater,
		token.GreaterEqual: ast.BinaryGreaterEqual,
		token.Less:         ast.BinaryLess,
		token.LessEqual:    ast.BinaryLessEqual,
	},
	{
		token.Plus:  ast.BinaryAdd,
		token.Minus: ast.BinarySubtract,
	},
	{
		token.Star:  ast.BinaryMultiply,
		token.Slash: ast.BinaryDivide,
	},
}

// Parser builds a syntax tree from a scanned token slice. The slice must
// end with an EOF token.
type Parser struct {
	tokens  []token.Token
	current int
}

// New constructs a parser over tokens. A missing trailing EOF is supplied.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), token.New(token.EOF, line))
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole program.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseExpression parses a single expression followed by EOF.
func ParseExpression(tokens []token.Token) (ast.Expression, error) {
	p := New(tokens)
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, p.errorAt(p.peek(), "end of input", "unexpected token after expression")
	}
	return expr, nil
}

// ParseSource scans and parses source text.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := scanner.ScanTokens(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram consumes statements until EOF. The first failure aborts the
// parse; there is no recovery.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	statements := make([]ast.Statement, 0)
	for !p.check(token.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.SetLine(ast.NewProgram(statements), firstLine(p.tokens)), nil
}

func firstLine(tokens []token.Token) int {
	if len(tokens) == 0 {
		return 1
	}
	return tokens[0].Line
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	if tok.Kind != token.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) match(kinds ...token.Kind) (token.Token, bool) {
	for _, kind := range kinds {
		if p.check(kind) {
			return p.advance(), true
		}
	}
	return token.Token{}, false
}

func (p *Parser) consume(kind token.Kind, expected, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), expected, message)
}

func (p *Parser) errorAt(found token.Token, expected, message string) *Error {
	return &Error{Line: found.Line, Message: message, Expected: expected, Found: found}
}
