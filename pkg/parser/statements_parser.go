package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) statement() (ast.Statement, error) {
	if kw, ok := p.match(token.Print); ok {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.terminator("print statement"); err != nil {
			return nil, err
		}
		return ast.SetLine(ast.NewPrintStatement(expr), kw.Line), nil
	}

	start := p.peek().Line
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator("expression statement"); err != nil {
		return nil, err
	}
	return ast.SetLine(ast.NewExpressionStatement(expr), start), nil
}

func (p *Parser) terminator(context string) error {
	_, err := p.consume(token.Semicolon, "';'", "expected ';' after "+context)
	return err
}
