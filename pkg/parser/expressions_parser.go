package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) expression() (ast.Expression, error) {
	return p.infix(0)
}

// infix parses the binary level at index level, folding repeated
// operators to the left.
func (p *Parser) infix(level int) (ast.Expression, error) {
	if level >= len(infixLevels) {
		return p.unary()
	}
	left, err := p.infix(level + 1)
	if err != nil {
		return nil, err
	}
	operators := infixLevels[level]
	for {
		op, ok := operators[p.peek().Kind]
		if !ok {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.infix(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.SetLine(ast.NewBinary(op, left, right), opTok.Line)
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	if opTok, ok := p.match(token.Bang, token.Minus); ok {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		op := ast.UnaryNegate
		if opTok.Kind == token.Bang {
			op = ast.UnaryNot
		}
		return ast.SetLine(ast.NewUnary(op, operand), opTok.Line), nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return literalAt(ast.NumberValue(tok.Number), tok.Line), nil
	case token.String:
		p.advance()
		return literalAt(ast.StringValue(tok.Lexeme), tok.Line), nil
	case token.True:
		p.advance()
		return literalAt(ast.BoolValue(true), tok.Line), nil
	case token.False:
		p.advance()
		return literalAt(ast.BoolValue(false), tok.Line), nil
	case token.Nil:
		p.advance()
		return literalAt(ast.NilValue(), tok.Line), nil
	case token.Identifier:
		p.advance()
		return ast.SetLine(ast.NewVariable(tok.Lexeme), tok.Line), nil
	case token.LeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "')'", "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.SetLine(ast.NewGrouping(inner), tok.Line), nil
	default:
		return nil, p.errorAt(tok, "expression", "expected expression")
	}
}

func literalAt(value ast.LiteralValue, line int) ast.Expression {
	return ast.SetLine(ast.NewLiteral(value), line)
}
