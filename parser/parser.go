// Package parser builds a typed ast.CommandSeq from MusicDSL source text.
// It folds lexing, precedence-aware expression parsing, and AST
// construction (including pitch encoding, §4.2) into one recursive-descent
// pass — the natural way to write this by hand in Go, as opposed to the
// external Lark-grammar engine the teacher system delegates to, which this
// spec's precedence-climbing requirement (§4.1) rules out (see DESIGN.md).
package parser

import (
	"fmt"

	"github.com/Conceptual-Machines/musicdsl-go/ast"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/lexer"
	"github.com/Conceptual-Machines/musicdsl-go/pitch"
	"github.com/Conceptual-Machines/musicdsl-go/value"
)

// Parse tokenizes and parses src into a command sequence.
func Parse(src string) (*ast.CommandSeq, error) {
	lx := lexer.New(src)
	tokens, err := lx.Lex()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	seq, err := p.parseCommandSeq()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("unexpected trailing input %q", p.peek().Lexeme)
	}
	return seq, nil
}

type Parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }
func (p *Parser) atEOF() bool       { return p.peek().Type == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	tok := p.peek()
	return &diag.SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if p.peek().Type != tt {
		return lexer.Token{}, p.errorf("expected %s, got %q", what, p.peek().Lexeme)
	}
	return p.advance(), nil
}

// ---- commands ----

func (p *Parser) parseCommandSeq() (*ast.CommandSeq, error) {
	tok := p.peek()
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	seq := &ast.CommandSeq{Head: cmd}
	seq.Line, seq.Col = tok.Line, tok.Col

	if p.peek().Type == lexer.SEMI {
		p.advance()
		tail, err := p.parseCommandSeq()
		if err != nil {
			return nil, err
		}
		seq.Tail = tail
	}
	return seq, nil
}

func (p *Parser) parseCommand() (ast.Cmd, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FUNCTION:
		return p.parseFunDecl()
	case lexer.PROCEDURE:
		return p.parseProcDecl()
	case lexer.IDENT:
		return p.parseAssign()
	default:
		return nil, p.errorf("expected a command, got %q", tok.Lexeme)
	}
}

func (p *Parser) parseVarDecl() (ast.Cmd, error) {
	tok := p.advance() // 'var'
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN_EQ, "'='"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name.Lexeme, Expr: expr, Position: linePos(tok)}, nil
}

func (p *Parser) parseAssign() (ast.Cmd, error) {
	name := p.advance() // IDENT
	if _, err := p.expect(lexer.ARROW, "'<-'"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name.Lexeme, Expr: expr, Position: linePos(name)}, nil
}

func (p *Parser) parsePrint() (ast.Cmd, error) {
	tok := p.advance() // 'print'
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Expr: expr, Position: linePos(tok)}, nil
}

func (p *Parser) parseIf() (ast.Cmd, error) {
	tok := p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN, "'then'"); err != nil {
		return nil, err
	}
	thenSeq, err := p.parseBracedSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ELSE, "'else'"); err != nil {
		return nil, err
	}
	elseSeq, err := p.parseBracedSeq()
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, ThenSeq: thenSeq, ElseSeq: elseSeq, Position: linePos(tok)}, nil
}

func (p *Parser) parseWhile() (ast.Cmd, error) {
	tok := p.advance() // 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseBracedSeq()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Position: linePos(tok)}, nil
}

func (p *Parser) parseBracedSeq() (*ast.CommandSeq, error) {
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	seq, err := p.parseCommandSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return seq, nil
}

func (p *Parser) parseParams() ([]string, error) {
	if p.peek().Type == lexer.RPAREN {
		return nil, nil
	}
	var params []string
	for {
		name, err := p.expect(lexer.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, name.Lexeme)
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.advance()
	}
	return params, nil
}

func (p *Parser) parseFunDecl() (ast.Cmd, error) {
	tok := p.advance() // 'function'
	name, err := p.expect(lexer.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN_EQ, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := checkDistinctParams(params); err != nil {
		return nil, &diag.SemanticError{Line: tok.Line, Col: tok.Col, Msg: err.Error()}
	}
	return &ast.FunDecl{Name: name.Lexeme, Params: params, Body: body, Position: linePos(tok)}, nil
}

func (p *Parser) parseProcDecl() (ast.Cmd, error) {
	tok := p.advance() // 'procedure'
	name, err := p.expect(lexer.IDENT, "procedure name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN_EQ, "'='"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.parseCommandSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RETURN, "'return'"); err != nil {
		return nil, err
	}
	ret, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	if err := checkDistinctParams(params); err != nil {
		return nil, &diag.SemanticError{Line: tok.Line, Col: tok.Col, Msg: err.Error()}
	}
	return &ast.ProcDecl{Name: name.Lexeme, Params: params, Body: body, Return: ret, Position: linePos(tok)}, nil
}

func checkDistinctParams(params []string) error {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return fmt.Errorf("duplicate parameter name %q", p)
		}
		seen[p] = true
	}
	return nil
}

// ---- expressions ----

// binOp describes a binary operator's precedence, highest number binds
// tightest. Matches §4.1 exactly: unary (handled in parseUnary, above all
// of these); * / % ; + - ; ! ++ | ; == != < > ; and or.
var binOp = map[lexer.TokenType]struct {
	op   string
	prec int
}{
	lexer.AND:      {"and", 1},
	lexer.OR:       {"or", 1},
	lexer.EQEQ:     {"==", 2},
	lexer.NOTEQ:    {"!=", 2},
	lexer.LT:       {"<", 2},
	lexer.GT:       {">", 2},
	lexer.BANG:     {"!", 3},
	lexer.PLUSPLUS: {"++", 3},
	lexer.PIPE:     {"|", 3},
	lexer.PLUS:     {"+", 4},
	lexer.MINUS:    {"-", 4},
	lexer.STAR:     {"*", 5},
	lexer.SLASH:    {"/", 5},
	lexer.PERCENT:  {"%", 5},
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		info, ok := binOp[p.peek().Type]
		if !ok || info.prec < minPrec {
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseBinary(info.prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: info.op, LHS: left, RHS: right, Position: linePos(tok)}
	}
}

var unaryKeyword = map[lexer.TokenType]string{
	lexer.NOT:        "not",
	lexer.HEAD:       "head",
	lexer.TAIL:       "tail",
	lexer.IS_EMPTY:   "is_empty",
	lexer.PITCH:      "pitch",
	lexer.INITIALIZE: "initialize",
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if op, ok := unaryKeyword[p.peek().Type]; ok {
		tok := p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Arg: arg, Position: linePos(tok)}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.Number{Value: tok.Literal.(int), Position: linePos(tok)}, nil
	case lexer.BOOL:
		p.advance()
		return &ast.Bool{Value: tok.Literal.(bool), Position: linePos(tok)}, nil
	case lexer.NOTE:
		return p.parseNote(tok)
	case lexer.REST:
		return p.parseRest(tok)
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LET:
		return p.parseLet()
	case lexer.IDENT:
		return p.parseVarOrCall()
	default:
		return nil, p.errorf("expected an expression, got %q", tok.Lexeme)
	}
}

func (p *Parser) parseNote(tok lexer.Token) (ast.Expr, error) {
	p.advance()
	lit := tok.Literal.(lexer.NoteLiteral)
	dur := 1.0
	if lit.HasDur {
		dur = lit.Dur
	}
	midi, err := pitch.Encode(lit.Letter, lit.Accidental, lit.Octave)
	if err != nil {
		if rangeErr, ok := err.(*value.RangeError); ok {
			return nil, &diag.SemanticError{Line: tok.Line, Col: tok.Col, Msg: rangeErr.Error()}
		}
		return nil, &diag.SyntaxError{Line: tok.Line, Col: tok.Col, Msg: err.Error()}
	}
	return &ast.Note{MIDI: midi, Dur: dur, Position: linePos(tok)}, nil
}

func (p *Parser) parseRest(tok lexer.Token) (ast.Expr, error) {
	p.advance()
	lit := tok.Literal.(lexer.RestLiteral)
	dur := 1.0
	if lit.HasDur {
		dur = lit.Dur
	}
	return &ast.Rest{Dur: dur, Position: linePos(tok)}, nil
}

func (p *Parser) parseLet() (ast.Expr, error) {
	tok := p.advance() // 'let'
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN_EQ, "'='"); err != nil {
		return nil, err
	}
	bound, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Name: name.Lexeme, Bound: bound, Body: body, Position: linePos(tok)}, nil
}

func (p *Parser) parseVarOrCall() (ast.Expr, error) {
	tok := p.advance() // IDENT
	if p.peek().Type != lexer.LPAREN {
		return &ast.Var{Name: tok.Lexeme, Position: linePos(tok)}, nil
	}
	p.advance() // '('
	var args []ast.Expr
	if p.peek().Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &ast.Call{Name: tok.Lexeme, Args: args, Position: linePos(tok)}, nil
}

func linePos(tok lexer.Token) ast.Position { return ast.At(tok.Line, tok.Col) }
