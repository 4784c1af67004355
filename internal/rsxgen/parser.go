package rsxgen

// Parser parses .rsx source files into an AST.
type Parser struct {
	lexer           *Lexer
	current         Token
	peek            Token
	errors          *ErrorList
	pendingComments []*Comment
}

// NewParser creates a new Parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:  lexer,
		errors: NewErrorList(),
	}
	p.advance()
	p.advance()
	return p
}

// ParseFile parses src as the .rsx file named filename.
func ParseFile(filename, src string) (*File, error) {
	return NewParser(NewLexer(filename, src)).ParseFile()
}

// Errors returns any errors encountered during parsing.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lexer.Next()
}

func (p *Parser) advanceSkipNewlines() {
	p.advance()
	p.skipNewlines()
}

func (p *Parser) skipNewlines() {
	for p.current.Type == TokenNewline {
		p.advance()
	}
}

// position returns the current token's position.
func (p *Parser) position() Position {
	return Position{
		File:   p.lexer.filename,
		Line:   p.current.Line,
		Column: p.current.Column,
		Offset: p.current.StartPos,
	}
}

// expect checks if the current token matches the expected type and advances.
// Returns true if matched, false otherwise (and records an error).
func (p *Parser) expect(typ TokenType) bool {
	if p.current.Type == typ {
		p.advance()
		return true
	}
	p.errors.AddErrorf(SyntaxError, p.position(), "expected %s, got %s", typ, p.current.Type)
	return false
}

// synchronize skips tokens until the start of the next top-level declaration.
func (p *Parser) synchronize() {
	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenFunc, TokenComponent, TokenTypeKw, TokenConst, TokenVar:
			if p.current.Column == 1 {
				return
			}
		}
		p.advance()
	}
}

// resync restarts tokenizing at pos. Used after input was consumed
// directly from the source rather than through tokens.
func (p *Parser) resync(pos Position) {
	p.lexer.Seek(pos)
	p.lexer.ConsumeComments()
	p.pendingComments = nil
	p.advance()
	p.advance()
}

func (p *Parser) collectPendingComments() {
	p.pendingComments = append(p.pendingComments, p.lexer.ConsumeComments()...)
}

func (p *Parser) consumePendingComments() []*Comment {
	comments := p.pendingComments
	p.pendingComments = nil
	return comments
}

// dropCommentsBefore discards pending comments that start before offset.
// They are part of raw source that was captured verbatim.
func (p *Parser) dropCommentsBefore(offset int) {
	p.collectPendingComments()
	kept := p.pendingComments[:0]
	for _, c := range p.pendingComments {
		if c.Position.Offset >= offset {
			kept = append(kept, c)
		}
	}
	p.pendingComments = kept
}

// groupComments groups comments into CommentGroups based on blank lines.
func groupComments(comments []*Comment) []*CommentGroup {
	if len(comments) == 0 {
		return nil
	}

	var groups []*CommentGroup
	var current []*Comment
	for i, c := range comments {
		if i > 0 && c.Position.Line > comments[i-1].EndLine+1 {
			groups = append(groups, &CommentGroup{List: current})
			current = nil
		}
		current = append(current, c)
	}
	return append(groups, &CommentGroup{List: current})
}

// getLeadingCommentGroup returns the pending comments that directly precede
// the current token. Groups separated from it by a blank line are orphans.
func (p *Parser) getLeadingCommentGroup(file *File) *CommentGroup {
	p.collectPendingComments()
	groups := groupComments(p.consumePendingComments())
	if len(groups) == 0 {
		return nil
	}
	last := groups[len(groups)-1]
	if p.current.Line > last.List[len(last.List)-1].EndLine+1 {
		file.OrphanComments = append(file.OrphanComments, groups...)
		return nil
	}
	file.OrphanComments = append(file.OrphanComments, groups[:len(groups)-1]...)
	return last
}

// ParseFile parses a complete .rsx file into a File AST node.
func (p *Parser) ParseFile() (*File, error) {
	file := &File{
		Position: p.position(),
	}

	p.skipNewlines()
	file.LeadingComments = p.getLeadingCommentGroup(file)

	file.Package = p.parsePackage()
	if file.Package == "" {
		return nil, p.errors.Err()
	}

	p.skipNewlines()
	file.Imports = p.parseImports()
	p.skipNewlines()

	for p.current.Type != TokenEOF {
		p.skipNewlines()
		if p.current.Type == TokenEOF {
			break
		}

		leadingComments := p.getLeadingCommentGroup(file)

		switch p.current.Type {
		case TokenComponent:
			comp := p.parseComponent()
			if comp != nil {
				comp.LeadingComments = leadingComments
				file.Components = append(file.Components, comp)
			} else {
				p.synchronize()
			}
		case TokenFunc:
			fn := p.parseGoFunc()
			if fn != nil {
				fn.LeadingComments = leadingComments
				file.Funcs = append(file.Funcs, fn)
			} else {
				p.synchronize()
			}
		case TokenTypeKw, TokenConst, TokenVar:
			decl := p.parseGoDecl()
			if decl != nil {
				decl.LeadingComments = leadingComments
				file.Decls = append(file.Decls, decl)
			} else {
				p.synchronize()
			}
		default:
			p.errors.AddErrorf(SyntaxError, p.position(), "unexpected %s, expected component, func, type, const, or var", p.current.Type)
			p.advance()
			p.synchronize()
		}
	}

	p.collectPendingComments()
	file.OrphanComments = append(file.OrphanComments, groupComments(p.consumePendingComments())...)

	for _, err := range p.lexer.Errors().Errors() {
		p.errors.Add(err)
	}

	return file, p.errors.Err()
}

// parsePackage parses "package <name>".
func (p *Parser) parsePackage() string {
	if p.current.Type != TokenPackage {
		p.errors.AddError(SyntaxError, p.position(), "expected 'package' declaration")
		return ""
	}
	p.advance()

	if p.current.Type != TokenIdent {
		p.errors.AddError(SyntaxError, p.position(), "expected package name")
		return ""
	}
	name := p.current.Literal
	p.advanceSkipNewlines()
	return name
}

// parseImports parses import statements.
// Supports:
//   - import "path"
//   - import alias "path"
//   - import ( "path1"; "path2" )
//   - import ( alias "path" )
func (p *Parser) parseImports() []Import {
	var imports []Import

	for p.current.Type == TokenImport {
		p.advance()
		p.skipNewlines()

		if p.current.Type == TokenLParen {
			p.advance()
			p.skipNewlines()

			for p.current.Type != TokenRParen && p.current.Type != TokenEOF {
				imp := p.parseSingleImport()
				if imp != nil {
					imports = append(imports, *imp)
				} else {
					p.advance()
				}
				for p.current.Type == TokenNewline || p.current.Type == TokenSemicolon {
					p.advance()
				}
			}
			p.dropCommentsBefore(p.current.StartPos)
			p.expect(TokenRParen)
		} else {
			imp := p.parseSingleImport()
			if imp != nil {
				imports = append(imports, *imp)
			}
		}
		p.dropCommentsBefore(p.current.StartPos + 1)
		p.skipNewlines()
	}

	return imports
}

// parseSingleImport parses a single import: [alias] "path"
func (p *Parser) parseSingleImport() *Import {
	pos := p.position()
	var alias string

	switch p.current.Type {
	case TokenIdent:
		alias = p.current.Literal
		p.advance()
	case TokenDot:
		alias = "."
		p.advance()
	}

	if p.current.Type != TokenString {
		p.errors.AddError(SyntaxError, p.position(), "expected import path string")
		return nil
	}

	path := p.current.Literal
	p.advance()

	return &Import{
		Alias:    alias,
		Path:     path,
		Position: pos,
	}
}
