package apimodel

import "strings"

// TokenKind tells plain source text from references to other declarations.
type TokenKind int

const (
	TokenContent TokenKind = iota
	TokenReference
)

// Token is one span of declaration source text.
type Token struct {
	Kind TokenKind
	Text string
	// CanonicalReference identifies the referenced declaration, for example
	// "@scope/pkg!Server". Empty for content tokens and for references to
	// declarations outside the model (such as built-in types).
	CanonicalReference string
}

// Excerpt is the tokenized source text of a declaration or type.
type Excerpt struct {
	Tokens []Token
}

// Text concatenates the token texts.
func (e Excerpt) Text() string {
	var b strings.Builder
	for _, t := range e.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// IsEmpty reports whether the excerpt has no visible text.
func (e Excerpt) IsEmpty() bool {
	return strings.TrimSpace(e.Text()) == ""
}

// References returns the tokens that name another declaration.
func (e Excerpt) References() []Token {
	var out []Token
	for _, t := range e.Tokens {
		if t.Kind == TokenReference && t.CanonicalReference != "" {
			out = append(out, t)
		}
	}
	return out
}

// ContentExcerpt is an excerpt made of a single content token.
func ContentExcerpt(text string) Excerpt {
	if text == "" {
		return Excerpt{}
	}
	return Excerpt{Tokens: []Token{{Kind: TokenContent, Text: text}}}
}
