package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ParseCSS parses a stylesheet with .class and #id selectors (comma groups allowed).
// Other selectors and anything inside at-rules are skipped. Later rules override earlier.
func ParseCSS(content string) (*Stylesheet, error) {
	return parseCSS(bytes.NewBufferString(content))
}

// LoadCSS reads and parses the stylesheet at path.
func LoadCSS(path string) (*Stylesheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSS(f)
}

func parseCSS(r io.Reader) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInput(r), false)
	var (
		current []int // indices into sheet.Rules for the open ruleset
		atDepth int
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return nil, fmt.Errorf("css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			current = current[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range splitSelectors(data, p.Values()) {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
				current = append(current, len(sheet.Rules)-1)
			}
		case css.EndRulesetGrammar:
			current = current[:0]
		case css.DeclarationGrammar:
			if len(current) == 0 {
				continue
			}
			key := strings.ToLower(string(data))
			val := declarationValue(p.Values())
			for _, i := range current {
				sheet.Rules[i].Props[key] = val
			}
		}
	}
}

func splitSelectors(data []byte, values []css.Token) []string {
	var b strings.Builder
	b.Write(data)
	for _, v := range values {
		b.Write(v.Data)
	}
	var out []string
	for _, sel := range strings.Split(b.String(), ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') || strings.ContainsAny(sel, " >+~:[") || strings.ContainsAny(sel[1:], ".#") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

func wordish(tt css.TokenType) bool {
	switch tt {
	case css.IdentToken, css.NumberToken, css.DimensionToken, css.PercentageToken,
		css.HashToken, css.StringToken, css.URLToken:
		return true
	}
	return false
}

// declarationValue joins value tokens, separating adjacent words with one space.
func declarationValue(values []css.Token) string {
	var b strings.Builder
	prevWord := false
	for _, v := range values {
		if v.TokenType == css.WhitespaceToken {
			continue
		}
		word := wordish(v.TokenType)
		if word && prevWord {
			b.WriteByte(' ')
		}
		b.Write(v.Data)
		prevWord = word
	}
	s := strings.TrimSpace(b.String())
	s = strings.TrimSpace(strings.TrimSuffix(s, "!important"))
	return s
}
