// Copyright © 2025 The cljsym authors

/*
EDN snapshot reader.

A state-tracking middleware describes namespaces as one EDN map keyed by
namespace symbol:

	{my.app {:aliases {str clojure.string}
	         :interns {handler {:arglists ("[req]") :doc "..."}
	                   with-conn {:macro true :arglists ("[conn & body]")}}
	         :refers  {join clojure.string/join}}}

The reader accepts the EDN subset such payloads use: maps, vectors, lists,
strings, symbols, keywords, and booleans. Commas are whitespace. Metadata
keys the cache does not interpret are preserved as rendered strings in
VarMeta.Attrs.
*/

package nscache

import (
	"fmt"
	"io"
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// ReadSnapshot parses an EDN namespace description from r.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(b)
}

// ParseSnapshot parses an EDN namespace description from text.
func ParseSnapshot(text []byte) (*Snapshot, error) {
	vals, err := parseEDN(text)
	if err != nil {
		return nil, err
	}
	snap := New()
	for _, v := range vals {
		if v.kind != ednMap {
			return nil, fmt.Errorf("top-level value is not a map: %s", v)
		}
		if err := snapshotFromMap(snap, v); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

const (
	ednInvalid ednKind = iota
	ednSymbol
	ednKeyword
	ednString
	ednBool
	ednSeq
	ednMap
)

type ednKind uint

type ednVal struct {
	kind  ednKind
	str   string
	items []*ednVal // alternating key/value pairs for ednMap
}

// String renders the value approximately as it appeared in the source.
// Used for diagnostics and for stashing uninterpreted metadata in Attrs.
func (v *ednVal) String() string {
	switch v.kind {
	case ednString:
		return fmt.Sprintf("%q", v.str)
	case ednKeyword:
		return ":" + v.str
	case ednSeq:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ednMap:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return v.str
	}
}

func (v *ednVal) truthy() bool {
	return !(v.kind == ednBool && v.str == "false")
}

// get looks up a keyword key in a map value.
func (v *ednVal) get(key string) *ednVal {
	if v.kind != ednMap {
		return nil
	}
	for i := 0; i+1 < len(v.items); i += 2 {
		k := v.items[i]
		if k.kind == ednKeyword && k.str == key {
			return v.items[i+1]
		}
	}
	return nil
}

func parseEDN(text []byte) ([]*ednVal, error) {
	var vals []*ednVal
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newEDNParser()
	root, s := parser(s)
	for root != nil {
		v, err := getEDNVal(root)
		if err != nil {
			return nil, err
		}
		if v != nil {
			vals = append(vals, v)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		return nil, fmt.Errorf("%d: unexpected source text starting: %s", s.Lineno(), b)
	}
	return vals, nil
}

func newEDNParser() parsec.Parser {
	openM := parsec.Atom("{", "OPENMAP")
	closeM := parsec.Atom("}", "CLOSEMAP")
	openV := parsec.Atom("[", "OPENVEC")
	closeV := parsec.Atom("]", "CLOSEVEC")
	openL := parsec.Atom("(", "OPENLIST")
	closeL := parsec.Atom(")", "CLOSELIST")
	comma := parsec.Atom(",", "COMMA")
	// Symbols and keywords share one token class; the leading colon is
	// sorted out during conversion.
	symbol := parsec.Token(`:?[^\s,{}\[\]()"]+`, "SYMBOL")
	var expr parsec.Parser // forward declaration allows recursive values
	exprList := parsec.Kleene(nil, &expr)
	mapExpr := parsec.And(ednNode(ednMap), openM, exprList, closeM)
	vecExpr := parsec.And(ednNode(ednSeq), openV, exprList, closeV)
	listExpr := parsec.And(ednNode(ednSeq), openL, exprList, closeL)
	expr = parsec.OrdChoice(nil,
		comma,
		parsec.String(),
		mapExpr,
		vecExpr,
		listExpr,
		symbol, // symbol comes last because it swallows anything
	)
	return expr
}

// ednNode returns a callback assembling a composite value of the given kind.
func ednNode(kind ednKind) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		v := &ednVal{kind: kind}
		for _, n := range flattenNodes(nodes) {
			child, err := getEDNVal(n)
			if err != nil {
				return err
			}
			if child != nil {
				v.items = append(v.items, child)
			}
		}
		return v
	}
}

// flattenNodes expands the nested node lists that Kleene and OrdChoice
// produce into a single flat list.
func flattenNodes(nodes []parsec.ParsecNode) []parsec.ParsecNode {
	var flat []parsec.ParsecNode
	for _, n := range nodes {
		if sub, ok := n.([]parsec.ParsecNode); ok {
			flat = append(flat, flattenNodes(sub)...)
			continue
		}
		flat = append(flat, n)
	}
	return flat
}

// getEDNVal converts a parsec node into an ednVal. Delimiter and comma
// terminals convert to nil and are dropped by the caller.
func getEDNVal(node parsec.ParsecNode) (*ednVal, error) {
	switch n := node.(type) {
	case *ednVal:
		return n, nil
	case error:
		return nil, n
	case string:
		return &ednVal{kind: ednString, str: unquoteString(n)}, nil
	case *parsec.Terminal:
		if n.Name != "SYMBOL" {
			return nil, nil
		}
		switch {
		case strings.HasPrefix(n.Value, ":"):
			return &ednVal{kind: ednKeyword, str: n.Value[1:]}, nil
		case n.Value == "true" || n.Value == "false":
			return &ednVal{kind: ednBool, str: n.Value}, nil
		case n.Value == "nil":
			return nil, nil
		default:
			return &ednVal{kind: ednSymbol, str: n.Value}, nil
		}
	case []parsec.ParsecNode:
		flat := flattenNodes(n)
		if len(flat) != 1 {
			return nil, fmt.Errorf("unexpected parse result: %v", flat)
		}
		return getEDNVal(flat[0])
	default:
		return nil, fmt.Errorf("unexpected parse node type: %T", node)
	}
}

// The goparsec String parser unescapes the source text but hands the
// result back wrapped in double quotes, so only the quotes need trimming.
func unquoteString(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// snapshotFromMap merges one parsed top-level map into snap.
func snapshotFromMap(snap *Snapshot, m *ednVal) error {
	for i := 0; i+1 < len(m.items); i += 2 {
		key, val := m.items[i], m.items[i+1]
		if key.kind != ednSymbol && key.kind != ednString {
			return fmt.Errorf("namespace key is not a symbol: %s", key)
		}
		if val.kind != ednMap {
			return fmt.Errorf("namespace %s: record is not a map", key.str)
		}
		ns := snap.Define(key.str)
		if aliases := val.get("aliases"); aliases != nil {
			if err := fillStringMap(ns.Aliases, aliases); err != nil {
				return fmt.Errorf("namespace %s aliases: %w", ns.Name, err)
			}
		}
		if refers := val.get("refers"); refers != nil {
			if err := fillStringMap(ns.Refers, refers); err != nil {
				return fmt.Errorf("namespace %s refers: %w", ns.Name, err)
			}
		}
		if interns := val.get("interns"); interns != nil {
			if err := fillInterns(ns, interns); err != nil {
				return fmt.Errorf("namespace %s interns: %w", ns.Name, err)
			}
		}
	}
	return nil
}

func fillStringMap(dst map[string]string, m *ednVal) error {
	if m.kind != ednMap {
		return fmt.Errorf("not a map: %s", m)
	}
	for i := 0; i+1 < len(m.items); i += 2 {
		key, val := m.items[i], m.items[i+1]
		dst[key.str] = val.str
	}
	return nil
}

func fillInterns(ns *Namespace, m *ednVal) error {
	if m.kind != ednMap {
		return fmt.Errorf("not a map: %s", m)
	}
	for i := 0; i+1 < len(m.items); i += 2 {
		key, val := m.items[i], m.items[i+1]
		meta := &VarMeta{Name: key.str, NS: ns.Name}
		if val.kind == ednMap {
			fillVarMeta(meta, val)
		}
		ns.Interns[key.str] = meta
	}
	return nil
}

func fillVarMeta(meta *VarMeta, m *ednVal) {
	for i := 0; i+1 < len(m.items); i += 2 {
		key, val := m.items[i], m.items[i+1]
		if key.kind != ednKeyword {
			continue
		}
		switch key.str {
		case "macro":
			meta.Macro = val.truthy()
		case "instrumented":
			meta.Instrumented = val.truthy()
		case "doc":
			meta.Doc = val.str
		case "arglists":
			// A flat string arglist is tolerated as a single entry.
			if val.kind == ednString {
				meta.Arglists = append(meta.Arglists, val.str)
				break
			}
			for _, item := range val.items {
				if item.kind == ednString {
					meta.Arglists = append(meta.Arglists, item.str)
				} else {
					meta.Arglists = append(meta.Arglists, item.String())
				}
			}
		default:
			if meta.Attrs == nil {
				meta.Attrs = make(map[string]string)
			}
			meta.Attrs[key.str] = val.String()
		}
	}
}
