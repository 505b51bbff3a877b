package keyword

import (
	"fmt"
	"regexp"
	"strings"
)

// Error kinds surfaced by marker-header parsing. These map directly onto
// diag.Kind values one layer up; keyword stays independent of the diag
// package so it can be imported without pulling in the validator.
var (
	ErrUnknownKeyword   = fmt.Errorf("unknown keyword")
	ErrInvalidAttribute = fmt.Errorf("invalid attribute")
	ErrInvalidColor     = fmt.Errorf("invalid color")
)

// ParseError carries the offending token alongside a sentinel kind so
// callers can match with errors.Is while still rendering the token.
type ParseError struct {
	Kind  error
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// headerFields splits a marker header into its leading keyword-spec
// token and the remaining whitespace-separated attribute tokens,
// respecting straight-quoted attribute values that may contain spaces.
func headerFields(markerText string) []string {
	var fields []string
	var buf strings.Builder
	inQuote := false
	flush := func() {
		if buf.Len() > 0 {
			fields = append(fields, buf.String())
			buf.Reset()
		}
	}
	for _, r := range markerText {
		switch {
		case r == '"':
			inQuote = !inQuote
			buf.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuote:
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return fields
}

// ParseComposite splits a marker header on the leading `+`-joined keyword
// token, looks up each name, and returns the deduplicated list sorted by
// NestingRank (ascending: outermost first). See spec.md §4.1.
func (r *Registry) ParseComposite(markerText string) ([]*Keyword, error) {
	fields := headerFields(markerText)
	if len(fields) == 0 {
		return nil, &ParseError{Kind: ErrUnknownKeyword, Token: ""}
	}
	names := strings.Split(fields[0], "+")
	seen := make(map[string]bool, len(names))
	var found []*Keyword
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kw, ok := r.Lookup(name)
		if !ok {
			return nil, &ParseError{Kind: ErrUnknownKeyword, Token: name}
		}
		if seen[kw.Name] {
			continue
		}
		seen[kw.Name] = true
		found = append(found, kw)
	}
	if len(found) == 0 {
		return nil, &ParseError{Kind: ErrUnknownKeyword, Token: fields[0]}
	}
	sortByRank(found)
	return found, nil
}

func sortByRank(kws []*Keyword) {
	for i := 1; i < len(kws); i++ {
		j := i
		for j > 0 && kws[j-1].NestingRank > kws[j].NestingRank {
			kws[j-1], kws[j] = kws[j], kws[j-1]
			j--
		}
	}
}

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var namedColors = map[string]bool{
	"red": true, "blue": true, "green": true, "yellow": true,
	"black": true, "white": true, "orange": true, "purple": true,
	"gray": true, "pink": true,
}

// ValidColor reports whether value is an acceptable CSS color literal:
// a `#RRGGBB` hex triplet or a member of the small named-color allow
// list (spec.md §9 Open Question, resolved in SPEC_FULL.md §11).
func ValidColor(value string) bool {
	if hexColorRE.MatchString(value) {
		return true
	}
	return namedColors[strings.ToLower(value)]
}

// ParseAttributes extracts `key=value` pairs that follow the keyword
// token in a marker header. Values may be bare or double-quoted; color
// attributes are validated against ValidColor.
func (r *Registry) ParseAttributes(markerText string) (map[string]string, error) {
	fields := headerFields(markerText)
	attrs := make(map[string]string)
	if len(fields) <= 1 {
		return attrs, nil
	}
	kws, err := r.ParseComposite(markerText)
	if err != nil {
		kws = nil
	}
	for _, field := range fields[1:] {
		eq := strings.IndexByte(field, '=')
		if eq < 0 {
			return nil, &ParseError{Kind: ErrInvalidAttribute, Token: field}
		}
		key := field[:eq]
		value := strings.Trim(field[eq+1:], `"`)
		if !attrRecognized(kws, key) {
			return nil, &ParseError{Kind: ErrInvalidAttribute, Token: key}
		}
		if isColorAttr(kws, key) && !ValidColor(value) {
			return nil, &ParseError{Kind: ErrInvalidColor, Token: value}
		}
		attrs[key] = value
	}
	return attrs, nil
}

func attrRecognized(kws []*Keyword, key string) bool {
	if len(kws) == 0 {
		return true
	}
	for _, kw := range kws {
		if _, ok := kw.Attr(key); ok {
			return true
		}
	}
	return false
}

func isColorAttr(kws []*Keyword, key string) bool {
	for _, kw := range kws {
		if spec, ok := kw.Attr(key); ok && spec.IsColor {
			return true
		}
	}
	return false
}
