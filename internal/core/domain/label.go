// Package domain contains the core value types of the analysis phase: labels,
// configurations, aspects and the configured dependency edges built from them.
package domain

import "strings"

// Label uniquely identifies a build target, e.g. "//cmd/tool:tool".
// It is an immutable, comparable value; two labels denoting the same target
// compare equal regardless of whether the target name was written explicitly.
type Label struct {
	repo InternedString
	pkg  InternedString
	name InternedString
}

// ParseLabel parses an absolute label string into its canonical form.
//
// Accepted shapes:
//
//	//pkg/path:name
//	//pkg/path          (name defaults to the last package segment)
//	//:name             (root package)
//	@repo//pkg/path:name
//
// "//a" and "//a:a" parse to the same value.
func ParseLabel(s string) (Label, error) {
	rest := s

	var repo string
	if strings.HasPrefix(rest, "@") {
		idx := strings.Index(rest, "//")
		if idx < 1 {
			return Label{}, WithDetail(ErrInvalidLabel, "label", s)
		}
		repo = rest[1:idx]
		rest = rest[idx:]
		if repo == "" || !isValidPath(repo) {
			return Label{}, WithDetail(ErrInvalidLabel, "label", s)
		}
	}

	if !strings.HasPrefix(rest, "//") {
		return Label{}, WithDetail(ErrInvalidLabel, "label", s)
	}
	rest = rest[2:]

	pkg := rest
	name := ""
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		pkg = rest[:idx]
		name = rest[idx+1:]
		if name == "" {
			return Label{}, WithDetail(ErrInvalidLabel, "label", s)
		}
	} else {
		// Shorthand form: the target name is the last package segment.
		if idx := strings.LastIndexByte(pkg, '/'); idx >= 0 {
			name = pkg[idx+1:]
		} else {
			name = pkg
		}
	}

	if name == "" || !isValidName(name) {
		return Label{}, WithDetail(ErrInvalidLabel, "label", s)
	}
	if pkg != "" && !isValidPath(pkg) {
		return Label{}, WithDetail(ErrInvalidLabel, "label", s)
	}

	return Label{
		repo: NewInternedString(repo),
		pkg:  NewInternedString(pkg),
		name: NewInternedString(name),
	}, nil
}

// MustParseLabel is ParseLabel for statically known label literals.
// It panics on a malformed label.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// IsAbsent reports whether the label is the zero value.
func (l Label) IsAbsent() bool {
	return l.name.IsZero()
}

// Repo returns the repository part of the label, or "" for the main repository.
func (l Label) Repo() string { return l.repo.String() }

// Package returns the package path of the label.
func (l Label) Package() string { return l.pkg.String() }

// Name returns the target name of the label.
func (l Label) Name() string { return l.name.String() }

// String renders the canonical form with an explicit target name,
// e.g. "//a:a" or "@tools//lint:lint".
func (l Label) String() string {
	if l.IsAbsent() {
		return ""
	}
	var b strings.Builder
	if repo := l.repo.String(); repo != "" {
		b.WriteByte('@')
		b.WriteString(repo)
	}
	b.WriteString("//")
	b.WriteString(l.pkg.String())
	b.WriteByte(':')
	b.WriteString(l.name.String())
	return b.String()
}

// Compare totally orders labels by repository, package, then target name.
func (l Label) Compare(other Label) int {
	if c := l.repo.Compare(other.repo); c != 0 {
		return c
	}
	if c := l.pkg.Compare(other.pkg); c != 0 {
		return c
	}
	return l.name.Compare(other.name)
}

func isValidName(s string) bool {
	for i := range len(s) {
		if !isLabelChar(s[i]) && s[i] != '.' && s[i] != '+' {
			return false
		}
	}
	return true
}

func isValidPath(s string) bool {
	if strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") || strings.Contains(s, "//") {
		return false
	}
	for i := range len(s) {
		if !isLabelChar(s[i]) && s[i] != '/' && s[i] != '.' {
			return false
		}
	}
	return true
}

func isLabelChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
