// Package scriptdb holds the Script records loaded from Scripts.txt and the
// per-character script table loaded from UnicodeDataProps*.txt.
package scriptdb

import "github.com/uroman-go/uroman/internal/uchar"

// Script describes a writing system: its name(s), the languages it is used
// for, its direction, and (for abugidas) the ordered list of default vowels
// implicitly carried by a bare consonant.
type Script struct {
	Name                 string
	AltNames             []string
	Languages            []string
	Direction            string
	AbugidaDefaultVowels []string
}

// Store is the read-only-after-load script index.
type Store struct {
	byName     map[string]*Script
	charScript map[rune]string
}

func NewStore() *Store {
	return &Store{
		byName:     make(map[string]*Script),
		charScript: make(map[rune]string),
	}
}

func (s *Store) AddScript(sc *Script) {
	s.byName[normalizeName(sc.Name)] = sc
	for _, alt := range sc.AltNames {
		s.byName[normalizeName(alt)] = sc
	}
}

func (s *Store) SetCharScript(r rune, scriptName string) {
	s.charScript[r] = scriptName
}

// Lookup returns the Script record for a script name (case-insensitive), if any.
func (s *Store) Lookup(name string) (*Script, bool) {
	sc, ok := s.byName[normalizeName(name)]
	return sc, ok
}

// ScriptNameOf returns the script name for a character: the explicit
// per-character override if loaded, otherwise the stdlib-derived basic
// script name.
func (s *Store) ScriptNameOf(r rune) string {
	if s != nil {
		if name, ok := s.charScript[r]; ok {
			return name
		}
	}
	return uchar.BasicScriptName(r)
}

func normalizeName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
