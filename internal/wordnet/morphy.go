package wordnet

import "strings"

type substitution struct {
	suffix      string
	replacement string
}

var substitutions = map[POS][]substitution{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	Adverb: nil,
}

// Morphy returns the base forms of form that exist in the index for pos.
// The exception list wins when it has an entry; otherwise detachment rules
// are applied repeatedly until some candidate is found.
func (l *Lexicon) Morphy(form string, pos POS) []string {
	if exc, ok := l.exceptions[pos][form]; ok {
		return l.known(append([]string{form}, exc...), pos)
	}

	forms := applyRules([]string{form}, pos)
	if found := l.known(append([]string{form}, forms...), pos); len(found) > 0 {
		return found
	}
	for len(forms) > 0 {
		forms = applyRules(forms, pos)
		if found := l.known(forms, pos); len(found) > 0 {
			return found
		}
	}
	return nil
}

func applyRules(forms []string, pos POS) []string {
	var out []string
	for _, form := range forms {
		for _, sub := range substitutions[pos] {
			if strings.HasSuffix(form, sub.suffix) {
				out = append(out, strings.TrimSuffix(form, sub.suffix)+sub.replacement)
			}
		}
	}
	return out
}

func (l *Lexicon) known(forms []string, pos POS) []string {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, form := range forms {
		if !l.has(form, pos) {
			continue
		}
		if _, dup := seen[form]; dup {
			continue
		}
		seen[form] = struct{}{}
		out = append(out, form)
	}
	return out
}
