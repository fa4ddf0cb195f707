// Package resolve maps free-text country and language names to canonical
// codes. Normalization rules and fallback strategies are parameterized so
// the same resolver serves both name domains.
package resolve

import "strings"

// Rules configure one resolver instance: which tokens the normalizer drops
// or rewrites, literal alias substitutions bridging dataset naming to the
// reference table, hardcoded codes that bypass the table, and which fallback
// strategies apply.
type Rules struct {
	Kind           string
	IgnoredWords   map[string]struct{}
	ReplacedWords  map[string]string
	Aliases        map[string]string
	DirectCodes    map[string]string
	CommaInversion bool
	Parenthetical  bool
}

// LanguageRules configure resolution of spoken language names.
func LanguageRules() Rules {
	return Rules{
		Kind: "language",
		IgnoredWords: map[string]struct{}{
			"only": {},
		},
	}
}

// CountryRules configure resolution of country display names. The alias
// table covers known mismatches between almanac naming and the reference
// table. Kosovo has no ISO code in the table and maps straight to XK.
func CountryRules() Rules {
	return Rules{
		Kind: "country",
		IgnoredWords: map[string]struct{}{
			"the":  {},
			"only": {},
		},
		ReplacedWords: map[string]string{
			"and":   "&",
			"saint": "st.",
		},
		Aliases: map[string]string{
			"burma":                         "myanmar (burma)",
			"cabo verde":                    "cape verde",
			"congo, democratic republic of": "congo - kinshasa",
			"congo, republic of":            "congo - brazzaville",
			"gaza strip":                    "palestinian territories",
			"west bank":                     "palestinian territories",
			"hong kong":                     "hong kong sar china",
			"macau":                         "macao sar china",
			"svalbard":                      "svalbard & jan mayen",
			"virgin islands":                "british virgin islands",
		},
		DirectCodes: map[string]string{
			"kosovo": "XK",
		},
		CommaInversion: true,
		Parenthetical:  true,
	}
}

// Normalize reduces a free-text name to its canonical lookup key: lowercase,
// drop ignored tokens, rewrite replaced tokens, rejoin with single spaces,
// then apply the literal alias table. Normalize is idempotent.
func (r Rules) Normalize(name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ignored := r.IgnoredWords[token]; ignored {
			continue
		}
		if replacement, ok := r.ReplacedWords[token]; ok {
			token = replacement
		}
		kept = append(kept, token)
	}

	normalized := strings.Join(kept, " ")
	if alias, ok := r.Aliases[normalized]; ok {
		normalized = alias
	}
	return normalized
}
