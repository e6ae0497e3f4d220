package analysis

import "strings"

// Heuristic part-of-speech bucketing. This is a closed-lexicon + suffix
// approximation: good enough to measure how many grammatical categories an
// answer touches, which is all the diversity signal needs.

var pronouns = wordSet("i you he she it we they me him her us them my your his its our their mine yours theirs myself yourself himself herself itself ourselves themselves who whom whose someone anyone everyone nothing something anything everything")

var determiners = wordSet("the a an this that these those each every some any no all both few many much several either neither")

var prepositions = wordSet("of in on at by for with about against between into through during before after above below to from up down over under across around near behind beyond within without")

var conjunctions = wordSet("and but or nor yet so because although though while if unless since whereas therefore however moreover furthermore")

var auxiliaries = wordSet("am is are was were be been being do does did have has had will would shall should may might must can could")

var interjections = wordSet("oh wow hey hmm ah uh um yeah well okay")

var numberWords = wordSet("zero one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty thirty forty fifty sixty seventy eighty ninety hundred thousand million billion percent half quarter")

var commonVerbs = wordSet("go went gone make made get got see saw seen say said think thought know knew use used work worked take took give gave come came want wanted need needed run ran put find found tell told ask asked try tried call called feel felt become became leave left keep kept let begin began seem seemed help helped talk talked turn turned start started show showed hear heard play played move moved live lived believe believed hold held bring brought happen happened write wrote provide provided sit sat stand stood lose lost pay paid meet met include included continue continued learn learned change changed lead led understand understood watch watched follow followed stop stopped build built create created develop developed implement implemented design designed optimize optimized improve improved test tested deploy deployed fix fixed solve solved")

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "ant", "ent", "ary", "less", "ish"}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(s) {
		out[w] = true
	}
	return out
}

// posCategoryCount returns the number of distinct grammatical categories
// present in the text (up to 11).
func posCategoryCount(lower string) int {
	cats := map[string]bool{}
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, punctTrimCutset)
		if tok == "" {
			continue
		}
		cats[posCategory(tok)] = true
	}
	return len(cats)
}

func posCategory(w string) string {
	switch {
	case digitPattern.MatchString(w) || numberWords[w]:
		return "number"
	case pronouns[w]:
		return "pronoun"
	case determiners[w]:
		return "determiner"
	case prepositions[w]:
		return "preposition"
	case conjunctions[w]:
		return "conjunction"
	case auxiliaries[w]:
		return "auxiliary"
	case interjections[w]:
		return "interjection"
	case len(w) > 3 && strings.HasSuffix(w, "ly"):
		return "adverb"
	case commonVerbs[w] || (len(w) > 4 && (strings.HasSuffix(w, "ing") || strings.HasSuffix(w, "ed"))):
		return "verb"
	case hasAdjectiveSuffix(w):
		return "adjective"
	default:
		return "noun"
	}
}

func hasAdjectiveSuffix(w string) bool {
	if len(w) <= 4 {
		return false
	}
	for _, suf := range adjectiveSuffixes {
		if strings.HasSuffix(w, suf) {
			return true
		}
	}
	return false
}

// Passive voice: a sentence counts once if any auxiliary is directly followed
// (allowing one intervening word) by a past participle.

var irregularParticiples = wordSet("done made built written taken given seen known shown found held kept left lost met paid put read said sent set told thought understood won chosen driven spoken broken brought bought caught taught begun become gone grown drawn thrown worn torn sung hidden beaten bitten fallen felt led heard hit hurt")

var passiveAuxiliaries = wordSet("is are was were am be been being get gets got gotten")

func isPassiveSentence(sentence string) bool {
	ws := words(sentence)
	for i, w := range ws {
		if !passiveAuxiliaries[w] {
			continue
		}
		for j := i + 1; j < len(ws) && j <= i+2; j++ {
			if isPastParticiple(ws[j]) {
				return true
			}
		}
	}
	return false
}

func isPastParticiple(w string) bool {
	if irregularParticiples[w] {
		return true
	}
	return len(w) > 3 && strings.HasSuffix(w, "ed")
}
