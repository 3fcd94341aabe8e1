package token

// keywordSpelling is indexed by Kind-KwCommentStart.
var keywordSpelling = [...]string{
	"$(", "$)", "$[", "$]", "${", "$}", "$c", "$v", "$d", "$a", "$p", "$=", "$.",
}

// keywordBySuffix maps the byte after '$' to the keyword kind.
var keywordBySuffix = map[byte]Kind{
	'(': KwCommentStart,
	')': KwCommentEnd,
	'[': KwFileInclusionStart,
	']': KwFileInclusionEnd,
	'{': KwScopeStart,
	'}': KwScopeEnd,
	'c': KwConstant,
	'v': KwVariable,
	'd': KwDisjoint,
	'a': KwAxiom,
	'p': KwProvable,
	'=': KwProof,
	'.': KwEnd,
}

// LookupKeyword возвращает тип keyword'а, если text является одним из 13 ключевых слов.
// Регистр важен: "$C" не ключевое слово.
func LookupKeyword(text string) (Kind, bool) {
	if len(text) != 2 || text[0] != '$' {
		return Invalid, false
	}
	k, ok := keywordBySuffix[text[1]]
	return k, ok
}
