// Package romaji transliterates Japanese text into passport-style Hepburn romaji.
package romaji

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	hiraganaFirst  = 0x3041
	hiraganaLast   = 0x3096
	hiraganaOffset = 0x60

	sokuon     = 'ッ'
	moraicN    = 'ン'
	longVowel  = 'ー'
	digraphLen = 2
)

var monographs = map[rune]string{
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	'カ': "ka", 'キ': "ki", 'ク': "ku", 'ケ': "ke", 'コ': "ko",
	'ガ': "ga", 'ギ': "gi", 'グ': "gu", 'ゲ': "ge", 'ゴ': "go",
	'サ': "sa", 'シ': "shi", 'ス': "su", 'セ': "se", 'ソ': "so",
	'ザ': "za", 'ジ': "ji", 'ズ': "zu", 'ゼ': "ze", 'ゾ': "zo",
	'タ': "ta", 'チ': "chi", 'ツ': "tsu", 'テ': "te", 'ト': "to",
	'ダ': "da", 'ヂ': "ji", 'ヅ': "zu", 'デ': "de", 'ド': "do",
	'ナ': "na", 'ニ': "ni", 'ヌ': "nu", 'ネ': "ne", 'ノ': "no",
	'ハ': "ha", 'ヒ': "hi", 'フ': "fu", 'ヘ': "he", 'ホ': "ho",
	'バ': "ba", 'ビ': "bi", 'ブ': "bu", 'ベ': "be", 'ボ': "bo",
	'パ': "pa", 'ピ': "pi", 'プ': "pu", 'ペ': "pe", 'ポ': "po",
	'マ': "ma", 'ミ': "mi", 'ム': "mu", 'メ': "me", 'モ': "mo",
	'ヤ': "ya", 'ユ': "yu", 'ヨ': "yo",
	'ラ': "ra", 'リ': "ri", 'ル': "ru", 'レ': "re", 'ロ': "ro",
	'ワ': "wa", 'ヰ': "i", 'ヱ': "e", 'ヲ': "o", 'ン': "n",
	'ヴ': "vu",
	'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o",
	'ャ': "ya", 'ュ': "yu", 'ョ': "yo", 'ヮ': "wa",
	'・': " ",
}

var digraphs = map[string]string{
	"キャ": "kya", "キュ": "kyu", "キョ": "kyo",
	"ギャ": "gya", "ギュ": "gyu", "ギョ": "gyo",
	"シャ": "sha", "シュ": "shu", "ショ": "sho", "シェ": "she",
	"ジャ": "ja", "ジュ": "ju", "ジョ": "jo", "ジェ": "je",
	"チャ": "cha", "チュ": "chu", "チョ": "cho", "チェ": "che",
	"ヂャ": "ja", "ヂュ": "ju", "ヂョ": "jo",
	"ニャ": "nya", "ニュ": "nyu", "ニョ": "nyo",
	"ヒャ": "hya", "ヒュ": "hyu", "ヒョ": "hyo",
	"ビャ": "bya", "ビュ": "byu", "ビョ": "byo",
	"ピャ": "pya", "ピュ": "pyu", "ピョ": "pyo",
	"ミャ": "mya", "ミュ": "myu", "ミョ": "myo",
	"リャ": "rya", "リュ": "ryu", "リョ": "ryo",
	"ティ": "ti", "ディ": "di", "トゥ": "tu", "ドゥ": "du",
	"ファ": "fa", "フィ": "fi", "フェ": "fe", "フォ": "fo",
	"ウィ": "wi", "ウェ": "we", "ウォ": "wo",
	"ヴァ": "va", "ヴィ": "vi", "ヴェ": "ve", "ヴォ": "vo",
}

// syllable is one unit of the intermediate representation.
type syllable struct {
	text   string
	kana   bool
	marker rune // sokuon or moraic n
}

// KanaToRomaji converts hiragana and katakana to passport-style romaji.
// Half-width katakana and full-width Latin are folded first; other runes
// are copied through unchanged.
func KanaToRomaji(s string) string {
	return render(split([]rune(toKatakana(s))))
}

// HasKana reports whether s contains at least one hiragana or katakana rune.
func HasKana(s string) bool {
	for _, r := range norm.NFKC.String(s) {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= hiraganaFirst && r <= hiraganaLast {
			return r + hiraganaOffset
		}
		return r
	}, norm.NFKC.String(s))
}

func split(runes []rune) []syllable {
	out := make([]syllable, 0, len(runes))
	for i := 0; i < len(runes); {
		r := runes[i]

		switch r {
		case sokuon:
			out = append(out, syllable{marker: sokuon, kana: true})
			i++
			continue
		case moraicN:
			out = append(out, syllable{marker: moraicN, text: "n", kana: true})
			i++
			continue
		case longVowel:
			// passport spelling does not mark long vowels
			i++
			continue
		}

		if i+1 < len(runes) {
			if text, ok := digraphs[string(runes[i:i+digraphLen])]; ok {
				out = append(out, syllable{text: text, kana: true})
				i += digraphLen
				continue
			}
		}

		if text, ok := monographs[r]; ok {
			out = append(out, syllable{text: text, kana: true})
		} else {
			out = append(out, syllable{text: string(r)})
		}
		i++
	}
	return out
}

func render(syllables []syllable) string {
	var b strings.Builder
	prev := ""

	for i, s := range syllables {
		next := nextText(syllables, i)

		switch {
		case s.marker == sokuon:
			if strings.HasPrefix(next, "ch") {
				b.WriteByte('t')
			} else if next != "" && !isVowel(next[0]) {
				b.WriteByte(next[0])
			}
			continue
		case s.marker == moraicN:
			if next != "" && strings.ContainsRune("bmp", rune(next[0])) {
				b.WriteByte('m')
			} else {
				b.WriteByte('n')
			}
			prev = "n"
			continue
		case !s.kana:
			b.WriteString(s.text)
			prev = ""
			continue
		}

		// Long vowels fold into the preceding syllable: ou, oo and uu.
		if (s.text == "u" && (strings.HasSuffix(prev, "o") || strings.HasSuffix(prev, "u"))) ||
			(s.text == "o" && strings.HasSuffix(prev, "o")) {
			prev = ""
			continue
		}

		b.WriteString(s.text)
		prev = s.text
	}

	return b.String()
}

func nextText(syllables []syllable, i int) string {
	for j := i + 1; j < len(syllables); j++ {
		if syllables[j].marker == sokuon {
			continue
		}
		if syllables[j].kana {
			return syllables[j].text
		}
		return ""
	}
	return ""
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}
