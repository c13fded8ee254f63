package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "schema_mismatch":
			return "値がスキーマの型と一致しません"
		case "out_of_range":
			return "値が範囲外です"
		case "malformed_literal":
			return "リテラルの字句形式が不正です"
		case "truncated":
			return "入力が途中で終わっています"
		case "invalid_schema":
			return "スキーマが不正です"
		case "too_big":
			return "上限を超えています"
		case "trailing_data":
			return "入力の末尾に余分なデータがあります"
		case "dangling_reference":
			return "参照先の要素が存在しません"
		}
	default: // "en"
		switch code {
		case "schema_mismatch":
			return "value does not match its schema type"
		case "out_of_range":
			return "value out of range"
		case "malformed_literal":
			return "malformed literal"
		case "truncated":
			return "truncated input"
		case "invalid_schema":
			return "invalid schema"
		case "too_big":
			return "limit exceeded"
		case "trailing_data":
			return "trailing data after instance"
		case "dangling_reference":
			return "reference does not address an element"
		}
	}
	return code
}

var currentTranslator atomic.Value

func init() { currentTranslator.Store(holder{dictTranslator{lang: "en"}}) }

// holder keeps the stored concrete type constant for atomic.Value.
type holder struct{ Translator }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().(holder).Message(code, data)
}
