package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional values substituted into "{name}" placeholders (for
// example "expected", "actual" or "cause").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_sample":          "sample value cannot be nil",
		"mixed_type":              "composite schema format does not support heterogeneous arrays: expected {expected}, got {actual}",
		"schema_not_serializable": "invalid sample provided: ensure that the data is fully JSON serializable to be able to generate a schema from it. Actual error: {cause}",
		"parse_error":             "cannot parse input as {expected}",
		"type_mismatch":           "invalid input data type to parse. Expected: {expected} but got {actual}",
	},
	"ja": {
		"invalid_sample":          "サンプル値が nil です",
		"mixed_type":              "配列の要素型が混在しています: 期待 {expected}, 実際 {actual}",
		"schema_not_serializable": "サンプルを JSON にシリアライズできません。エラー: {cause}",
		"parse_error":             "入力を {expected} として解析できません",
		"type_mismatch":           "入力データの型が不正です。期待: {expected} 実際: {actual}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
