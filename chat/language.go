package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const defaultLanguageName = "English"

// LanguageName resolves a langcode like "de" or "pt-br" to the English
// name of the language, for use in prompts. Unknown codes fall back to
// English.
func LanguageName(langcode string) string {
	tag, err := language.Parse(langcode)
	if err != nil {
		return defaultLanguageName
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return defaultLanguageName
	}
	return name
}

// apologies are the canned fallback answers per langcode, used when the
// upstream model cannot be reached.
var apologies = map[string]string{
	"en": "I am sorry, I am not able to answer your question right now. Please try again later.",
	"de": "Es tut mir leid, ich kann Ihre Frage im Moment nicht beantworten. Bitte versuchen Sie es später noch einmal.",
	"fr": "Je suis désolé, je ne peux pas répondre à votre question pour le moment. Veuillez réessayer plus tard.",
	"it": "Mi dispiace, al momento non sono in grado di rispondere alla sua domanda. La prego di riprovare più tardi.",
}

// Apology returns the localized fallback answer for a langcode.
func Apology(langcode string) string {
	if apology, ok := apologies[langcode]; ok {
		return apology
	}
	return apologies["en"]
}
