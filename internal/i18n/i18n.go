// Package i18n holds the editor's user-facing strings in English and
// Russian.
package i18n

import (
	"context"
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	tcatalog "github.com/example/tryon/internal/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgEnterArticle = "Enter an article"
	MsgNotFound     = "Rug not found"
	MsgLoadFailed   = "Failed to load"
	MsgLoading      = "Loading"
	MsgLayer        = "Rug %s"
	MsgScale        = "Scale %d%%"
	MsgRotation     = "Rotation %d°"
	MsgShadow       = "Shadow %d%%"
	MsgShadowOff    = "Shadow off"
	MsgSize         = "Size %s"
	MsgSKU          = "SKU %s"
	MsgCompare      = "Compare %d%%"
	MsgExported     = "Saved %s"
	MsgSaveFailed   = "Could not save %s"
	MsgCopied       = "Copied to clipboard"
	MsgSelfCrossing = "Shape crosses itself"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var messages = catalog.NewBuilder(catalog.Fallback(language.English))

func init() {
	ru := map[string]string{
		MsgEnterArticle: "Введите артикул",
		MsgNotFound:     "Ковер не найден",
		MsgLoadFailed:   "Ошибка загрузки",
		MsgLoading:      "Загрузка",
		MsgLayer:        "Ковер %s",
		MsgScale:        "Масштаб %d%%",
		MsgRotation:     "Поворот %d°",
		MsgShadow:       "Тень %d%%",
		MsgShadowOff:    "Тень выкл.",
		MsgSize:         "Размер %s",
		MsgSKU:          "Артикул %s",
		MsgCompare:      "Сравнение %d%%",
		MsgExported:     "Сохранено: %s",
		MsgSaveFailed:   "Не удалось сохранить %s",
		MsgCopied:       "Скопировано в буфер обмена",
		MsgSelfCrossing: "Контур пересекает сам себя",
	}
	for key, text := range ru {
		messages.SetString(language.English, key, key)
		messages.SetString(language.Russian, key, text)
	}
}

// Match picks the supported language closest to locale, defaulting to
// English.
func Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// Printer returns a printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Match(locale), message.Catalog(messages))
}

// Sprintf formats a message key for locale.
func Sprintf(locale, key string, args ...any) string {
	return Printer(locale).Sprintf(key, args...)
}

// ErrorMessage maps a layer error to the message shown under the layer's
// controls. nil yields "".
func ErrorMessage(locale string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, tcatalog.ErrEmptyCode):
		return Sprintf(locale, MsgEnterArticle)
	case errors.Is(err, tcatalog.ErrNotFound):
		return Sprintf(locale, MsgNotFound)
	default:
		return Sprintf(locale, MsgLoadFailed)
	}
}
