// Package i18n translates user-facing API messages. English is the default;
// Portuguese and Dutch catalogs cover the same keys.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the fallback language (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys against per-locale catalogs.
type Translator struct {
	catalogs map[string]map[string]string
}

// NewTranslator builds a translator over the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{catalogs: catalogs()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate resolves key in the given locale. Unknown locales and keys
// missing from a catalog fall back to English; a key absent everywhere is
// returned verbatim.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	catalog, ok := t.catalogs[locale]
	if !ok {
		catalog = t.catalogs[DefaultLocale]
	}

	if msg, ok := catalog[key]; ok {
		return msg
	}
	if msg, ok := t.catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks a supported locale from the Accept-Language header,
// reading only the first entry (e.g. "pt-BR,pt;q=0.9" resolves to "pt").
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	first := strings.TrimSpace(strings.Split(acceptLang, ",")[0])
	lang := strings.TrimSpace(strings.Split(first, ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)

	if _, ok := catalogs()[lang]; ok {
		return lang
	}
	return DefaultLocale
}

func catalogs() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyInvalidCredentials: "Invalid username or password",
			ErrKeyAPIKeyRequired:     "API key is required",
			ErrKeyInvalidAPIKey:      "Invalid API key",
			ErrKeyForbidden:          "Forbidden",
			ErrKeyNotFound:           "Not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "Conflict",
			ErrKeyValidationCuts:     "Stock and cut dimensions must be valid positive values",
			ErrKeyInvalidToken:       "Invalid or expired token",
			ErrKeyTokenRequired:      "Authentication token is required",
			ErrKeyTimeout:            "Request timed out",

			SuccessKeyPlanCalculated: "Cut plan computed successfully",
		},
		"pt": {
			ErrKeyInvalidRequest:     "Requisição inválida",
			ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
			ErrKeyInternalError:      "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:       "Não autorizado",
			ErrKeyInvalidCredentials: "Nome de usuário ou senha inválidos",
			ErrKeyAPIKeyRequired:     "Chave de API é obrigatória",
			ErrKeyInvalidAPIKey:      "Chave de API inválida",
			ErrKeyForbidden:          "Proibido",
			ErrKeyNotFound:           "Não encontrado",
			ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:           "Conflito",
			ErrKeyValidationCuts:     "As dimensões da barra e dos cortes devem ser valores positivos válidos",
			ErrKeyInvalidToken:       "Token inválido ou expirado",
			ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
			ErrKeyTimeout:            "Tempo limite da requisição excedido",

			SuccessKeyPlanCalculated: "Plano de corte calculado com sucesso",
		},
		"nl": {
			ErrKeyInvalidRequest:     "Ongeldig verzoek",
			ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
			ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
			ErrKeyUnauthorized:       "Niet geautoriseerd",
			ErrKeyInvalidCredentials: "Ongeldige gebruikersnaam of wachtwoord",
			ErrKeyAPIKeyRequired:     "API-sleutel is vereist",
			ErrKeyInvalidAPIKey:      "Ongeldige API-sleutel",
			ErrKeyForbidden:          "Verboden",
			ErrKeyNotFound:           "Niet gevonden",
			ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:           "Conflict",
			ErrKeyValidationCuts:     "Voorraad- en zaagafmetingen moeten geldige positieve waarden zijn",
			ErrKeyInvalidToken:       "Ongeldig of verlopen token",
			ErrKeyTokenRequired:      "Authenticatietoken is vereist",
			ErrKeyTimeout:            "Verzoek time-out",

			SuccessKeyPlanCalculated: "Zaagplan succesvol berekend",
		},
	}
}
