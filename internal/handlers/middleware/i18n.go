package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey guarda o idioma resolvido da requisição
	LanguageContextKey = "language"
	// I18nServiceContextKey guarda o serviço de traduções
	I18nServiceContextKey = "i18n_service"
	// LanguageQueryParam força um idioma, útil para links de download e clientes sem header
	LanguageQueryParam = "lang"
)

// I18nMiddleware resolve o idioma das mensagens de erro e das notificações
type I18nMiddleware struct {
	service *i18n.Service
	// supported em minúsculas -> grafia canônica ("pt-br" -> "pt-BR")
	supported map[string]string
}

// NewI18nMiddleware cria o middleware a partir dos idiomas carregados no serviço
func NewI18nMiddleware(service *i18n.Service) *I18nMiddleware {
	supported := make(map[string]string)
	for _, lang := range service.GetSupportedLanguages() {
		supported[strings.ToLower(lang)] = lang
	}
	return &I18nMiddleware{service: service, supported: supported}
}

// DetectLanguage escolhe o idioma na ordem: ?lang, Accept-Language (por peso), padrão.
// O idioma escolhido volta no header Content-Language.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.match(c.Query(LanguageQueryParam))
		if lang == "" {
			lang = m.fromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.service.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.service)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

type weightedTag struct {
	tag    string
	weight float64
}

// fromAcceptLanguage devolve o idioma suportado de maior peso.
// Ex.: "en;q=0.5, pt-BR" -> "pt-BR"; empates mantêm a ordem do header.
func (m *I18nMiddleware) fromAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	var tags []weightedTag
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if tag == "" || tag == "*" {
			continue
		}
		weight := 1.0
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(q, 64)
			if err != nil {
				continue
			}
			weight = parsed
		}
		if weight <= 0 {
			continue
		}
		tags = append(tags, weightedTag{tag: tag, weight: weight})
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].weight > tags[j].weight })

	for _, t := range tags {
		if lang := m.match(t.tag); lang != "" {
			return lang
		}
	}
	return ""
}

// match compara sem diferenciar maiúsculas. Sem correspondência exata, tenta o idioma
// base ("en-US" -> "en") e depois uma variante regional do mesmo idioma ("pt" -> "pt-BR").
func (m *I18nMiddleware) match(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if lang, ok := m.supported[tag]; ok {
		return lang
	}

	base, _, _ := strings.Cut(tag, "-")
	if lang, ok := m.supported[base]; ok {
		return lang
	}

	// Ordena para que a escolha entre variantes seja determinística
	keys := make([]string, 0, len(m.supported))
	for key := range m.supported {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.HasPrefix(key, base+"-") {
			return m.supported[key]
		}
	}
	return ""
}
