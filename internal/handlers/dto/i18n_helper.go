package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.category_duplicate", map[string]interface{}{"Tipo": "Despesa"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := translator(c)
	if service == nil {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

func translator(c *gin.Context) *i18n.Service {
	value, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil
	}
	service, _ := value.(*i18n.Service)
	return service
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	lang, exists := c.Get(middleware.LanguageContextKey)
	if !exists {
		return i18n.DefaultLanguage
	}

	langStr, ok := lang.(string)
	if !ok {
		return i18n.DefaultLanguage
	}

	return langStr
}
