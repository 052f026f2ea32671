package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Service gerencia traduções e internacionalização
type Service struct {
	mu              sync.RWMutex
	translations    map[string]map[string]string // [language][key]message
	defaultLanguage string
}

// NewService cria um serviço de i18n com os locales embarcados no binário
func NewService(defaultLang string) (*Service, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return NewServiceFromFS(locales, defaultLang)
}

// NewServiceFromFS cria um serviço de i18n a partir de um fs.FS contendo
// arquivos JSON de tradução (um por idioma: en.json, pt-BR.json, ...)
func NewServiceFromFS(locales fs.FS, defaultLang string) (*Service, error) {
	s := &Service{
		translations:    make(map[string]map[string]string),
		defaultLanguage: defaultLang,
	}

	files, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		data, err := fs.ReadFile(locales, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}

		s.translations[lang] = translations
	}

	// Verificar se o idioma padrão existe
	if _, ok := s.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

// T traduz uma chave para o idioma especificado
// Suporta interpolação de parâmetros usando templates Go ({{.Name}}, {{.TagID}}, etc.)
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Buscar tradução no idioma solicitado
	message := s.getTranslation(lang, key)

	// Se não encontrou, tentar idioma padrão
	if message == "" {
		message = s.getTranslation(s.defaultLanguage, key)
	}

	// Se ainda não encontrou, retornar a chave
	if message == "" {
		return key
	}

	// Se não há parâmetros, retornar mensagem diretamente
	if len(params) == 0 {
		return message
	}

	// Interpolar parâmetros usando template
	tmpl, err := template.New("msg").Parse(message)
	if err != nil {
		// Se houver erro no template, retornar mensagem sem interpolação
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		// Se houver erro na execução, retornar mensagem sem interpolação
		return message
	}

	return buf.String()
}

// getTranslation busca uma tradução sem lock (uso interno)
func (s *Service) getTranslation(lang, key string) string {
	if langMap, ok := s.translations[lang]; ok {
		if msg, ok := langMap[key]; ok {
			return msg
		}
	}
	return ""
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna lista de idiomas suportados
func (s *Service) GetSupportedLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.translations))
	for lang := range s.translations {
		langs = append(langs, lang)
	}
	return langs
}

// IsLanguageSupported verifica se um idioma é suportado
func (s *Service) IsLanguageSupported(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.translations[lang]
	return ok
}
