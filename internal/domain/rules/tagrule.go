package rules

import "github.com/rafabene/consulta-backend/internal/domain/entities"

// TagRuleResult é o resultado da avaliação da regra de tags
type TagRuleResult string

const (
	TagRuleOK                TagRuleResult = "OK"
	TagRuleExceedsMax        TagRuleResult = "TAGS_EXCEEDS_MAX"
	TagRuleRequiredForPublic TagRuleResult = "TAGS_REQUIRED_FOR_PUBLIC"
)

// EvaluateTagRule valida a consistência entre estado de rascunho e
// quantidade de tags de uma consulta. Função pura, sem I/O: deve ser
// invocada identicamente nos caminhos de criação e atualização, antes
// de qualquer acesso ao storage.
//
// Uma consulta pública (draft=false) exige de 1 a MaxTags tags; um
// rascunho aceita de 0 a MaxTags.
func EvaluateTagRule(draft bool, tagIDs []uint) TagRuleResult {
	if len(tagIDs) > entities.MaxTags {
		return TagRuleExceedsMax
	}
	if !draft && len(tagIDs) == 0 {
		return TagRuleRequiredForPublic
	}
	return TagRuleOK
}
