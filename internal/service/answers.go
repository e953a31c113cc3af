package service

import (
	"encoding/json"
	"strconv"

	"github.com/vhtran/talentflow/internal/dto"
	"github.com/vhtran/talentflow/internal/model"
)

// AnswerSet maps question id to the raw submitted value: a JSON string for
// text, number, single-choice and file questions, an array of strings for
// multi-choice. Missing keys and JSON null both mean "unanswered".
type AnswerSet map[uint]json.RawMessage

func NewAnswerSet(inputs []dto.AnswerInputDTO) AnswerSet {
	answers := make(AnswerSet, len(inputs))
	for _, in := range inputs {
		answers[in.QuestionID] = in.Value
	}
	return answers
}

// scalarAnswer decodes a raw value to its scalar string form. JSON numbers
// are accepted and formatted, since number answers may arrive either way.
func scalarAnswer(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

func listAnswer(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	return values, true
}

// answerEmpty reports whether the value counts as "no answer" for required
// checks: missing, JSON null, empty string, or empty array.
func answerEmpty(q model.Question, raw json.RawMessage) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	if q.Type == model.QuestionMultiChoice {
		values, ok := listAnswer(raw)
		return !ok || len(values) == 0
	}
	value, ok := scalarAnswer(raw)
	return !ok || value == ""
}

// questionInScope evaluates the conditional-display rule: a question is in
// scope when it has no conditional, or when the stored answer of the source
// question equals the expected value. The source's own visibility is not
// consulted; conditionals are evaluated a single hop. A dangling source id
// never matches, so the question stays out of scope.
func questionInScope(q model.Question, answers AnswerSet) bool {
	if q.CondSourceID == nil || q.CondEquals == nil {
		return true
	}
	raw, ok := answers[*q.CondSourceID]
	if !ok {
		return false
	}
	value, ok := scalarAnswer(raw)
	return ok && value == *q.CondEquals
}
