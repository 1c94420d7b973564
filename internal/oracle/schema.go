package oracle

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

var similarSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["matches"],
  "properties": {
    "matches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "similarity_score"],
        "properties": {
          "name": {"type": "string"},
          "industry": {"type": "string"},
          "similarity_score": {"type": "number"},
          "reason": {"type": "string"}
        }
      }
    },
    "confusion_risk": {"type": "string"}
  }
}`)

var personaSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["evokes"],
  "properties": {
    "evokes": {"type": "string"},
    "industry_guess": {"type": "string"},
    "would_trust": {"type": "boolean"},
    "memorable": {"type": "boolean"},
    "explanation": {"type": "string"}
  }
}`)

var alignmentSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": "number"},
    "explanation": {"type": "string"}
  }
}`)

var namesSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["names"],
  "properties": {
    "names": {"type": "array", "items": {"type": "string"}}
  }
}`)

// decode cleans a model reply, validates it against schema and unmarshals
// it into v. Every failure wraps ErrMalformedResponse.
func decode(text string, schema gojsonschema.JSONLoader, v any) error {
	doc := cleanJSON(text)

	res, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return eris.Wrapf(ErrMalformedResponse, "parse: %v", err)
	}
	if !res.Valid() {
		problems := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			problems[i] = e.String()
		}
		return eris.Wrapf(ErrMalformedResponse, "schema: %s", strings.Join(problems, "; "))
	}

	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return eris.Wrapf(ErrMalformedResponse, "unmarshal: %v", err)
	}
	return nil
}
