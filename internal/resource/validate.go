package resource

import "fmt"

// Errors collects validation failures as field name -> violation messages, so
// one response can report every broken field at once.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// ValidateCreate checks a create body against the schema: every required
// field must be present and every present field must pass its check. On
// success the returned map holds only recognized fields, normalized (strings
// trimmed). Unknown keys are ignored.
func (s Schema) ValidateCreate(body map[string]interface{}) (map[string]interface{}, Errors) {
	out := make(map[string]interface{}, len(s.Fields))
	verrs := Errors{}
	for _, f := range s.Fields {
		value, present := body[f.Name]
		if !present {
			if f.Required {
				verrs.add(f.Name, fmt.Sprintf("'%s' is required", f.Name))
			}
			continue
		}
		normalized, err := f.Check(f.Name, value)
		if err != nil {
			verrs.add(f.Name, err.Error())
			continue
		}
		out[f.Name] = normalized
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	return out, nil
}

// ValidateUpdate checks a partial update body: nothing is required, but every
// recognized field present must pass its check. An empty result with no
// errors means the body contained nothing updatable; the caller rejects that
// case separately.
func (s Schema) ValidateUpdate(body map[string]interface{}) (map[string]interface{}, Errors) {
	out := make(map[string]interface{}, len(body))
	verrs := Errors{}
	for _, f := range s.Fields {
		value, present := body[f.Name]
		if !present {
			continue
		}
		normalized, err := f.Check(f.Name, value)
		if err != nil {
			verrs.add(f.Name, err.Error())
			continue
		}
		out[f.Name] = normalized
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	return out, nil
}
