package entities

// Form is a predicted or catalog cooking form.
type Form string

const (
	FormRaw        Form = "raw"
	FormBoiled     Form = "boiled"
	FormSteamed    Form = "steamed"
	FormPanSeared  Form = "pan_seared"
	FormGrilled    Form = "grilled"
	FormRoasted    Form = "roasted"
	FormFried      Form = "fried"
	FormBaked      Form = "baked"
	FormBreaded    Form = "breaded"
	FormPoached    Form = "poached"
	FormStewed     Form = "stewed"
	FormSimmered   Form = "simmered"
	FormEmpty      Form = ""
	FormEnergyOnly Form = "energy_only_proxy"
)

// validForms is the set from spec.md's FORMS, used to validate predictions.
var validForms = map[Form]bool{
	FormRaw: true, FormBoiled: true, FormSteamed: true, FormPanSeared: true,
	FormGrilled: true, FormRoasted: true, FormFried: true, FormBaked: true,
	FormBreaded: true, FormPoached: true, FormStewed: true, FormSimmered: true,
	FormEmpty: true,
}

// IsValidForm reports whether f is one of FORMS or the empty form.
func IsValidForm(f Form) bool {
	return validForms[f]
}

// Prediction is the vision model's food prediction — the engine's only input.
type Prediction struct {
	Name       string   `json:"name" validate:"required,max=64"`
	Form       Form     `json:"form"`
	MassG      float64  `json:"mass_g" validate:"required,gt=0"`
	Count      int      `json:"count,omitempty" validate:"omitempty,gte=1"`
	Modifiers  []string `json:"modifiers,omitempty"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// HasModifier reports whether the prediction carries the given modifier token.
func (p Prediction) HasModifier(tok string) bool {
	for _, m := range p.Modifiers {
		if m == tok {
			return true
		}
	}
	return false
}

// SuggestsConversion reports whether the predicted form is a cooked-method
// form — i.e. anything other than raw/empty — making a raw→cooked convert
// pipeline viable in principle (spec.md §4.4 pre-gate).
func (f Form) SuggestsConversion() bool {
	return f != FormRaw && f != FormEmpty
}
