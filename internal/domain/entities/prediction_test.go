package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasModifier(t *testing.T) {
	p := Prediction{Modifiers: []string{"white", "large"}}
	assert.True(t, p.HasModifier("white"))
	assert.False(t, p.HasModifier("brown"))
	assert.False(t, Prediction{}.HasModifier("white"))
}

func TestSuggestsConversion(t *testing.T) {
	assert.False(t, FormRaw.SuggestsConversion())
	assert.False(t, FormEmpty.SuggestsConversion())
	assert.True(t, FormGrilled.SuggestsConversion())
	assert.True(t, FormFried.SuggestsConversion())
}

func TestIsValidForm(t *testing.T) {
	assert.True(t, IsValidForm(FormRaw))
	assert.True(t, IsValidForm(FormEmpty))
	assert.True(t, IsValidForm(FormGrilled))
	assert.False(t, IsValidForm(Form("smoked")))
}
