package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedNames(t *testing.T) {
	var useCases = []struct {
		description string
		name        string
		simple      string
		valid       bool
	}{
		{description: "bare", name: "Shape", simple: "Shape", valid: true},
		{description: "qualified", name: "System.Attribute", simple: "Attribute", valid: true},
		{description: "empty segment", name: "System..Attribute", simple: "Attribute", valid: false},
		{description: "leading digit", name: "App.1Shape", simple: "1Shape", valid: false},
	}

	for _, useCase := range useCases {
		assert.EqualValues(t, useCase.simple, SimpleName(useCase.name), useCase.description)
		assert.EqualValues(t, useCase.valid, IsValidQualifiedName(useCase.name), useCase.description)
	}
}

func TestReceiverKeyword(t *testing.T) {
	assert.True(t, IsReceiverKeyword("this"))
	assert.True(t, IsReceiverKeyword("super"))
	assert.False(t, IsReceiverKeyword("self"))
}
