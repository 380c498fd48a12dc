package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTypeString(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewDocuments, "documents"},
		{ViewAnnotations, "annotations"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.view.String())
	}
}
