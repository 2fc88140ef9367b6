package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		bio  string
		want string
	}{
		{"contact: jane.doe@example.com for info", "jane.doe@example.com"},
		{"no contact info", ""},
		{"", ""},
		{"follow @brand for more", ""},
		{"site: www.example.com", ""},
		{"📩 vendas@loja-bela.com.br | SP", "vendas@loja-bela.com.br"},
		{"a@b.co and c@d.io", "a@b.co"},
		{"@ handle. dot", ""},
		{"contato: joão.silva@gmail.com", "joão.silva@gmail.com"},
		{"orçamentos: câmeras@loja.com.br", "câmeras@loja.com.br"},
	}

	for _, tt := range tests {
		t.Run(tt.bio, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.bio))
		})
	}
}
