package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "empty markup",
			markup: "",
			want:   []string{},
		},
		{
			name:   "no placeholders",
			markup: "<p>Contrato de prestação de serviços</p>",
			want:   []string{},
		},
		{
			name:   "single placeholder",
			markup: "Eu, {{cliente.nome}}, declaro...",
			want:   []string{"cliente.nome"},
		},
		{
			name:   "duplicates collapse, first-occurrence order kept",
			markup: "Olá {{cliente.nome}}, seu caso {{caso.titulo}} e {{cliente.nome}} novamente",
			want:   []string{"cliente.nome", "caso.titulo"},
		},
		{
			name:   "deep dotted path",
			markup: "{{cliente.endereco.cidade}} - {{cliente.endereco.uf}}",
			want:   []string{"cliente.endereco.cidade", "cliente.endereco.uf"},
		},
		{
			name:   "simple key without dots",
			markup: "Data: {{data_atual}}",
			want:   []string{"data_atual"},
		},
		{
			name:   "malformed tokens are ignored",
			markup: "{{}} {{.nome}} {{cliente..nome}} {{1cliente}} {{cliente.nome} {cliente.cpf}}",
			want:   []string{},
		},
		{
			name:   "token with spaces is not a placeholder",
			markup: "{{ cliente.nome }} mas {{caso.numero}} vale",
			want:   []string{"caso.numero"},
		},
		{
			name:   "valid token adjacent to stray braces",
			markup: "{{{cliente.nome}}}",
			want:   []string{"cliente.nome"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.markup))
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	markup := "{{b.x}} {{a.y}} {{b.x}} {{c.z}} {{a.y}}"
	first := Extract(markup)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(markup))
	}
	assert.Equal(t, []string{"b.x", "a.y", "c.z"}, first)
}
