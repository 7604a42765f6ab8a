package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeManualPrecedence(t *testing.T) {
	markup := "Nome: {{cliente.nome}}"
	autoFill := map[string]string{"cliente.nome": "Auto"}
	manual := map[string]string{"cliente.nome": "Manual"}

	result := Merge(markup, autoFill, manual)

	assert.Equal(t, "Nome: Manual", result.Content)
	assert.Empty(t, result.Unresolved)
}

func TestMergeEmptyManualFallsBackToAutoFill(t *testing.T) {
	markup := "Nome: {{cliente.nome}}"
	autoFill := map[string]string{"cliente.nome": "Auto"}
	manual := map[string]string{"cliente.nome": ""}

	result := Merge(markup, autoFill, manual)

	assert.Equal(t, "Nome: Auto", result.Content)
	assert.Empty(t, result.Unresolved)
}

func TestMergeUnresolvedKeptLiteral(t *testing.T) {
	markup := "Eu, {{cliente.nome}}, CPF {{cliente.cpf}}, caso {{caso.numero}}"
	autoFill := map[string]string{"cliente.nome": "João Silva"}
	manual := map[string]string{"caso.numero": "0001234-56.2024.8.26.0100"}

	result := Merge(markup, autoFill, manual)

	assert.Equal(t, "Eu, João Silva, CPF {{cliente.cpf}}, caso 0001234-56.2024.8.26.0100", result.Content)
	assert.Equal(t, []string{"cliente.cpf"}, result.Unresolved)
}

// Unresolved reporting must equal extract(markup) minus the resolvable keys,
// preserving first-occurrence order.
func TestMergeUnresolvedIsExactSetDifference(t *testing.T) {
	markup := "{{a.x}} {{b.y}} {{c.z}} {{a.x}} {{d.w}}"
	autoFill := map[string]string{"b.y": "B", "unused.key": "ignored"}
	manual := map[string]string{"d.w": "D"}

	result := Merge(markup, autoFill, manual)

	assert.Equal(t, []string{"a.x", "c.z"}, result.Unresolved)
	assert.Equal(t, "{{a.x}} B {{c.z}} {{a.x}} D", result.Content)
}

func TestMergeSubstitutesEveryOccurrence(t *testing.T) {
	markup := "{{cliente.nome}} e {{cliente.nome}} e {{cliente.nome}}"
	result := Merge(markup, map[string]string{"cliente.nome": "Maria"}, nil)

	assert.Equal(t, "Maria e Maria e Maria", result.Content)
	assert.Empty(t, result.Unresolved)
}

func TestMergeTreatsValuesAsOpaqueStrings(t *testing.T) {
	// No escaping at this layer: values pass through verbatim.
	markup := "<p>{{conteudo}}</p>"
	result := Merge(markup, nil, map[string]string{"conteudo": "<b>Cláusula</b> & anexos"})

	assert.Equal(t, "<p><b>Cláusula</b> & anexos</p>", result.Content)
}

func TestMergeMalformedTokensUntouched(t *testing.T) {
	markup := "{{cliente.nome}} {{invalid token}} {{.bad}}"
	result := Merge(markup, nil, map[string]string{"cliente.nome": "Ana"})

	assert.Equal(t, "Ana {{invalid token}} {{.bad}}", result.Content)
	assert.Empty(t, result.Unresolved)
}

func TestMergeIsPure(t *testing.T) {
	markup := "{{a.b}} {{c.d}}"
	autoFill := map[string]string{"a.b": "1"}
	manual := map[string]string{"c.d": "2"}

	first := Merge(markup, autoFill, manual)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Merge(markup, autoFill, manual))
	}
	// Inputs are not mutated
	assert.Equal(t, map[string]string{"a.b": "1"}, autoFill)
	assert.Equal(t, map[string]string{"c.d": "2"}, manual)
}

func TestEscapeValues(t *testing.T) {
	in := map[string]string{
		"cliente.nome": `João & "Filhos" <Ltda>`,
		"caso.titulo":  "sem caracteres especiais",
	}
	out := EscapeValues(in)

	assert.Equal(t, "João &amp; &#34;Filhos&#34; &lt;Ltda&gt;", out["cliente.nome"])
	assert.Equal(t, "sem caracteres especiais", out["caso.titulo"])
	// Original map untouched
	assert.Equal(t, `João & "Filhos" <Ltda>`, in["cliente.nome"])

	assert.Nil(t, EscapeValues(nil))
}
