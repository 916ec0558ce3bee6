package fir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPod = `{
  "name": "acme",
  "version": "1.0",
  "types": [
    {
      "name": "Widget",
      "fields": [
        {"name": "size", "type": {"pod": "sys", "name": "Int", "signature": "sys::Int"}}
      ],
      "methods": [
        {
          "name": "grow",
          "params": [{"name": "n", "type": {"pod": "sys", "name": "Int", "signature": "sys::Int"}}],
          "returns": {"pod": "sys", "name": "Void", "signature": "sys::Void"},
          "body": {"stmts": [{"kind": "return"}]}
        }
      ]
    }
  ]
}`

func TestDecodePod(t *testing.T) {
	pod, err := DecodePod(strings.NewReader(minimalPod))
	require.NoError(t, err)

	assert.Equal(t, "acme", pod.Name)
	require.Len(t, pod.Types, 1)

	w := pod.Types[0]
	assert.Equal(t, "acme::Widget", w.Qname, "qname is derived when absent")
	assert.Equal(t, "acme", w.Pod)
	require.Len(t, w.Fields, 1)
	assert.Equal(t, "sys::Int", w.Fields[0].Type.Signature)
	require.Len(t, w.Methods, 1)
	assert.Equal(t, "acme::Widget", w.Methods[0].Parent, "method parent is derived when absent")
}

func TestDecodePodErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty_pod_name", `{"name": "", "types": []}`},
		{"unnamed_type", `{"name": "p", "types": [{"name": ""}]}`},
		{"field_without_type", `{"name": "p", "types": [{"name": "T", "fields": [{"name": "x"}]}]}`},
		{"call_without_method", `{"name": "p", "types": [{"name": "T", "methods": [
			{"name": "m", "body": {"stmts": [{"kind": "expr", "expr": {"kind": "call"}}]}}]}]}`},
		{"closure_without_body", `{"name": "p", "types": [{"name": "T", "methods": [
			{"name": "m", "body": {"stmts": [{"kind": "expr", "expr": {"kind": "closure"}}]}}]}]}`},
		{"unknown_top_field", `{"name": "p", "bogus": 1, "types": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePod(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestDecodeUnknownKindsSurvive(t *testing.T) {
	// Unknown expression kinds must decode: the emitter degrades them to
	// markers instead of failing the pod.
	in := `{"name": "p", "types": [{"name": "T", "methods": [
		{"name": "m", "body": {"stmts": [{"kind": "expr", "expr": {"kind": "futureKind"}}]}}]}]}`
	pod, err := DecodePod(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, ExprKind("futureKind"), pod.Types[0].Methods[0].Body.Stmts[0].Expr.Kind)
}
