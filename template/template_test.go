package template

import (
	"testing"

	"github.com/lineCode/qentem/document"
	"github.com/stretchr/testify/assert"
)

func TestRenderVar(t *testing.T) {
	data := document.Parse([]byte(`{"name": "Qentem"}`))
	assert.Equal(t, "Hello Qentem!", Render([]byte("Hello {v:name}!"), data))
}

func TestRenderVarMissingKeepsKeyText(t *testing.T) {
	data := document.Parse([]byte(`{}`))
	assert.Equal(t, "Hello name!", Render([]byte("Hello {v:name}!"), data))
}

func TestRenderVarNestedPath(t *testing.T) {
	data := document.Parse([]byte(`{"numbers": [10, 20, 30]}`))
	assert.Equal(t, "20", Render([]byte("{v:numbers[1]}"), data))
}

func TestRenderMath(t *testing.T) {
	data := document.Parse([]byte(`{}`))
	assert.Equal(t, "533", Render([]byte("{math:5+6*8*(8+3)}"), data))
}

func TestRenderMathWithVar(t *testing.T) {
	data := document.Parse([]byte(`{"x": 4}`))
	assert.Equal(t, "20", Render([]byte("{math:{v:x}*5}"), data))
}

func TestRenderIIF(t *testing.T) {
	data := document.Parse([]byte(`{}`))
	assert.Equal(t, "Yes", Render([]byte(`{iif case="3 == 3" true="Yes" false="No"}`), data))
	assert.Equal(t, "No", Render([]byte(`{iif case="3 == 4" true="Yes" false="No"}`), data))
}

func TestRenderIfSimple(t *testing.T) {
	data := document.Parse([]byte(`{"x": 1}`))
	tpl := `<if case="{v:x} == 1">one</if>`
	assert.Equal(t, "one", Render([]byte(tpl), data))
}

func TestRenderIfElseifElse(t *testing.T) {
	tpl := `<if case="{v:x} == 1">one<elseif case="{v:x} == 2" />two<else />other</if>`

	assert.Equal(t, "one", Render([]byte(tpl), document.Parse([]byte(`{"x":1}`))))
	assert.Equal(t, "two", Render([]byte(tpl), document.Parse([]byte(`{"x":2}`))))
	assert.Equal(t, "other", Render([]byte(tpl), document.Parse([]byte(`{"x":9}`))))
}

func TestRenderIfNested(t *testing.T) {
	tpl := `<if case="{v:x} == 1">outer-<if case="{v:y} == 1">inner-yes<else />inner-no</if></if>`
	data := document.Parse([]byte(`{"x":1,"y":1}`))
	assert.Equal(t, "outer-inner-yes", Render([]byte(tpl), data))
}

func TestRenderLoopSpecScenario(t *testing.T) {
	data := document.Parse([]byte(`{"strings": ["N1", "N2", "N3"]}`))
	tpl := `<loop set="strings" value="v" key="k">k:v;</loop>`
	assert.Equal(t, "0:N1;1:N2;2:N3;", Render([]byte(tpl), data))
}

func TestRenderLoopKeyedObject(t *testing.T) {
	data := document.Parse([]byte(`{"fields": {"a": 1, "b": 2}}`))
	tpl := `<loop set="fields" value="v" key="k">k=v,</loop>`
	assert.Equal(t, "a=1,b=2,", Render([]byte(tpl), data))
}

func TestRenderLoopNoKey(t *testing.T) {
	data := document.Parse([]byte(`{"strings": ["A", "B"]}`))
	tpl := `<loop set="strings" value="v">v;</loop>`
	assert.Equal(t, "A;B;", Render([]byte(tpl), data))
}
