package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObject(t *testing.T) {
	d := Parse([]byte(`{"name": "Qentem", "count": 3, "ok": true, "nil": null}`))
	assert.False(t, d.Ordered)

	name, ok := d.Get("name")
	assert.True(t, ok)
	assert.Equal(t, String, name.Kind)
	assert.Equal(t, "Qentem", name.Str)

	count, ok := d.Get("count")
	assert.True(t, ok)
	assert.Equal(t, Number, count.Kind)
	assert.Equal(t, float64(3), count.Num)

	okVal, ok := d.Get("ok")
	assert.True(t, ok)
	assert.True(t, okVal.Bool())

	nilVal, ok := d.Get("nil")
	assert.True(t, ok)
	assert.Equal(t, Null, nilVal.Kind)
}

func TestParseArray(t *testing.T) {
	d := Parse([]byte(`[1, 2, 3]`))
	assert.True(t, d.Ordered)
	assert.Equal(t, 3, d.Len())

	v, ok := d.At(1)
	assert.True(t, ok)
	assert.Equal(t, float64(2), v.Num)
}

func TestParseNested(t *testing.T) {
	d := Parse([]byte(`{"list": [1, {"a": "b"}], "empty": {}}`))

	list, ok := d.Get("list")
	assert.True(t, ok)
	assert.Equal(t, Nested, list.Kind)
	assert.True(t, list.Doc.Ordered)
	assert.Equal(t, 2, list.Doc.Len())

	second, ok := list.Doc.At(1)
	assert.True(t, ok)
	assert.Equal(t, Nested, second.Kind)
	inner, ok := second.Doc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "b", inner.Str)

	empty, ok := d.Get("empty")
	assert.True(t, ok)
	assert.Equal(t, 0, empty.Doc.Len())
}

func TestParseEscapedString(t *testing.T) {
	d := Parse([]byte(`{"quote": "a \"quoted\" word", "slash": "a\\b"}`))

	quote, ok := d.Get("quote")
	assert.True(t, ok)
	assert.Equal(t, `a "quoted" word`, quote.Str)

	slash, ok := d.Get("slash")
	assert.True(t, ok)
	assert.Equal(t, `a\b`, slash.Str)
}

func TestParseMalformedDegradesToEmpty(t *testing.T) {
	d := Parse([]byte(`not json at all`))
	assert.False(t, d.Ordered)
	assert.Equal(t, 0, d.Len())
}

func TestSetAppendAndToJSON(t *testing.T) {
	d := NewObject()
	d.Set("a", NumberValue(1))
	d.Set("b", StringValue("x"))
	assert.Equal(t, `{"a":1,"b":"x"}`, d.ToJSON())

	arr := NewArray()
	arr.Append(NumberValue(1))
	arr.Append(NumberValue(2))
	assert.Equal(t, `[1,2]`, arr.ToJSON())
}

func TestSetOverwritesExistingKey(t *testing.T) {
	d := NewObject()
	d.Set("a", NumberValue(1))
	d.Set("a", NumberValue(2))
	assert.Equal(t, 1, d.Len())
	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(2), v.Num)
}

func TestHashIndexManyKeysNoCollisionLoss(t *testing.T) {
	d := NewObject()
	for i := 0; i < 200; i++ {
		d.Set(keyFor(i), NumberValue(float64(i)))
	}
	for i := 0; i < 200; i++ {
		v, ok := d.Get(keyFor(i))
		assert.True(t, ok, "missing key %d", i)
		assert.Equal(t, float64(i), v.Num)
	}
}

func keyFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "k" + string(letters[i%26]) + string(letters[(i/26)%26])
}
