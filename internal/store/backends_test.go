package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestINI_Contract(t *testing.T) {
	storeContract(t, NewINI())
}

func TestTOML_Contract(t *testing.T) {
	storeContract(t, NewTOML())
}

func TestYAML_Contract(t *testing.T) {
	storeContract(t, NewYAML())
}

func TestDecodeINI(t *testing.T) {
	doc, err := DecodeINI([]byte(`[Numeric]
Count = 42
ratio = 0.25 # not a comment

[Flags]
enabled = yes
`))
	require.NoError(t, err)

	got, err := doc.Get("Numeric", "count")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = doc.Get("Numeric", "COUNT")
	require.NoError(t, err, "keys are case-insensitive")
	assert.Equal(t, "42", got)

	got, err = doc.Get("Numeric", "ratio")
	require.NoError(t, err)
	assert.Equal(t, "0.25 # not a comment", got)

	assert.False(t, doc.HasSection("numeric"), "section names are case-sensitive")
	assert.Equal(t, []string{"Numeric", "Flags"}, doc.Sections())
}

func TestINI_ChildSectionDoesNotInherit(t *testing.T) {
	doc, err := DecodeINI([]byte("[Solver]\ndepth = 3\n\n[Solver.Advanced]\nwidth = 2\n"))
	require.NoError(t, err)

	assert.False(t, doc.HasOption("Solver.Advanced", "depth"))
	_, err = doc.Get("Solver.Advanced", "depth")
	assert.Error(t, err)
}

func TestINI_EncodeRoundTrip(t *testing.T) {
	doc := NewINI()
	require.NoError(t, doc.AddSection("Numeric"))
	require.NoError(t, doc.Set("Numeric", "count", "42"))
	require.NoError(t, doc.Set("Numeric", "ratio", "0.5"))

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Numeric]")

	again, err := DecodeINI(data)
	require.NoError(t, err)
	got, err := again.Get("Numeric", "ratio")
	require.NoError(t, err)
	assert.Equal(t, "0.5", got)

	second, err := again.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(second))
}

func TestDecodeTOML(t *testing.T) {
	doc, err := DecodeTOML([]byte(`
[Numeric]
count = 42
ratio = 0.25
label = "x"

[Flags]
enabled = true
`))
	require.NoError(t, err)

	tests := []struct{ section, key, want string }{
		{"Numeric", "count", "42"},
		{"Numeric", "ratio", "0.25"},
		{"Numeric", "label", "x"},
		{"Flags", "enabled", "true"},
	}
	for _, tt := range tests {
		got, err := doc.Get(tt.section, tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s.%s", tt.section, tt.key)
	}
	assert.Equal(t, []string{"Flags", "Numeric"}, doc.Sections())
}

func TestDecodeTOML_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"top-level scalar", "count = 1\n"},
		{"nested table", "[A.B]\nx = 1\n"},
		{"array value", "[A]\nx = [1, 2]\n"},
		{"syntax", "[A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTOML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestTOML_EncodeWritesStrings(t *testing.T) {
	doc := NewTOML()
	require.NoError(t, doc.AddSection("Numeric"))
	require.NoError(t, doc.Set("Numeric", "count", "42"))

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Numeric]")
	assert.Contains(t, string(data), "count = ")

	again, err := DecodeTOML(data)
	require.NoError(t, err)
	got, err := again.Get("Numeric", "count")
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestDecodeYAML_PreservesOrder(t *testing.T) {
	doc, err := DecodeYAML([]byte(`Zeta:
  b: 2
  a: "1.0"
Alpha:
  flag: True
Empty:
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Empty"}, doc.Sections())
	assert.Equal(t, []string{"b", "a"}, doc.Keys("Zeta"))

	got, err := doc.Get("Zeta", "a")
	require.NoError(t, err)
	assert.Equal(t, "1.0", got)

	got, err = doc.Get("Alpha", "flag")
	require.NoError(t, err)
	assert.Equal(t, "True", got)
}

func TestDecodeYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"top-level list", "- a\n- b\n"},
		{"section scalar", "A: 1\n"},
		{"nested mapping", "A:\n  b:\n    c: 1\n"},
		{"syntax", "A: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeYAML_Empty(t *testing.T) {
	for _, data := range []string{"", "~\n", "# only a comment\n"} {
		doc, err := DecodeYAML([]byte(data))
		require.NoError(t, err, "%q", data)
		assert.Empty(t, doc.Sections())
	}
}

func TestYAML_EncodeRoundTrip(t *testing.T) {
	doc := NewYAML()
	require.NoError(t, doc.AddSection("Flags"))
	require.NoError(t, doc.Set("Flags", "enabled", "True"))
	require.NoError(t, doc.AddSection("Numeric"))
	require.NoError(t, doc.Set("Numeric", "count", "7"))

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.True(t, strings.Index(string(data), "Flags") < strings.Index(string(data), "Numeric"))

	again, err := DecodeYAML(data)
	require.NoError(t, err)
	got, err := again.Get("Flags", "enabled")
	require.NoError(t, err)
	assert.Equal(t, "True", got)

	second, err := again.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(second))
}

func TestINI_SetKeepsKeySpelling(t *testing.T) {
	doc, err := DecodeINI([]byte("[DEFAULTSOLVER]\nNbThreads = lots\n"))
	require.NoError(t, err)

	require.NoError(t, doc.Set("DEFAULTSOLVER", "nbthreads", "4"))
	require.NoError(t, doc.Set("DEFAULTSOLVER", "UseMeteo", "False"))

	assert.Equal(t, []string{"NbThreads", "UseMeteo"}, doc.Keys("DEFAULTSOLVER"))
	data, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "NbThreads = 4\n")
	assert.Contains(t, string(data), "UseMeteo  = False\n")
}
