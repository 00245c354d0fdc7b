package hydrate

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/solvercfg/internal/logging"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/store"
)

func newModel(t *testing.T) *option.Model {
	t.Helper()
	m := option.NewModel()
	m.MustRegister("Numeric", option.OptionSpec{Name: "count", Type: option.TypeInt, Default: option.IntValue(0)})
	m.MustRegister("Numeric", option.OptionSpec{Name: "ratio", Type: option.TypeFloat, TypeName: "double", Default: option.FloatValue(0.5)})
	m.MustRegister("Flags", option.OptionSpec{Name: "enabled", Type: option.TypeBool, Default: option.BoolValue(false)})
	return m
}

func storeWith(t *testing.T, entries map[string]map[string]string) *store.Memory {
	t.Helper()
	s := store.NewMemory()
	for section, kv := range entries {
		require.NoError(t, s.AddSection(section))
		for k, v := range kv {
			require.NoError(t, s.Set(section, k, v))
		}
	}
	return s
}

func value(t *testing.T, m *option.Model, category, name string) option.Value {
	t.Helper()
	spec, ok := m.Lookup(category, name)
	require.True(t, ok, "%s.%s not registered", category, name)
	return spec.Value()
}

func TestHydrate_OverrideHonored(t *testing.T) {
	m := newModel(t)
	s := storeWith(t, map[string]map[string]string{"Numeric": {"count": "42"}})

	Hydrate(m, s)

	assert.Equal(t, option.IntValue(42), value(t, m, "Numeric", "count"))
}

func TestHydrate_MalformedFallsBack(t *testing.T) {
	m := newModel(t)
	spec, _ := m.Lookup("Numeric", "count")
	require.NoError(t, spec.Assign(option.IntValue(7)))

	s := storeWith(t, map[string]map[string]string{"Numeric": {"count": "not-a-number"}})

	Hydrate(m, s)

	assert.Equal(t, option.IntValue(0), value(t, m, "Numeric", "count"))
}

func TestHydrate_OptionsAreIndependent(t *testing.T) {
	m := newModel(t)
	s := storeWith(t, map[string]map[string]string{
		"Numeric": {"count": "oops", "ratio": "0.125"},
		"Flags":   {"enabled": "TRUE"},
	})

	Hydrate(m, s)

	assert.Equal(t, option.IntValue(0), value(t, m, "Numeric", "count"))
	assert.Equal(t, option.FloatValue(0.125), value(t, m, "Numeric", "ratio"))
	assert.Equal(t, option.BoolValue(true), value(t, m, "Flags", "enabled"))
}

func TestHydrate_MissingSectionAndOption(t *testing.T) {
	m := newModel(t)
	for _, ref := range []string{"Numeric.count", "Numeric.ratio", "Flags.enabled"} {
		_, spec, err := m.Resolve(ref)
		require.NoError(t, err)
		spec.Reset()
	}
	s := storeWith(t, map[string]map[string]string{"Numeric": {"ratio": "2"}})

	Hydrate(m, s)

	assert.Equal(t, option.IntValue(0), value(t, m, "Numeric", "count"))
	assert.Equal(t, option.FloatValue(2), value(t, m, "Numeric", "ratio"))
	assert.Equal(t, option.BoolValue(false), value(t, m, "Flags", "enabled"))
}

func TestHydrate_BoolGrammar(t *testing.T) {
	tests := []struct {
		text string
		want option.Value
	}{
		{"true", option.BoolValue(true)},
		{"False", option.BoolValue(false)},
		{"1", option.BoolValue(true)},
		{"0", option.BoolValue(false)},
		{"maybe", option.BoolValue(false)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m := newModel(t)
			s := storeWith(t, map[string]map[string]string{"Flags": {"enabled": tt.text}})
			Hydrate(m, s)
			assert.Equal(t, tt.want, value(t, m, "Flags", "enabled"))
		})
	}
}

func TestHydrate_LogsFallbackAtTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelTrace, Format: logging.FormatText, Output: &buf})

	Hydrate(newModel(t), store.NewMemory(), WithLogger(logger))

	assert.Contains(t, buf.String(), "option falls back to default")
	assert.Contains(t, buf.String(), "Numeric.count")
}

func TestPersist_EmptyStoreWritesDefaults(t *testing.T) {
	m := newModel(t)
	Hydrate(m, store.NewMemory())

	s := store.NewMemory()
	require.NoError(t, Persist(m, s))

	assert.Equal(t, []string{"Numeric", "Flags"}, s.Sections())
	tests := []struct{ section, key, want string }{
		{"Numeric", "count", "0"},
		{"Numeric", "ratio", "0.5"},
		{"Flags", "enabled", "False"},
	}
	for _, tt := range tests {
		got, err := s.Get(tt.section, tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPersist_WritesValueNotDefault(t *testing.T) {
	m := newModel(t)
	spec, _ := m.Lookup("Flags", "enabled")
	require.NoError(t, spec.Assign(option.BoolValue(true)))
	spec, _ = m.Lookup("Numeric", "ratio")
	require.NoError(t, spec.Assign(option.FloatValue(3)))

	s := store.NewMemory()
	require.NoError(t, Persist(m, s))

	got, err := s.Get("Flags", "enabled")
	require.NoError(t, err)
	assert.Equal(t, "True", got)

	got, err = s.Get("Numeric", "ratio")
	require.NoError(t, err)
	assert.Equal(t, "3.0", got)
}

func TestPersist_KeepsUnrelatedEntries(t *testing.T) {
	s := storeWith(t, map[string]map[string]string{"Other": {"keep": "me"}})
	require.NoError(t, Persist(newModel(t), s))

	got, err := s.Get("Other", "keep")
	require.NoError(t, err)
	assert.Equal(t, "me", got)
}

func TestPersist_TextuallyStable(t *testing.T) {
	for _, format := range []store.Format{store.FormatINI, store.FormatTOML, store.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			m := newModel(t)
			doc, err := store.New(format)
			require.NoError(t, err)

			Hydrate(m, doc)
			require.NoError(t, Persist(m, doc))
			first, err := doc.Encode()
			require.NoError(t, err)

			require.NoError(t, Persist(m, doc))
			second, err := doc.Encode()
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))

			reread, err := store.Decode(format, first)
			require.NoError(t, err)
			m2 := newModel(t)
			Hydrate(m2, reread)
			assert.Equal(t, m.Snapshot(), m2.Snapshot())

			require.NoError(t, Persist(m2, reread))
			third, err := reread.Encode()
			require.NoError(t, err)
			assert.Equal(t, string(first), string(third))
		})
	}
}

func TestDiagnose(t *testing.T) {
	m := newModel(t)
	s := storeWith(t, map[string]map[string]string{"Numeric": {"count": "x1", "ratio": "0.3"}})

	findings := Diagnose(m, s)
	require.Len(t, findings, 2)

	assert.Equal(t, "Numeric.count", findings[0].Ref())
	assert.Equal(t, ReasonMalformed, findings[0].Reason)
	assert.Equal(t, "x1", findings[0].Stored)

	assert.Equal(t, "Flags.enabled", findings[1].Ref())
	assert.Equal(t, ReasonMissingSection, findings[1].Reason)

	s2 := storeWith(t, map[string]map[string]string{"Flags": {}})
	findings = Diagnose(m, s2)
	var reasons []string
	for _, f := range findings {
		reasons = append(reasons, f.Ref()+"="+string(f.Reason))
	}
	assert.Equal(t, "Numeric.count=missing-section,Numeric.ratio=missing-section,Flags.enabled=missing-option",
		strings.Join(reasons, ","))
}

func TestDiagnose_DoesNotMutate(t *testing.T) {
	m := newModel(t)
	spec, _ := m.Lookup("Numeric", "count")
	require.NoError(t, spec.Assign(option.IntValue(5)))

	_ = Diagnose(m, store.NewMemory())

	assert.Equal(t, option.IntValue(5), spec.Value())
}

func TestApply_DefaultsToDiscard(t *testing.T) {
	assert.Equal(t, slog.DiscardHandler, apply(nil).logger.Handler())
	assert.Equal(t, slog.DiscardHandler, apply([]Option{WithLogger(nil)}).logger.Handler())
}
