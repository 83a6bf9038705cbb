package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMultiplier(t *testing.T) {
	tests := map[string]struct {
		tokens []string
		family string
		base   string
		index  int
		want   []CaseName
	}{
		"counted": {
			tokens: []string{"useState*3"},
			family: HookState,
			base:   "appState",
			want: []CaseName{
				{Given: "appState1", Lower: "appstate1", Title: "AppState1"},
				{Given: "appState2", Lower: "appstate2", Title: "AppState2"},
				{Given: "appState3", Lower: "appstate3", Title: "AppState3"},
			},
		},
		"named": {
			tokens: []string{"hooks[login,logout]"},
			family: "hooks",
			base:   "effect",
			want: []CaseName{
				{Given: "login", Lower: "login", Title: "Login"},
				{Given: "logout", Lower: "logout", Title: "Logout"},
			},
		},
		"bare": {
			tokens: []string{"useState"},
			family: HookState,
			base:   "appState",
			want:   []CaseName{{Given: "appState1", Lower: "appstate1", Title: "AppState1"}},
		},
		"case insensitive family": {
			tokens: []string{"usestate*2"},
			family: "USESTATE",
			base:   "s",
			want: []CaseName{
				{Given: "s1", Lower: "s1", Title: "S1"},
				{Given: "s2", Lower: "s2", Title: "S2"},
			},
		},
		"second group": {
			tokens: []string{"useState*2", "useState[todos]"},
			family: HookState,
			base:   "appState",
			index:  1,
			want:   []CaseName{{Given: "todos", Lower: "todos", Title: "Todos"}},
		},
		"form inputs": {
			tokens: []string{"formInput-email*2"},
			family: "email",
			base:   "emailInput",
			want: []CaseName{
				{Given: "emailInput1", Lower: "emailinput1", Title: "EmailInput1"},
				{Given: "emailInput2", Lower: "emailinput2", Title: "EmailInput2"},
			},
		},
		"absent family": {
			tokens: []string{"useEffect"},
			family: HookState,
			base:   "appState",
		},
		"index past last group": {
			tokens: []string{"useState"},
			family: HookState,
			base:   "appState",
			index:  1,
		},
		"empty brackets ignored": {
			tokens: []string{"useState[]"},
			family: HookState,
			base:   "appState",
		},
		"prefix is not a match": {
			tokens: []string{"useStateful=1"},
			family: HookState,
			base:   "appState",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			el := resolve(t, append([]string{"Widget"}, tt.tokens...)...)
			m := FindMultiplier(el, tt.family, tt.index, tt.base)
			assert.Equal(t, len(tt.want), m.Count)
			assert.Equal(t, tt.want, m.Names)
		})
	}
}

func TestFindMultiplier_InvalidInput(t *testing.T) {
	el := resolve(t, "Widget", "useState")

	assert.Zero(t, FindMultiplier(nil, HookState, 0, "s").Count)
	assert.Zero(t, FindMultiplier(el, "", 0, "s").Count)
	assert.Zero(t, FindMultiplier(el, HookState, -1, "s").Count)
}

func TestCollectMultiplier(t *testing.T) {
	el := resolve(t, "Widget", "useState*2", "useEffect", "useState[todos,filter]")

	names := CollectMultiplier(el, HookState, "appState")

	var given []string
	for _, n := range names {
		given = append(given, n.Given)
	}
	assert.Equal(t, []string{"appState1", "appState2", "todos", "filter"}, given)
	assert.Empty(t, CollectMultiplier(el, HookReducer, "appReducer"))
}

func TestFindMultiplier_Named(t *testing.T) {
	el := resolve(t, "Widget", "useState*2", "useState[todos]")

	assert.False(t, FindMultiplier(el, HookState, 0, "appState").Named)
	assert.True(t, FindMultiplier(el, HookState, 1, "appState").Named)
}

func TestFindMultiplier_ReusesFamilyPattern(t *testing.T) {
	el := resolve(t, "Widget", "useReducer*2")

	first := FindMultiplier(el, HookReducer, 0, "appReducer")
	cached, ok := familyPatterns.Load(HookReducer)
	require.True(t, ok)

	second := FindMultiplier(el, HookReducer, 0, "appReducer")
	again, _ := familyPatterns.Load(HookReducer)
	assert.Same(t, cached, again)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, second.Count)
}

func TestCaseName_Camel(t *testing.T) {
	assert.Equal(t, "auth", NewCaseName("Auth").Camel())
	assert.Equal(t, "appContext1", NewCaseName("appContext1").Camel())
	assert.Equal(t, "userProfile", NewCaseName("UserProfile").Camel())
	assert.Equal(t, "", NewCaseName("").Camel())
}

func TestSplitEntries(t *testing.T) {
	assert.Equal(t, []string{"a", "b[c,d]", "e"}, splitEntries("a,b[c,d],e"))
	assert.Equal(t, []string{""}, splitEntries(""))
}
