// Package settings implements the SettingsView contract from spec §6: a
// strongly-typed, read-only keyed lookup into YAML-style configuration,
// backed by one github.com/spf13/viper instance per scope — the same
// config-loading idiom the teacher's internal/config package uses, split
// across scopes instead of a single struct.
package settings

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Scope identifies one of the layered configuration sources named in §6.
type Scope string

const (
	ScopeMain      Scope = "main"
	ScopeGame      Scope = "game"
	ScopeGameLocal Scope = "game_local"
	ScopeSettings  Scope = "settings"
)

// PerGameScope builds the per-game override scope for gameName, e.g.
// PerGameScope("Fallout4"). Looked up after the four base scopes.
func PerGameScope(gameName string) Scope {
	return Scope("game:" + gameName)
}

// View is a read-only keyed lookup across scopes (§3 AnalysisContext.settings_view,
// §6 SettingsView). The zero value is not usable; construct with New.
type View struct {
	scopes map[Scope]*viper.Viper
}

// New creates an empty View with no scopes loaded.
func New() *View {
	return &View{scopes: make(map[Scope]*viper.Viper)}
}

// LoadScope reads a YAML file into the given scope. A missing file leaves
// the scope absent (every lookup in it then falls through to default);
// this mirrors the teacher's Load() falling back to defaults when
// .ralph/config.yaml doesn't exist.
func (v *View) LoadScope(scope Scope, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return fmt.Errorf("settings: loading %s scope from %s: %w", scope, path, err)
	}
	v.scopes[scope] = vp
	return nil
}

// SetScope installs an already-populated viper instance directly, mainly
// for tests that want to set values in code instead of via a file.
func (v *View) SetScope(scope Scope, vp *viper.Viper) {
	v.scopes[scope] = vp
}

// lookupOrder is the precedence used when a caller asks for a dotted key
// without naming a scope explicitly: Main < Game < GameLocal < Settings,
// each overriding the previous, then finally the per-game override on top.
func (v *View) lookupOrder(gameName string) []Scope {
	order := []Scope{ScopeMain, ScopeGame, ScopeGameLocal, ScopeSettings}
	if gameName != "" {
		order = append(order, PerGameScope(gameName))
	}
	return order
}

// rawForScope returns the raw value at key within a single named scope,
// and whether the scope is loaded with that key set.
func (v *View) rawForScope(scope Scope, key string) (interface{}, bool) {
	vp, ok := v.scopes[scope]
	if !ok || !vp.IsSet(key) {
		return nil, false
	}
	return vp.Get(key), true
}

// Get performs a typed lookup of a dotted key within one named scope,
// returning def if the key is missing (§6 "Missing key returns default").
func Get[T any](v *View, scope Scope, key string, def T) T {
	raw, ok := v.rawForScope(scope, key)
	if !ok {
		return def
	}
	typed, ok := raw.(T)
	if !ok {
		return def
	}
	return typed
}

// GetLayered performs the same lookup but walks Main -> Game -> GameLocal
// -> Settings -> per-game override, returning the last scope that set the
// key (highest-precedence wins), or def if none did.
func GetLayered[T any](v *View, gameName, key string, def T) T {
	result := def
	found := false
	for _, scope := range v.lookupOrder(gameName) {
		if raw, ok := v.rawForScope(scope, key); ok {
			if typed, ok := raw.(T); ok {
				result = typed
				found = true
			}
		}
	}
	if !found {
		return def
	}
	return result
}
