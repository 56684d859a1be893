package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNilEngineUsesBuiltins(t *testing.T) {
	var e *Engine
	assert.Equal(t, 12.0, e.CalcAttackDamage(AttackContext{AttackerDamage: 12}))
	assert.Zero(t, e.CalcAttackDamage(AttackContext{AttackerDamage: 0}))

	assert.Equal(t, 150.0, e.CalcFallDamage(20, 5, 10))
	assert.Zero(t, e.CalcFallDamage(4, 5, 10))
	e.Close()
}

func TestMissingScriptsDirIsFine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	// No scripts loaded: built-in formulas apply.
	assert.Equal(t, 7.0, e.CalcAttackDamage(AttackContext{AttackerDamage: 7}))
}

func TestLuaOverridesFormulas(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	script := `
function calc_attack_damage(ctx)
    local dmg = ctx.attacker_damage
    if ctx.target_stamina < 10 then
        dmg = dmg * 1.15
    end
    return dmg
end

function calc_fall_damage(fall_distance, safe_distance, rate)
    if fall_distance <= safe_distance then
        return 0
    end
    return (fall_distance - safe_distance) * rate * 2
end
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "damage.lua"), []byte(script), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.InDelta(t, 10.0, e.CalcAttackDamage(AttackContext{AttackerDamage: 10, TargetStamina: 50}), 1e-9)
	assert.InDelta(t, 11.5, e.CalcAttackDamage(AttackContext{AttackerDamage: 10, TargetStamina: 5}), 1e-9,
		"winded targets take the scripted bonus")
	assert.InDelta(t, 300.0, e.CalcFallDamage(20, 5, 10), 1e-9, "scripted rate doubles the builtin")
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "bad.lua"), []byte("function ("), 0o644))

	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
