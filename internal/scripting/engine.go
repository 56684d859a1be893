package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable gameplay formulas
// (attack damage, fall damage). Single-goroutine access only — the tick
// loop. A nil *Engine is valid and falls back to the built-in formulas, so
// tests and headless tools never need script files on disk.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file under
// scriptsDir/combat. A missing directory is not an error; the built-in
// formulas cover the gap.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "combat")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load combat scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	if e != nil && e.vm != nil {
		e.vm.Close()
	}
}

// AttackContext is the pre-packed input for an attack damage calculation.
type AttackContext struct {
	AttackerDamage float64 // template base damage
	AttackerSpeed  float64
	TargetHealth   float64
	TargetStamina  float64
}

// CalcAttackDamage evaluates calc_attack_damage(ctx) in Lua, or the
// built-in formula when no script defines it.
func (e *Engine) CalcAttackDamage(ctx AttackContext) float64 {
	if e == nil || e.vm == nil {
		return builtinAttackDamage(ctx)
	}
	fn := e.vm.GetGlobal("calc_attack_damage")
	if fn == lua.LNil {
		return builtinAttackDamage(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("attacker_damage", lua.LNumber(ctx.AttackerDamage))
	t.RawSetString("attacker_speed", lua.LNumber(ctx.AttackerSpeed))
	t.RawSetString("target_health", lua.LNumber(ctx.TargetHealth))
	t.RawSetString("target_stamina", lua.LNumber(ctx.TargetStamina))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		e.log.Error("calc_attack_damage failed", zap.Error(err))
		return builtinAttackDamage(ctx)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return float64(n)
	}
	e.log.Error("calc_attack_damage returned non-number")
	return builtinAttackDamage(ctx)
}

// CalcFallDamage evaluates calc_fall_damage(fall_distance, safe_distance,
// rate) in Lua, or the built-in (fall - safe) * rate.
func (e *Engine) CalcFallDamage(fallDist, safeDist, rate float64) float64 {
	if e == nil || e.vm == nil {
		return builtinFallDamage(fallDist, safeDist, rate)
	}
	fn := e.vm.GetGlobal("calc_fall_damage")
	if fn == lua.LNil {
		return builtinFallDamage(fallDist, safeDist, rate)
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LNumber(fallDist), lua.LNumber(safeDist), lua.LNumber(rate)); err != nil {
		e.log.Error("calc_fall_damage failed", zap.Error(err))
		return builtinFallDamage(fallDist, safeDist, rate)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return float64(n)
	}
	e.log.Error("calc_fall_damage returned non-number")
	return builtinFallDamage(fallDist, safeDist, rate)
}

func builtinAttackDamage(ctx AttackContext) float64 {
	if ctx.AttackerDamage <= 0 {
		return 0
	}
	return ctx.AttackerDamage
}

func builtinFallDamage(fallDist, safeDist, rate float64) float64 {
	if fallDist <= safeDist {
		return 0
	}
	return (fallDist - safeDist) * rate
}
