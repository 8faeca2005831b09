package scripting

import (
	"errors"
	"fmt"
	"time"

	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/field"
	"github.com/tecs/engine/internal/core/object"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var errNoComponent = errors.New("entity has no such component")

// scriptBehavior forwards entity object hooks to a Lua class table. Each
// hook receives a per-object self table; missing hooks succeed.
type scriptBehavior struct {
	engine *Engine
	name   string
	class  *lua.LTable
	self   *lua.LTable
}

func (b *scriptBehavior) OnCreate(o *object.EntityObject) {
	b.self = b.engine.newSelf(o)
	b.call(o, "on_create")
}

func (b *scriptBehavior) OnStart(o *object.EntityObject) bool {
	return b.call(o, "on_start")
}

func (b *scriptBehavior) OnUpdate(o *object.EntityObject, dt time.Duration) bool {
	return b.call(o, "on_update", lua.LNumber(dt.Seconds()))
}

func (b *scriptBehavior) OnDestroy(o *object.EntityObject) {
	b.call(o, "on_destroy")
}

// call runs hook and reads its result. No return value counts as success;
// a Lua error is logged and counts as failure.
func (b *scriptBehavior) call(o *object.EntityObject, hook string, args ...lua.LValue) bool {
	fn := b.class.RawGetString(hook)
	if fn == lua.LNil {
		return true
	}
	vm := b.engine.vm
	if err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, append([]lua.LValue{b.self}, args...)...); err != nil {
		b.engine.log.Error("lua hook error",
			zap.String("class", b.name),
			zap.String("hook", hook),
			zap.Stringer("entity", o.Handle().Entity()),
			zap.Error(err))
		return false
	}
	ret := vm.Get(-1)
	vm.Pop(1)
	return ret == lua.LNil || lua.LVAsBool(ret)
}

// newSelf builds the table scripts see as self.
func (e *Engine) newSelf(o *object.EntityObject) *lua.LTable {
	vm := e.vm
	ent := o.Handle().Entity()
	self := vm.NewTable()
	self.RawSetString("entity", lua.LNumber(ent.ID()))
	self.RawSetString("generation", lua.LNumber(ent.Gen()))

	self.RawSetString("get", vm.NewFunction(func(L *lua.LState) int {
		v, err := e.getField(o.Handle(), L.CheckString(2), L.CheckString(3))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(v)
		return 1
	}))
	self.RawSetString("set", vm.NewFunction(func(L *lua.LState) int {
		if err := e.setField(o.Handle(), L.CheckString(2), L.CheckString(3), L.CheckAny(4)); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))
	self.RawSetString("has", vm.NewFunction(func(L *lua.LState) int {
		id, ok := e.types.Lookup(L.CheckString(2))
		L.Push(lua.LBool(ok && o.IsValid() && o.Handle().HasComponent(id)))
		return 1
	}))
	self.RawSetString("valid", vm.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(o.IsValid()))
		return 1
	}))
	self.RawSetString("destroy", vm.NewFunction(func(L *lua.LState) int {
		o.Destroy()
		return 0
	}))
	return self
}

func (e *Engine) component(h ecs.EntityHandle, name string) (ecs.Component, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("%s: %w", h.Entity(), ecs.ErrInvalidEntity)
	}
	id, ok := e.types.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ecs.ErrUnknownComponent)
	}
	c := h.GetComponent(id)
	if c == nil {
		return nil, fmt.Errorf("%s %s: %w", h.Entity(), name, errNoComponent)
	}
	return c, nil
}

func (e *Engine) getField(h ecs.EntityHandle, comp, name string) (lua.LValue, error) {
	c, err := e.component(h, comp)
	if err != nil {
		return nil, err
	}
	obj, err := field.Of(c.Export())
	if err != nil {
		return nil, err
	}
	v, err := obj.Get(name)
	if err != nil {
		return nil, err
	}
	return toLua(v), nil
}

// setField round-trips the component through Export and Import.
func (e *Engine) setField(h ecs.EntityHandle, comp, name string, lv lua.LValue) error {
	c, err := e.component(h, comp)
	if err != nil {
		return err
	}
	cfg := c.Export()
	obj, err := field.Of(cfg)
	if err != nil {
		return err
	}
	v, err := fromLua(lv)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", comp, name, err)
	}
	if err := obj.Set(name, v); err != nil {
		return err
	}
	if !c.Import(cfg) {
		return fmt.Errorf("%s rejected its own config", comp)
	}
	return nil
}

func toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case float64:
		return lua.LNumber(x)
	case float32:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case int32:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case uint32:
		return lua.LNumber(x)
	case uint64:
		return lua.LNumber(x)
	}
	return lua.LString(fmt.Sprint(v))
}

func fromLua(v lua.LValue) (any, error) {
	switch x := v.(type) {
	case lua.LNumber:
		return float64(x), nil
	case lua.LString:
		return string(x), nil
	case lua.LBool:
		return bool(x), nil
	}
	if v == lua.LNil {
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported lua type %s", v.Type())
}
