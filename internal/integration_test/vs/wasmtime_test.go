//go:build amd64 && cgo

package vs

import (
	"fmt"

	"github.com/bytecodealliance/wasmtime-go"
)

func init() {
	runtimes["wasmtime-go"] = newWasmtimeRuntime
}

func newWasmtimeRuntime() runtime {
	return &wasmtimeRuntime{engine: wasmtime.NewEngine()}
}

type wasmtimeRuntime struct {
	engine *wasmtime.Engine
}

type wasmtimeModule struct {
	store    *wasmtime.Store
	instance *wasmtime.Instance
	mem      *wasmtime.Memory
}

func (r *wasmtimeRuntime) Instantiate(wat string) (mod module, err error) {
	wasm, err := wasmtime.Wat2Wasm(wat)
	if err != nil {
		return
	}

	wm := &wasmtimeModule{store: wasmtime.NewStore(r.engine)}
	m, err := wasmtime.NewModule(wm.store.Engine, wasm)
	if err != nil {
		return
	}
	if wm.instance, err = wasmtime.NewInstance(wm.store, m, nil); err != nil {
		return
	}

	// Wasmtime exposes memory through the export, not the instance.
	if wm.mem = wm.instance.GetExport(wm.store, "memory").Memory(); wm.mem == nil {
		err = fmt.Errorf(`"memory" not exported`)
		return
	}
	mod = wm
	return
}

func (r *wasmtimeRuntime) Close() error {
	r.engine = nil
	return nil // wasmtime only closes via finalizer
}

func (m *wasmtimeModule) Call(funcName string, params ...uint32) (uint32, error) {
	fn := m.instance.GetFunc(m.store, funcName)
	if fn == nil {
		return 0, fmt.Errorf("%s is not an exported function", funcName)
	}
	args := make([]interface{}, len(params))
	for i, p := range params {
		args[i] = int32(p)
	}
	if result, err := fn.Call(m.store, args...); err != nil {
		return 0, err
	} else {
		return uint32(result.(int32)), nil
	}
}

func (m *wasmtimeModule) Memory() []byte {
	return m.mem.UnsafeData(m.store)
}

func (m *wasmtimeModule) Close() error {
	m.store = nil
	m.instance = nil
	m.mem = nil
	return nil
}
