//go:build amd64 && cgo && !windows

package vs

import (
	"github.com/wasmerio/wasmer-go/wasmer"
)

func init() {
	runtimes["wasmer-go"] = newWasmerRuntime
}

func newWasmerRuntime() runtime {
	return &wasmerRuntime{engine: wasmer.NewEngine()}
}

type wasmerRuntime struct {
	engine *wasmer.Engine
}

type wasmerModule struct {
	store    *wasmer.Store
	module   *wasmer.Module
	instance *wasmer.Instance
	mem      *wasmer.Memory
}

func (r *wasmerRuntime) Instantiate(wat string) (mod module, err error) {
	wasm, err := wasmer.Wat2Wasm(wat)
	if err != nil {
		return
	}

	wm := &wasmerModule{store: wasmer.NewStore(r.engine)}
	if wm.module, err = wasmer.NewModule(wm.store, wasm); err != nil {
		return
	}
	if wm.instance, err = wasmer.NewInstance(wm.module, wasmer.NewImportObject()); err != nil {
		return
	}
	if wm.mem, err = wm.instance.Exports.GetMemory("memory"); err != nil {
		return
	}
	mod = wm
	return
}

func (r *wasmerRuntime) Close() error {
	r.engine = nil
	return nil
}

func (m *wasmerModule) Call(funcName string, params ...uint32) (uint32, error) {
	fn, err := m.instance.Exports.GetRawFunction(funcName)
	if err != nil {
		return 0, err
	}
	args := make([]interface{}, len(params))
	for i, p := range params {
		args[i] = int32(p)
	}
	if result, err := fn.Call(args...); err != nil {
		return 0, err
	} else {
		return uint32(result.(int32)), nil
	}
}

func (m *wasmerModule) Memory() []byte {
	return m.mem.Data()
}

func (m *wasmerModule) Close() error {
	if instance := m.instance; instance != nil {
		instance.Close()
	}
	m.instance = nil
	if mod := m.module; mod != nil {
		mod.Close()
	}
	m.module = nil
	if store := m.store; store != nil {
		store.Close()
	}
	m.store = nil
	m.mem = nil
	return nil
}
