//go:build js && wasm

// Command pacewasm is the browser build of the pace calculator. It registers a
// global showPaces() that reads #time-input and rewrites #paces-output.
//
//	GOOS=js GOARCH=wasm go build -o internal/adapters/http/static/pace.wasm ./cmd/pacewasm
package main

import (
	"syscall/js"

	"clubsite/internal/adapters/pacetable"
	"clubsite/internal/application/projections"
)

func main() {
	js.Global().Set("showPaces", js.FuncOf(showPaces))
	select {}
}

// showPaces replaces the output region with the result for the current input.
func showPaces(this js.Value, args []js.Value) any {
	doc := js.Global().Get("document")
	input := doc.Call("getElementById", "time-input")
	output := doc.Call("getElementById", "paces-output")
	if input.IsNull() || output.IsNull() {
		return nil
	}

	output.Set("innerHTML", "")
	res := projections.QueryShowPaces(input.Get("value").String())
	switch res.State {
	case projections.StateInvalid:
		output.Set("textContent", res.Message)
	case projections.StateTable:
		output.Set("innerHTML", string(pacetable.HTML(res.Table)))
	}
	return nil
}
