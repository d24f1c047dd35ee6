package bytecode

import "time"

// processStart is the monotonic origin clock() measures elapsed seconds
// against (spec.md §4.6).
var processStart = time.Now()

// NativeTable is the fixed, ordered registry of host-implemented functions.
// A native's position here is the one byte the binary format uses to refer
// to it (spec.md §4.4 tag 6).
var NativeTable = []struct {
	Name string
	Fn   NativeFn
}{
	{Name: "clock", Fn: nativeClock},
}

func nativeClock(args []Value) (Value, error) {
	return NumberValue(time.Since(processStart).Seconds()), nil
}

// NativeIndex returns the registration index of a native by name, or false
// if it is not registered.
func NativeIndex(name string) (int, bool) {
	for i, n := range NativeTable {
		if n.Name == name {
			return i, true
		}
	}
	return 0, false
}
